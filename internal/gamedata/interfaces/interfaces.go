// Package interfaces はrpgarcコマンドで使用するインターフェースを定義します
package interfaces

import (
	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
)

// LumpProvider はランプ単位のアクセスを提供するインターフェース
type LumpProvider interface {
	LoadArchive(path string) (bool, error)
	GetLump(name string) ([]byte, bool)
	GetLumpAsText(name string) (string, bool)
	HasLump(name string) bool
	ListLumpNames() []string
	GetLumpSize(name string) int
}

// GameLoader はゲームデータのスナップショットを読み込むインターフェースです
type GameLoader interface {
	LoadGameData(path string) (*models.Snapshot, error)
}

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	IsDirectory(path string) bool
	SaveLumpFile(outputPath string, data []byte) error
}
