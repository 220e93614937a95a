package lump

import (
	"fmt"
	"os"
)

// ContainerKind はアーカイブのコンテナ形式を表します
type ContainerKind int

const (
	// KindUnknown は未判定の状態です
	KindUnknown ContainerKind = iota
	// KindModern は "RPG!" マジック付きのタグ付きディレクトリ形式です
	KindModern
	// KindLegacy は名前/サイズ/データが連続する旧形式です
	KindLegacy
	// KindDirectoryTree はディレクトリツリー形式です
	KindDirectoryTree
)

// String はコンテナ形式の名前を返します
func (k ContainerKind) String() string {
	switch k {
	case KindModern:
		return "modern"
	case KindLegacy:
		return "legacy"
	case KindDirectoryTree:
		return "directory"
	default:
		return "unknown"
	}
}

// Archive は1つの読み込みセッションを表します。
// ソースパス、読み込み済みフラグ、Storeを所有します。
// Storeと同様、内部ロックは持たないため呼び出し側で直列化してください。
type Archive struct {
	path  string
	kind  ContainerKind
	store *Store
}

// NewArchive は新しい空のArchiveを作成します
func NewArchive() *Archive {
	return &Archive{store: NewStore()}
}

// LoadArchive はパスからアーカイブを読み込みます。
// パスがディレクトリならツリーを取り込み、先頭4バイトが "RPG!" なら
// 新形式として、それ以外は旧形式としてパースします。
// 既存の状態は読み込み開始時に必ずクリアされます。
// パス/形式エラーの場合は (false, err) を返し、パニックしません。
func (a *Archive) LoadArchive(path string) (bool, error) {
	a.store.Clear()
	a.path = path
	a.kind = KindUnknown

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat archive: %w", err)
	}

	if info.IsDir() {
		a.kind = KindDirectoryTree
		if err := readDirectoryTree(a.store, path); err != nil {
			a.store.Clear()
			return false, err
		}
		a.store.setLoaded()
		return true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read archive: %w", err)
	}

	if isModernContainer(data) {
		a.kind = KindModern
		if err := readModernContainer(a.store, data); err != nil {
			a.store.Clear()
			return false, err
		}
	} else {
		a.kind = KindLegacy
		// 旧形式は常にベストエフォート: 途中で壊れていても
		// そこまでのランプを保持して正常終了する
		readLegacyContainer(a.store, data)
	}

	a.store.setLoaded()
	return true, nil
}

// Dispose はアーカイブの状態をすべて破棄します
func (a *Archive) Dispose() {
	a.store.Clear()
	a.path = ""
	a.kind = KindUnknown
}

// Path は読み込み元のパスを返します
func (a *Archive) Path() string {
	return a.path
}

// Kind は判定されたコンテナ形式を返します
func (a *Archive) Kind() ContainerKind {
	return a.kind
}

// Loaded は読み込みが完了しているかどうかを返します
func (a *Archive) Loaded() bool {
	return a.store.Loaded()
}

// Store は所有するStoreを返します
func (a *Archive) Store() *Store {
	return a.store
}

// GetLump はランプのバイト列を返します
func (a *Archive) GetLump(name string) ([]byte, bool) {
	return a.store.Get(name)
}

// GetLumpAsText はランプをUTF-8文字列として返します
func (a *Archive) GetLumpAsText(name string) (string, bool) {
	return a.store.GetText(name)
}

// HasLump はランプが存在するか確認します
func (a *Archive) HasLump(name string) bool {
	return a.store.Has(name)
}

// ListLumpNames は全ランプ名を返します（順序は不定）
func (a *Archive) ListLumpNames() []string {
	return a.store.Names()
}

// GetLumpSize はランプのバイト数を返します。存在しない場合は -1 です。
func (a *Archive) GetLumpSize(name string) int {
	return a.store.Size(name)
}
