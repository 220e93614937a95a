// Package decoder はランプのバイト列を型付きレコードにデコードします。
//
// 各カテゴリには2つのデコード経路があります:
//   - Modern: チャンク先頭が "RELD" マーカーのタグ付きブロック形式。
//     未知のタグはblockSize分読み飛ばします（前方互換性）。
//   - Legacy: マーカーなしの固定長レコード配列。レコード数は
//     チャンク長をストライドで割った商（切り捨て）です。
//
// 経路の選択はチャンクの先頭4バイトのみで行います。
package decoder

import (
	"bytes"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/fileutil"
)

// 旧形式の1レコードあたりのバイト数（カテゴリ別ストライド）
const (
	HeroStride    = 256
	EnemyStride   = 160
	MapStride     = 64
	ItemStride    = 128
	SpellStride   = 96
	ScriptStride  = 64
	TextureStride = 48
	AudioStride   = 56
	SaveStride    = 1024
)

// legacyRecords はチャンクをストライドごとに分割します。
// チャンク長がストライドの倍数でない場合、端数は読み捨てます
// （floor(len/stride) 個の完全なレコードのみを処理します）。
func legacyRecords(data []byte, stride int) [][]byte {
	count := len(data) / stride
	records := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, data[i*stride:(i+1)*stride])
	}
	return records
}

// fixedName は固定長の名前フィールドから末尾のNULを除去し、
// Windows-1252からUTF-8に変換します。
func fixedName(field []byte) (string, error) {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	if len(field) == 0 {
		return "", nil
	}
	return fileutil.FromWindows1252(field)
}
