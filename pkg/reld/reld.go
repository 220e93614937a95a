// Package reld はRELD形式（タグ付きブロックのバイナリサブフォーマット）を
// 読み書きするためのパッケージです。
//
// RELDチャンクの構造:
//
//	マーカー "RELD" (4バイト)
//	バージョン int32 (リトルエンディアン、読み取るが検証しない)
//	ブロックの繰り返し: タグ(4バイト固定ASCII) | サイズ(int32) | ペイロード
//
// 基本的な使い方:
//
//	r, err := reld.NewReader(data)
//	if err != nil {
//	    return err
//	}
//	for {
//	    block, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    switch block.Tag {
//	    case "HERO":
//	        // ペイロードを処理...
//	    default:
//	        // 未知のタグは読み飛ばす（前方互換性）
//	    }
//	}
package reld

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Marker はRELDチャンクの先頭4バイトです
const Marker = "RELD"

// TagSize はブロックタグの固定長です
const TagSize = 4

// IsRELD はデータがRELD形式かどうかを判定します
func IsRELD(data []byte) bool {
	return len(data) >= TagSize && string(data[:TagSize]) == Marker
}

// Block はRELDチャンク内の1ブロックを表します
type Block struct {
	Tag     string // 4文字固定のASCIIタグ
	Payload []byte
}

// Reader はRELDチャンクのブロックを順に読み取ります
type Reader struct {
	data    []byte
	pos     int
	Version int32 // チャンクヘッダのバージョン（検証はしない）
}

// NewReader は新しいReaderを作成します。
// データがRELD形式でない場合、またはバージョンフィールドが欠けている場合は
// エラーを返します。
func NewReader(data []byte) (*Reader, error) {
	if !IsRELD(data) {
		return nil, fmt.Errorf("missing RELD marker")
	}
	if len(data) < TagSize+4 {
		return nil, fmt.Errorf("truncated RELD header: %d bytes", len(data))
	}
	version := int32(binary.LittleEndian.Uint32(data[TagSize:]))
	return &Reader{
		data:    data,
		pos:     TagSize + 4,
		Version: version,
	}, nil
}

// Next は次のブロックを返します。
// チャンクの終端に達した場合は io.EOF を返します。
// ブロックヘッダまたはペイロードが途中で切れている場合はエラーを返します。
func (r *Reader) Next() (*Block, error) {
	if r.pos >= len(r.data) {
		return nil, io.EOF
	}
	if r.pos+TagSize+4 > len(r.data) {
		return nil, fmt.Errorf("truncated block header at offset %d", r.pos)
	}
	tag := string(r.data[r.pos : r.pos+TagSize])
	size := int32(binary.LittleEndian.Uint32(r.data[r.pos+TagSize:]))
	if size < 0 {
		return nil, fmt.Errorf("negative block size %d for tag %q", size, tag)
	}
	start := r.pos + TagSize + 4
	end := start + int(size)
	if end > len(r.data) {
		return nil, fmt.Errorf("block %q overruns chunk: need %d bytes, have %d", tag, size, len(r.data)-start)
	}
	r.pos = end
	return &Block{Tag: tag, Payload: r.data[start:end]}, nil
}
