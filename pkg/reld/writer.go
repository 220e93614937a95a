package reld

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer はRELDチャンクを構築します。
// テストのフィクスチャ生成と、ディレクトリ形式からの再パックで使用します。
type Writer struct {
	buf []byte
}

// NewWriter は指定バージョンのRELDチャンクライターを作成します
func NewWriter(version int32) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.buf = append(w.buf, Marker...)
	w.buf = appendInt32(w.buf, version)
	return w
}

// AddBlock はタグとペイロードを1ブロックとして追加します。
// タグは4バイト固定でなければなりません。
func (w *Writer) AddBlock(tag string, payload []byte) error {
	if len(tag) != TagSize {
		return fmt.Errorf("invalid tag %q: must be %d bytes", tag, TagSize)
	}
	w.buf = append(w.buf, tag...)
	w.buf = appendInt32(w.buf, int32(len(payload)))
	w.buf = append(w.buf, payload...)
	return nil
}

// Bytes は構築したチャンク全体を返します
func (w *Writer) Bytes() []byte {
	return w.buf
}

// BlockBuilder は1ブロック分のペイロードを組み立てます。
// PayloadReaderと対になるエンコーダです。
type BlockBuilder struct {
	buf []byte
}

// NewBlockBuilder は新しいBlockBuilderを作成します
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// Byte は1バイトを書き込みます
func (b *BlockBuilder) Byte(v byte) *BlockBuilder {
	b.buf = append(b.buf, v)
	return b
}

// Int16 はリトルエンディアンのint16を書き込みます
func (b *BlockBuilder) Int16(v int16) *BlockBuilder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, uint16(v))
	return b
}

// Int32 はリトルエンディアンのint32を書き込みます
func (b *BlockBuilder) Int32(v int32) *BlockBuilder {
	b.buf = appendInt32(b.buf, v)
	return b
}

// Float32 はリトルエンディアンのfloat32を書き込みます
func (b *BlockBuilder) Float32(v float32) *BlockBuilder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, math.Float32bits(v))
	return b
}

// Raw は生バイト列をそのまま書き込みます
func (b *BlockBuilder) Raw(data []byte) *BlockBuilder {
	b.buf = append(b.buf, data...)
	return b
}

// String は長さプレフィックス付き文字列を書き込みます
func (b *BlockBuilder) String(s string) *BlockBuilder {
	b.Int32(int32(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

// ByteArray は要素数プレフィックス付きのバイト配列を書き込みます
func (b *BlockBuilder) ByteArray(data []byte) *BlockBuilder {
	b.Int32(int32(len(data)))
	b.buf = append(b.buf, data...)
	return b
}

// Int16Array は要素数プレフィックス付きのint16配列を書き込みます
func (b *BlockBuilder) Int16Array(vs []int16) *BlockBuilder {
	b.Int32(int32(len(vs)))
	for _, v := range vs {
		b.Int16(v)
	}
	return b
}

// Int32Array は要素数プレフィックス付きのint32配列を書き込みます
func (b *BlockBuilder) Int32Array(vs []int32) *BlockBuilder {
	b.Int32(int32(len(vs)))
	for _, v := range vs {
		b.Int32(v)
	}
	return b
}

// Float32Array は要素数プレフィックス付きのfloat32配列を書き込みます
func (b *BlockBuilder) Float32Array(vs []float32) *BlockBuilder {
	b.Int32(int32(len(vs)))
	for _, v := range vs {
		b.Float32(v)
	}
	return b
}

// Bytes は組み立てたペイロードを返します
func (b *BlockBuilder) Bytes() []byte {
	return b.buf
}

func appendInt32(buf []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(buf, uint32(v))
}
