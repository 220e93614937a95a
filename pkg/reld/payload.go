package reld

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PayloadReader は1ブロックのペイロードを順に読み取るカーソルです。
// 文字列は int32 の長さ + ASCIIバイト列、数値配列は int32 の要素数 + 要素列
// としてエンコードされています。
type PayloadReader struct {
	data []byte
	pos  int
}

// NewPayloadReader は新しいPayloadReaderを作成します
func NewPayloadReader(payload []byte) *PayloadReader {
	return &PayloadReader{data: payload}
}

// Remaining は未読のバイト数を返します
func (p *PayloadReader) Remaining() int {
	return len(p.data) - p.pos
}

func (p *PayloadReader) need(n int) error {
	if p.pos+n > len(p.data) {
		return fmt.Errorf("payload underrun at offset %d: need %d bytes, have %d", p.pos, n, len(p.data)-p.pos)
	}
	return nil
}

// Byte は1バイトを読み取ります
func (p *PayloadReader) Byte() (byte, error) {
	if err := p.need(1); err != nil {
		return 0, err
	}
	b := p.data[p.pos]
	p.pos++
	return b, nil
}

// Int16 はリトルエンディアンのint16を読み取ります
func (p *PayloadReader) Int16() (int16, error) {
	if err := p.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(p.data[p.pos:]))
	p.pos += 2
	return v, nil
}

// Int32 はリトルエンディアンのint32を読み取ります
func (p *PayloadReader) Int32() (int32, error) {
	if err := p.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(p.data[p.pos:]))
	p.pos += 4
	return v, nil
}

// Float32 はリトルエンディアンのfloat32を読み取ります
func (p *PayloadReader) Float32() (float32, error) {
	if err := p.need(4); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(p.data[p.pos:]))
	p.pos += 4
	return v, nil
}

// Bytes は指定バイト数の生データを読み取ります
func (p *PayloadReader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative byte count %d", n)
	}
	if err := p.need(n); err != nil {
		return nil, err
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b, nil
}

// String は長さプレフィックス付き文字列を読み取ります
func (p *PayloadReader) String() (string, error) {
	n, err := p.Int32()
	if err != nil {
		return "", err
	}
	b, err := p.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ByteArray は要素数プレフィックス付きのバイト配列を読み取ります
func (p *PayloadReader) ByteArray() ([]byte, error) {
	n, err := p.Int32()
	if err != nil {
		return nil, err
	}
	return p.Bytes(int(n))
}

// Int16Array は要素数プレフィックス付きのint16配列を読み取ります
func (p *PayloadReader) Int16Array() ([]int16, error) {
	n, err := p.Int32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative array count %d", n)
	}
	if err := p.need(int(n) * 2); err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(p.data[p.pos:]))
		p.pos += 2
	}
	return out, nil
}

// Int32Array は要素数プレフィックス付きのint32配列を読み取ります
func (p *PayloadReader) Int32Array() ([]int32, error) {
	n, err := p.Int32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative array count %d", n)
	}
	if err := p.need(int(n) * 4); err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(p.data[p.pos:]))
		p.pos += 4
	}
	return out, nil
}

// Float32Array は要素数プレフィックス付きのfloat32配列を読み取ります
func (p *PayloadReader) Float32Array() ([]float32, error) {
	n, err := p.Int32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative array count %d", n)
	}
	if err := p.need(int(n) * 4); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p.data[p.pos:]))
		p.pos += 4
	}
	return out, nil
}
