package lump

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic は新形式コンテナの先頭4バイトです
const Magic = "RPG!"

// NameFieldSize はディレクトリエントリの名前フィールドの固定長です
const NameFieldSize = 32

// ヘッダ: magic(4) | version(int32) | lumpCount(int32) | dirByteSize(int32)
const headerSize = 16

// エントリ: name(32) | offset(int32) | size(int32) | flags(int32)
const dirEntrySize = NameFieldSize + 12

// directoryEntry は新形式コンテナのディレクトリエントリです
type directoryEntry struct {
	name   string
	offset int32
	size   int32
	flags  int32 // 読み取るが解釈しない（前方互換用フィールド）
}

func isModernContainer(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}

// readModernContainer は新形式コンテナをパースしてStoreに登録します。
// 先にディレクトリ全体を読み取り、その後で各エントリのオフセットへ
// シークしてペイロードを読み取ります。
// ディレクトリの主張とストリーム長が食い違う場合はエラーで中断します。
func readModernContainer(store *Store, data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("truncated container header: %d bytes", len(data))
	}

	// バージョンは所定の位置で読み取るが、サポート集合との照合はしない
	_ = int32(binary.LittleEndian.Uint32(data[4:]))
	lumpCount := int32(binary.LittleEndian.Uint32(data[8:]))
	dirByteSize := int32(binary.LittleEndian.Uint32(data[12:]))

	if lumpCount < 0 {
		return fmt.Errorf("invalid lump count %d", lumpCount)
	}
	if dirByteSize < 0 || headerSize+int(dirByteSize) > len(data) {
		return fmt.Errorf("invalid directory size %d (file is %d bytes)", dirByteSize, len(data))
	}
	dirEnd := headerSize + int(lumpCount)*dirEntrySize
	if dirEnd > len(data) {
		return fmt.Errorf("directory claims %d entries but file is %d bytes", lumpCount, len(data))
	}

	// ディレクトリ全体を先に読み取る
	entries := make([]directoryEntry, 0, lumpCount)
	for i := int32(0); i < lumpCount; i++ {
		off := headerSize + int(i)*dirEntrySize
		raw := data[off : off+dirEntrySize]
		name := trimNameField(raw[:NameFieldSize])
		entries = append(entries, directoryEntry{
			name:   name,
			offset: int32(binary.LittleEndian.Uint32(raw[NameFieldSize:])),
			size:   int32(binary.LittleEndian.Uint32(raw[NameFieldSize+4:])),
			flags:  int32(binary.LittleEndian.Uint32(raw[NameFieldSize+8:])),
		})
	}

	// 各エントリのペイロードを読み取る
	for i, e := range entries {
		if e.size < 0 {
			return fmt.Errorf("entry %d (%s): negative size %d", i, e.name, e.size)
		}
		if e.offset < 0 || int(e.offset)+int(e.size) > len(data) {
			return fmt.Errorf("entry %d (%s): payload [%d, %d) outside file of %d bytes",
				i, e.name, e.offset, int(e.offset)+int(e.size), len(data))
		}
		payload := make([]byte, e.size)
		copy(payload, data[e.offset:int(e.offset)+int(e.size)])
		store.Put(e.name, payload)
	}

	return nil
}

// trimNameField は固定長の名前フィールドから末尾のNULを除去します
func trimNameField(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		return string(field[:i])
	}
	return string(field)
}
