package lump

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
)

// WriterVersion は書き出す新形式コンテナのバージョン番号です
const WriterVersion = 1

// WriteModern はStoreの内容を新形式コンテナとして書き出します。
// ディレクトリは名前のソート順で並べるため、同じランプ集合からは
// 常にバイト単位で同一の出力が得られます。
// 32バイトを超える名前は新形式では表現できないためエラーになります。
func WriteModern(store *Store, w io.Writer) error {
	names := store.Names()
	sort.Strings(names)

	for _, name := range names {
		if len(name) > NameFieldSize {
			return fmt.Errorf("lump name %q exceeds %d bytes", name, NameFieldSize)
		}
	}

	dirByteSize := int32(len(names) * dirEntrySize)

	// ヘッダ
	header := make([]byte, 0, headerSize)
	header = append(header, Magic...)
	header = binary.LittleEndian.AppendUint32(header, uint32(WriterVersion))
	header = binary.LittleEndian.AppendUint32(header, uint32(len(names)))
	header = binary.LittleEndian.AppendUint32(header, uint32(dirByteSize))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// ディレクトリ: ペイロードはディレクトリ直後から詰めて配置する
	offset := int32(headerSize) + dirByteSize
	dir := make([]byte, 0, dirByteSize)
	for _, name := range names {
		data, _ := store.Get(name)
		var field [NameFieldSize]byte
		copy(field[:], name)
		dir = append(dir, field[:]...)
		dir = binary.LittleEndian.AppendUint32(dir, uint32(offset))
		dir = binary.LittleEndian.AppendUint32(dir, uint32(len(data)))
		dir = binary.LittleEndian.AppendUint32(dir, 0) // flags
		offset += int32(len(data))
	}
	if _, err := w.Write(dir); err != nil {
		return fmt.Errorf("failed to write directory: %w", err)
	}

	// ペイロード本体
	for _, name := range names {
		data, _ := store.Get(name)
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write lump %s: %w", name, err)
		}
	}

	return nil
}

// WriteModernFile はStoreの内容を新形式コンテナとしてファイルに書き出します
func WriteModernFile(store *Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteModern(store, f); err != nil {
		return err
	}
	return f.Close()
}
