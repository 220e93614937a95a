package lump

import (
	"bytes"
	"encoding/binary"
)

// readLegacyContainer は旧形式コンテナをパースしてStoreに登録します。
//
// 旧形式は名前(NUL終端ASCII) | サイズ(int32LE) | データ の繰り返しです。
// 以下のいずれかでパースを終了しますが、エラーにはしません:
//   - ストリーム終端 (EOF)
//   - 空の名前（NULの前に1バイトもない）
//   - 負のサイズ、または残りバイト数を超えるサイズ
//
// 途中で壊れていても、そこまでに読めたランプはすべて保持されます。
// これは旧形式の寛容なベストエフォート仕様に合わせた挙動です。
func readLegacyContainer(store *Store, data []byte) {
	pos := 0
	for pos < len(data) {
		// NUL終端の名前を読む
		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			break // 終端のない名前はストリーム終端扱い
		}
		if nul == 0 {
			break // 空の名前は終了マーカー
		}
		name := string(data[pos : pos+nul])
		pos += nul + 1

		// サイズフィールド
		if pos+4 > len(data) {
			break
		}
		size := int32(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4
		if size < 0 || pos+int(size) > len(data) {
			break // サイズ不整合も早期終了のみ
		}

		payload := make([]byte, size)
		copy(payload, data[pos:pos+int(size)])
		store.Put(name, payload)
		pos += int(size)
	}
}
