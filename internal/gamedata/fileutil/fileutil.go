// Package fileutil はファイル操作と文字コード変換のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
)

// FileExists はファイルが存在するか確認します
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsDirectory はパスがディレクトリか確認します
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FromWindows1252 はWindows-1252のバイト列をUTF-8文字列に変換します。
// 旧形式の固定長文字列フィールドはWindows-1252でエンコードされています。
func FromWindows1252(data []byte) (string, error) {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// SaveLumpFile はランプをファイルに書き出します。
// 出力先ディレクトリが存在しない場合は作成します。
func SaveLumpFile(outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	return nil
}
