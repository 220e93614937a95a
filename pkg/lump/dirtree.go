package lump

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readDirectoryTree はディレクトリツリーを再帰的に走査し、
// 各ファイルを1つのランプとしてStoreに登録します。
// ランプ名はルートからの相対パスで、OSのパス区切りは "/" に正規化されます。
// ファイル読み取りエラーは読み込み全体の失敗として伝播します。
func readDirectoryTree(store *Store, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		store.Put(filepath.ToSlash(rel), data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory %s: %w", root, err)
	}
	return nil
}
