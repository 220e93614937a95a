// Package errors はゲームデータ読み込みのカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrArchiveNotLoaded はアーカイブが読み込まれていない場合のエラー
	ErrArchiveNotLoaded = errors.New("アーカイブが読み込まれていません")

	// ErrInvalidArchive はアーカイブが無効な場合のエラー
	ErrInvalidArchive = errors.New("無効なアーカイブファイルです")

	// ErrDecodeFailure はレコードのデコードに失敗した場合のエラー
	ErrDecodeFailure = errors.New("レコードのデコードに失敗しました")
)

// DecodeError はカテゴリ単位のデコードエラーです。
// アグリゲータはこのエラーを捕捉してログに残し、当該カテゴリのみを
// 「データなし」として読み込みを継続します。
type DecodeError struct {
	Category string // カテゴリ名（heroes, enemies, ...）
	Chunk    string // 読み取っていたチャンク名
	Err      error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *DecodeError) Error() string {
	if e.Chunk != "" {
		return fmt.Sprintf("%s (%s) のデコードエラー: %v", e.Category, e.Chunk, e.Err)
	}
	return fmt.Sprintf("%s のデコードエラー: %v", e.Category, e.Err)
}

// Unwrap は元のエラーを返します
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError は新しいDecodeErrorを作成します
func NewDecodeError(category, chunk string, err error) *DecodeError {
	return &DecodeError{
		Category: category,
		Chunk:    chunk,
		Err:      err,
	}
}
