package fileutil

import "errors"

var (
	// ErrCreateDirectory はディレクトリの作成に失敗した場合のエラー
	ErrCreateDirectory = errors.New("ディレクトリの作成に失敗しました")

	// ErrWriteFile はファイルの書き込みに失敗した場合のエラー
	ErrWriteFile = errors.New("ファイルの書き込みに失敗しました")
)
