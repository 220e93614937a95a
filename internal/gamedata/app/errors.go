package app

import "errors"

var (
	// ErrNoArchiveSpecified はアーカイブパスが指定されていない場合のエラー
	ErrNoArchiveSpecified = errors.New("アーカイブパスが指定されていません")

	// ErrLoadFailed はアーカイブの読み込みに失敗した場合のエラー
	ErrLoadFailed = errors.New("アーカイブの読み込みに失敗しました")

	// ErrExtractFailed はランプの書き出しに失敗した場合のエラー
	ErrExtractFailed = errors.New("ランプの書き出しに失敗しました")
)
