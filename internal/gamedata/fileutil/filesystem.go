package fileutil

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists はファイルが存在するか確認します
func (fs *OSFileSystem) FileExists(filename string) bool {
	return FileExists(filename)
}

// IsDirectory はパスがディレクトリか確認します
func (fs *OSFileSystem) IsDirectory(path string) bool {
	return IsDirectory(path)
}

// SaveLumpFile はランプをファイルに書き出します
func (fs *OSFileSystem) SaveLumpFile(outputPath string, data []byte) error {
	return SaveLumpFile(outputPath, data)
}
