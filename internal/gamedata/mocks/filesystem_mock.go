package mocks

// MockFileSystem はテスト用のFileSystem実装
type MockFileSystem struct {
	Files     map[string][]byte
	Dirs      map[string]bool
	Saved     map[string][]byte
	SaveError error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
		Saved: make(map[string][]byte),
	}
}

// FileExists はファイルが存在するか確認します
func (m *MockFileSystem) FileExists(filename string) bool {
	_, ok := m.Files[filename]
	return ok
}

// IsDirectory はパスがディレクトリか確認します
func (m *MockFileSystem) IsDirectory(path string) bool {
	return m.Dirs[path]
}

// SaveLumpFile はランプの書き出しを記録します
func (m *MockFileSystem) SaveLumpFile(outputPath string, data []byte) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Saved[outputPath] = data
	return nil
}
