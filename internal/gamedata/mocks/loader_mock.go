package mocks

import (
	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
)

// MockGameLoader はテスト用のGameLoader実装
type MockGameLoader struct {
	Snapshot   *models.Snapshot
	Error      error
	LoadedPath string
}

// LoadGameData は設定済みのスナップショットまたはエラーを返します
func (m *MockGameLoader) LoadGameData(path string) (*models.Snapshot, error) {
	m.LoadedPath = path
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Snapshot, nil
}

// MockLumpProvider はテスト用のLumpProvider実装
type MockLumpProvider struct {
	Lumps      map[string][]byte
	OpenOK     bool
	OpenError  error
	LoadedPath string
}

// LoadArchive は設定済みの結果を返します
func (m *MockLumpProvider) LoadArchive(path string) (bool, error) {
	m.LoadedPath = path
	return m.OpenOK, m.OpenError
}

// GetLump はランプのバイト列を返します
func (m *MockLumpProvider) GetLump(name string) ([]byte, bool) {
	data, ok := m.Lumps[name]
	return data, ok
}

// GetLumpAsText はランプをUTF-8文字列として返します
func (m *MockLumpProvider) GetLumpAsText(name string) (string, bool) {
	data, ok := m.Lumps[name]
	if !ok {
		return "", false
	}
	return string(data), true
}

// HasLump はランプが存在するか確認します
func (m *MockLumpProvider) HasLump(name string) bool {
	_, ok := m.Lumps[name]
	return ok
}

// ListLumpNames は全ランプ名を返します
func (m *MockLumpProvider) ListLumpNames() []string {
	names := make([]string, 0, len(m.Lumps))
	for name := range m.Lumps {
		names = append(names, name)
	}
	return names
}

// GetLumpSize はランプのバイト数を返します
func (m *MockLumpProvider) GetLumpSize(name string) int {
	data, ok := m.Lumps[name]
	if !ok {
		return -1
	}
	return len(data)
}
