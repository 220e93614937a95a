// Package lump はRPGアーカイブ（ランプファイルまたはディレクトリツリー）を
// 読み込むためのパッケージです。
//
// サポートするアーカイブ形式:
//   - Modern: 先頭4バイトが "RPG!" のタグ付きディレクトリ形式
//   - Legacy: 名前/サイズ/データが連続する旧形式のストリーム
//   - DirectoryTree: ディレクトリツリー（1ファイル = 1ランプ）
//
// 基本的な使い方:
//
//	archive := lump.NewArchive()
//	if ok, err := archive.LoadArchive("game.rpg"); ok {
//	    defer archive.Dispose()
//	    data, found := archive.GetLump("heroes.reld")
//	    // ランプを処理...
//	}
package lump

// Store はランプ名から生バイト列へのマッピングです。
// 同期的な単一スレッド利用のみを想定しており、内部ロックは持ちません。
// 複数ゴルーチンから使う場合は呼び出し側で直列化してください。
type Store struct {
	lumps  map[string][]byte
	loaded bool
}

// NewStore は新しい空のStoreを作成します
func NewStore() *Store {
	return &Store{lumps: make(map[string][]byte)}
}

// Put はランプを無条件に上書き登録します。
// 同名のランプがある場合は後勝ちです。
func (s *Store) Put(name string, data []byte) {
	s.lumps[name] = data
}

// Get はランプのバイト列を返します。
// 見つからない場合はエラーではなく false を返します。呼び出し側は
// これを利用してフォールバック名（新形式名→旧形式名）を順に試します。
func (s *Store) Get(name string) ([]byte, bool) {
	data, ok := s.lumps[name]
	return data, ok
}

// GetText はランプをUTF-8文字列として返します
func (s *Store) GetText(name string) (string, bool) {
	data, ok := s.lumps[name]
	if !ok {
		return "", false
	}
	return string(data), true
}

// Has はランプが存在するか確認します
func (s *Store) Has(name string) bool {
	_, ok := s.lumps[name]
	return ok
}

// Names は全ランプ名を返します（順序は不定）
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.lumps))
	for name := range s.lumps {
		names = append(names, name)
	}
	return names
}

// Size はランプのバイト数を返します。存在しない場合は -1 を返します。
func (s *Store) Size(name string) int {
	data, ok := s.lumps[name]
	if !ok {
		return -1
	}
	return len(data)
}

// Len は登録されているランプ数を返します
func (s *Store) Len() int {
	return len(s.lumps)
}

// Loaded は読み込みが完了しているかどうかを返します
func (s *Store) Loaded() bool {
	return s.loaded
}

// Clear は全ランプを破棄し、読み込みフラグをリセットします。
// 読み込みの途中で失敗しても前回のランプが残らないよう、
// 毎回の読み込み開始時に必ず呼ばれます。
func (s *Store) Clear() {
	s.lumps = make(map[string][]byte)
	s.loaded = false
}

func (s *Store) setLoaded() {
	s.loaded = true
}
