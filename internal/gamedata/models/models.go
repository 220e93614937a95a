// Package models はゲームデータのレコード型を定義します。
// どのレコードもデコード後はアーカイブへの参照を持たない不変のスナップショットで、
// レンダラやランタイム側の協力者にそのまま渡されます。
package models

// Stats はヒーロー/エネミー共通の基本ステータスです
type Stats struct {
	HP      int32
	MP      int32
	Attack  int32
	Agility int32
	Defense int32
	Magic   int32
	Will    int32
	Speed   int32
}

// HandPos は武器の手元座標（1対のX/Y）です
type HandPos struct {
	X int16
	Y int16
}

// General はゲーム全体の設定レコードです。
// 他のカテゴリと異なり、配列ではなく単一レコードです。
type General struct {
	Title         string
	EngineVersion int32
	StartMap      int32
	StartX        int32
	StartY        int32
	TitleMusic    int32
	BattleMusic   int32
	VictoryMusic  int32
	MaxHeroes     int32
	MaxEnemies    int32
	MaxMaps       int32
	MaxItems      int32
	MaxSpells     int32
	MaxScripts    int32
	MaxTextures   int32
	MaxAudio      int32
	StartingGold  int32
}

// Hero はプレイヤーキャラクターのレコードです
type Hero struct {
	Name            string
	WalkSprite      int32
	WalkPalette     int32
	BattleSprite    int32
	BattlePalette   int32
	Portrait        int32
	PortraitPalette int32
	Level           int32
	Experience      int32
	Stats           Stats
	DefaultWeapon   int32
	ElementResists  [8]float32
	HandPositions   [2]HandPos
	Spells          []int32
}

// Enemy は敵キャラクターのレコードです
type Enemy struct {
	Name           string
	Picture        int32
	Palette        int32
	Stats          Stats
	Gold           int32
	Experience     int32
	StealItem      int32
	StealChance    int32
	ElementResists [8]float32
	Attacks        []int32
	DeathSound     int32
}

// MapNPC はマップ上のNPC配置です
type MapNPC struct {
	X         int16
	Y         int16
	Picture   int16
	Palette   int16
	MoveType  int16
	MoveSpeed int16
	ScriptID  int32
}

// MapEvent はマップ上のイベント配置です
type MapEvent struct {
	X        int16
	Y        int16
	Trigger  int16
	ScriptID int32
}

// MapLayer は1レイヤー分のタイルグリッドです。
// Tilesは行優先で Width×Height 要素を持ちます。
type MapLayer struct {
	Tiles []int16
}

// Map はマップレコードです
type Map struct {
	Name    string
	Tileset int32
	Music   int32
	Width   int32
	Height  int32
	Layers  []MapLayer
	// Passable は通行可否のグリッドです（行優先、Width×Height要素）
	Passable []bool
	NPCs     []MapNPC
	Events   []MapEvent
}

// Item はアイテムレコードです
type Item struct {
	Name        string
	Info        string
	Picture     int32
	Palette     int32
	Value       int32
	Kind        int32
	EquipSlot   int32
	AttackID    int32
	StatBonuses [8]int32
	Flags       int32
}

// Spell は魔法レコードです
type Spell struct {
	Name       string
	Picture    int32
	Palette    int32
	MPCost     int32
	Target     int32
	Power      int32
	Element    int32
	Accuracy   int32
	CastSound  int32
	LearnLevel int32
	Flags      int32
}

// Script はスクリプトコンテナのレコードです。
// バイトコードの実行セマンティクスはこのパッケージの範囲外で、
// ここではコンテナ形式のみを扱います。
type Script struct {
	Name     string
	ID       int32
	Format   int32
	ArgCount int32
	// Length は旧形式ヘッダが主張するバイトコード長です。
	// 旧形式チャンクはヘッダのみでコード本体を持ちません。
	Length int32
	Code   []byte
}

// Texture はテクスチャレコードです。
// ピクセルデータは不透明なペイロードとして保持され、変換は行いません。
type Texture struct {
	Name         string
	Width        int16
	Height       int16
	BitsPerPixel int16
	PaletteID    int16
	Pixels       []byte
}

// Audio はオーディオレコードです
type Audio struct {
	Name          string
	Format        int32
	SampleRate    int32
	Channels      int16
	BitsPerSample int16
	LoopStart     int32
	LoopEnd       int32
	Samples       []byte
}

// SaveHero はセーブデータ内のパーティメンバーのスナップショットです
type SaveHero struct {
	Level      int32
	Experience int32
	HP         int32
	MP         int32
}

// SaveItem はセーブデータ内の所持アイテムです
type SaveItem struct {
	ItemID int32
	Count  int32
}

// Save はセーブゲームレコードです
type Save struct {
	Name        string
	MapID       int32
	X           int32
	Y           int32
	Direction   int32
	Gold        int32
	PlaySeconds int32
	Party       []int32
	PartyStats  []SaveHero
	Inventory   []SaveItem
	Globals     []int32
}

// Snapshot は1回のloadGameData呼び出しの完全な結果です。
// Generalはチャンクが存在しない場合nilですが、各スライスは
// 常に非nil（チャンクがなければ空）で、呼び出し側は配列レベルの
// nilチェックを必要としません。
type Snapshot struct {
	General  *General
	Heroes   []Hero
	Enemies  []Enemy
	Maps     []Map
	Items    []Item
	Spells   []Spell
	Scripts  []Script
	Textures []Texture
	Audio    []Audio
	Saves    []Save
}
