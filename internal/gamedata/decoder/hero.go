package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacyStats は旧形式の基本ステータス（8×int32）です
type legacyStats struct {
	HP      int32
	MP      int32
	Attack  int32
	Agility int32
	Defense int32
	Magic   int32
	Will    int32
	Speed   int32
}

func (s legacyStats) toModel() models.Stats {
	return models.Stats{
		HP:      s.HP,
		MP:      s.MP,
		Attack:  s.Attack,
		Agility: s.Agility,
		Defense: s.Defense,
		Magic:   s.Magic,
		Will:    s.Will,
		Speed:   s.Speed,
	}
}

// legacyHandPos は旧形式の手元座標です
type legacyHandPos struct {
	X int16
	Y int16
}

// legacyHero は旧形式のヒーローレコード（256バイト固定）です
type legacyHero struct {
	Name            [32]byte
	WalkSprite      int32
	WalkPalette     int32
	BattleSprite    int32
	BattlePalette   int32
	Portrait        int32
	PortraitPalette int32
	Level           int32
	Experience      int32
	Stats           legacyStats
	DefaultWeapon   int32
	ElementResists  [8]float32
	HandPositions   [2]legacyHandPos
	Spells          [24]int32
	Reserved        [20]byte
}

// DecodeHeroes はheroesチャンクをHeroレコードの配列にデコードします
func DecodeHeroes(data []byte) ([]models.Hero, error) {
	if reld.IsRELD(data) {
		return decodeModernHeroes(data)
	}
	return decodeLegacyHeroes(data)
}

func decodeModernHeroes(data []byte) ([]models.Hero, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	heroes := []models.Hero{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "HERO" {
			continue // 未知のタグは読み飛ばす
		}
		hero, err := decodeHeroBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("hero %d: %w", len(heroes), err)
		}
		heroes = append(heroes, hero)
	}
	return heroes, nil
}

// decodeHeroBlock は1つのHEROブロックのペイロードをデコードします。
// フィールドは形式で定められた固定順で並びます。
func decodeHeroBlock(payload []byte) (models.Hero, error) {
	p := reld.NewPayloadReader(payload)
	var hero models.Hero
	var err error

	if hero.Name, err = p.String(); err != nil {
		return hero, err
	}
	ints := []*int32{
		&hero.WalkSprite, &hero.WalkPalette,
		&hero.BattleSprite, &hero.BattlePalette,
		&hero.Portrait, &hero.PortraitPalette,
		&hero.Level, &hero.Experience,
	}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return hero, err
		}
	}
	stats := []*int32{
		&hero.Stats.HP, &hero.Stats.MP, &hero.Stats.Attack, &hero.Stats.Agility,
		&hero.Stats.Defense, &hero.Stats.Magic, &hero.Stats.Will, &hero.Stats.Speed,
	}
	for _, dst := range stats {
		if *dst, err = p.Int32(); err != nil {
			return hero, err
		}
	}
	if hero.DefaultWeapon, err = p.Int32(); err != nil {
		return hero, err
	}

	resists, err := p.Float32Array()
	if err != nil {
		return hero, err
	}
	copy(hero.ElementResists[:], resists)

	// 手元座標はX/Yを平坦化したint16配列（2対 = 4要素）
	handPos, err := p.Int16Array()
	if err != nil {
		return hero, err
	}
	for i := 0; i < len(hero.HandPositions) && i*2+1 < len(handPos); i++ {
		hero.HandPositions[i] = models.HandPos{X: handPos[i*2], Y: handPos[i*2+1]}
	}

	if hero.Spells, err = p.Int32Array(); err != nil {
		return hero, err
	}

	return hero, nil
}

func decodeLegacyHeroes(data []byte) ([]models.Hero, error) {
	heroes := []models.Hero{}
	for i, raw := range legacyRecords(data, HeroStride) {
		var rec legacyHero
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("hero record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("hero record %d: %w", i, err)
		}
		if name == "" {
			continue // 空名レコードは未使用スロットとして除外
		}
		hero := models.Hero{
			Name:            name,
			WalkSprite:      rec.WalkSprite,
			WalkPalette:     rec.WalkPalette,
			BattleSprite:    rec.BattleSprite,
			BattlePalette:   rec.BattlePalette,
			Portrait:        rec.Portrait,
			PortraitPalette: rec.PortraitPalette,
			Level:           rec.Level,
			Experience:      rec.Experience,
			Stats:           rec.Stats.toModel(),
			DefaultWeapon:   rec.DefaultWeapon,
			ElementResists:  rec.ElementResists,
			Spells:          append([]int32{}, rec.Spells[:]...),
		}
		for j, hp := range rec.HandPositions {
			hero.HandPositions[j] = models.HandPos{X: hp.X, Y: hp.Y}
		}
		heroes = append(heroes, hero)
	}
	return heroes, nil
}
