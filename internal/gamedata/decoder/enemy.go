package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacyEnemy は旧形式のエネミーレコード（160バイト固定）です
type legacyEnemy struct {
	Name           [32]byte
	Picture        int32
	Palette        int32
	Stats          legacyStats
	Gold           int32
	Experience     int32
	StealItem      int32
	StealChance    int32
	ElementResists [8]float32
	Attacks        [8]int32
	DeathSound     int32
	Reserved       [4]byte
}

// DecodeEnemies はenemiesチャンクをEnemyレコードの配列にデコードします
func DecodeEnemies(data []byte) ([]models.Enemy, error) {
	if reld.IsRELD(data) {
		return decodeModernEnemies(data)
	}
	return decodeLegacyEnemies(data)
}

func decodeModernEnemies(data []byte) ([]models.Enemy, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	enemies := []models.Enemy{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "ENEM" {
			continue
		}
		enemy, err := decodeEnemyBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("enemy %d: %w", len(enemies), err)
		}
		enemies = append(enemies, enemy)
	}
	return enemies, nil
}

func decodeEnemyBlock(payload []byte) (models.Enemy, error) {
	p := reld.NewPayloadReader(payload)
	var enemy models.Enemy
	var err error

	if enemy.Name, err = p.String(); err != nil {
		return enemy, err
	}
	ints := []*int32{
		&enemy.Picture, &enemy.Palette,
		&enemy.Stats.HP, &enemy.Stats.MP, &enemy.Stats.Attack, &enemy.Stats.Agility,
		&enemy.Stats.Defense, &enemy.Stats.Magic, &enemy.Stats.Will, &enemy.Stats.Speed,
		&enemy.Gold, &enemy.Experience,
		&enemy.StealItem, &enemy.StealChance,
	}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return enemy, err
		}
	}

	resists, err := p.Float32Array()
	if err != nil {
		return enemy, err
	}
	copy(enemy.ElementResists[:], resists)

	if enemy.Attacks, err = p.Int32Array(); err != nil {
		return enemy, err
	}
	if enemy.DeathSound, err = p.Int32(); err != nil {
		return enemy, err
	}

	return enemy, nil
}

func decodeLegacyEnemies(data []byte) ([]models.Enemy, error) {
	enemies := []models.Enemy{}
	for i, raw := range legacyRecords(data, EnemyStride) {
		var rec legacyEnemy
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("enemy record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("enemy record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		enemies = append(enemies, models.Enemy{
			Name:           name,
			Picture:        rec.Picture,
			Palette:        rec.Palette,
			Stats:          rec.Stats.toModel(),
			Gold:           rec.Gold,
			Experience:     rec.Experience,
			StealItem:      rec.StealItem,
			StealChance:    rec.StealChance,
			ElementResists: rec.ElementResists,
			Attacks:        append([]int32{}, rec.Attacks[:]...),
			DeathSound:     rec.DeathSound,
		})
	}
	return enemies, nil
}
