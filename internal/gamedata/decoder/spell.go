package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacySpell は旧形式の魔法レコード（96バイト固定）です
type legacySpell struct {
	Name       [32]byte
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
	Reserved   [24]byte
}

// DecodeSpells はspellsチャンクをSpellレコードの配列にデコードします
func DecodeSpells(data []byte) ([]models.Spell, error) {
	if reld.IsRELD(data) {
		return decodeModernSpells(data)
	}
	return decodeLegacySpells(data)
}

func decodeModernSpells(data []byte) ([]models.Spell, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	spells := []models.Spell{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "SPEL" {
			continue
		}
		spell, err := decodeSpellBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("spell %d: %w", len(spells), err)
		}
		spells = append(spells, spell)
	}
	return spells, nil
}

func decodeSpellBlock(payload []byte) (models.Spell, error) {
	p := reld.NewPayloadReader(payload)
	var spell models.Spell
	var err error

	if spell.Name, err = p.String(); err != nil {
		return spell, err
	}
	ints := []*int32{
		&spell.Picture, &spell.Palette, &spell.MPCost, &spell.Target,
		&spell.Power, &spell.Element, &spell.Accuracy, &spell.CastSound,
		&spell.LearnLevel, &spell.Flags,
	}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return spell, err
		}
	}

	return spell, nil
}

func decodeLegacySpells(data []byte) ([]models.Spell, error) {
	spells := []models.Spell{}
	for i, raw := range legacyRecords(data, SpellStride) {
		var rec legacySpell
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("spell record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("spell record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		spells = append(spells, models.Spell{
			Name:       name,
			Picture:    rec.Picture,
			Palette:    rec.Palette,
			MPCost:     rec.MPCost,
			Target:     rec.Target,
			Power:      rec.Power,
			Element:    rec.Element,
			Accuracy:   rec.Accuracy,
			CastSound:  rec.CastSound,
			LearnLevel: rec.LearnLevel,
			Flags:      rec.Flags,
		})
	}
	return spells, nil
}
