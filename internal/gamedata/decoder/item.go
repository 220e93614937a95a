package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacyItem は旧形式のアイテムレコード（128バイト固定）です
type legacyItem struct {
	Name        [32]byte
	Info        [32]byte
	Picture     int32
	Palette     int32
	Value       int32
	Kind        int32
	EquipSlot   int32
	AttackID    int32
	StatBonuses [8]int32
	Flags       int32
	Reserved    [4]byte
}

// DecodeItems はitemsチャンクをItemレコードの配列にデコードします
func DecodeItems(data []byte) ([]models.Item, error) {
	if reld.IsRELD(data) {
		return decodeModernItems(data)
	}
	return decodeLegacyItems(data)
}

func decodeModernItems(data []byte) ([]models.Item, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "ITEM" {
			continue
		}
		item, err := decodeItemBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", len(items), err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItemBlock(payload []byte) (models.Item, error) {
	p := reld.NewPayloadReader(payload)
	var item models.Item
	var err error

	if item.Name, err = p.String(); err != nil {
		return item, err
	}
	if item.Info, err = p.String(); err != nil {
		return item, err
	}
	ints := []*int32{
		&item.Picture, &item.Palette, &item.Value,
		&item.Kind, &item.EquipSlot, &item.AttackID,
	}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return item, err
		}
	}

	bonuses, err := p.Int32Array()
	if err != nil {
		return item, err
	}
	copy(item.StatBonuses[:], bonuses)

	if item.Flags, err = p.Int32(); err != nil {
		return item, err
	}

	return item, nil
}

func decodeLegacyItems(data []byte) ([]models.Item, error) {
	items := []models.Item{}
	for i, raw := range legacyRecords(data, ItemStride) {
		var rec legacyItem
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("item record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("item record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		info, err := fixedName(rec.Info[:])
		if err != nil {
			return nil, fmt.Errorf("item record %d: %w", i, err)
		}
		items = append(items, models.Item{
			Name:        name,
			Info:        info,
			Picture:     rec.Picture,
			Palette:     rec.Palette,
			Value:       rec.Value,
			Kind:        rec.Kind,
			EquipSlot:   rec.EquipSlot,
			AttackID:    rec.AttackID,
			StatBonuses: rec.StatBonuses,
			Flags:       rec.Flags,
		})
	}
	return items, nil
}
