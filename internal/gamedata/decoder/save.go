package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacySaveHero は旧形式セーブ内のパーティメンバーです
type legacySaveHero struct {
	Level      int32
	Experience int32
	HP         int32
	MP         int32
}

// legacySaveItem は旧形式セーブ内の所持アイテムです
type legacySaveItem struct {
	ItemID int32
	Count  int32
}

// legacySave は旧形式のセーブレコード（1024バイト固定）です
type legacySave struct {
	Name        [32]byte
	MapID       int32
	X           int32
	Y           int32
	Direction   int32
	Gold        int32
	PlaySeconds int32
	Party       [4]int32
	PartyStats  [4]legacySaveHero
	Inventory   [96]legacySaveItem
	Globals     [28]int32
	Reserved    [8]byte
}

// DecodeSaves はsavesチャンクをSaveレコードの配列にデコードします
func DecodeSaves(data []byte) ([]models.Save, error) {
	if reld.IsRELD(data) {
		return decodeModernSaves(data)
	}
	return decodeLegacySaves(data)
}

func decodeModernSaves(data []byte) ([]models.Save, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	saves := []models.Save{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "SAVE" {
			continue
		}
		save, err := decodeSaveBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("save %d: %w", len(saves), err)
		}
		saves = append(saves, save)
	}
	return saves, nil
}

func decodeSaveBlock(payload []byte) (models.Save, error) {
	p := reld.NewPayloadReader(payload)
	var save models.Save
	var err error

	if save.Name, err = p.String(); err != nil {
		return save, err
	}
	ints := []*int32{
		&save.MapID, &save.X, &save.Y, &save.Direction,
		&save.Gold, &save.PlaySeconds,
	}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return save, err
		}
	}

	if save.Party, err = p.Int32Array(); err != nil {
		return save, err
	}

	// パーティメンバーのスナップショットは1人あたり4値の平坦なint32配列
	statVals, err := p.Int32Array()
	if err != nil {
		return save, err
	}
	save.PartyStats = make([]models.SaveHero, 0, len(statVals)/4)
	for i := 0; i+3 < len(statVals); i += 4 {
		save.PartyStats = append(save.PartyStats, models.SaveHero{
			Level:      statVals[i],
			Experience: statVals[i+1],
			HP:         statVals[i+2],
			MP:         statVals[i+3],
		})
	}

	// 所持アイテムはID/個数の平坦なint32配列
	itemVals, err := p.Int32Array()
	if err != nil {
		return save, err
	}
	save.Inventory = make([]models.SaveItem, 0, len(itemVals)/2)
	for i := 0; i+1 < len(itemVals); i += 2 {
		save.Inventory = append(save.Inventory, models.SaveItem{
			ItemID: itemVals[i],
			Count:  itemVals[i+1],
		})
	}

	if save.Globals, err = p.Int32Array(); err != nil {
		return save, err
	}

	return save, nil
}

func decodeLegacySaves(data []byte) ([]models.Save, error) {
	saves := []models.Save{}
	for i, raw := range legacyRecords(data, SaveStride) {
		var rec legacySave
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("save record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("save record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		save := models.Save{
			Name:        name,
			MapID:       rec.MapID,
			X:           rec.X,
			Y:           rec.Y,
			Direction:   rec.Direction,
			Gold:        rec.Gold,
			PlaySeconds: rec.PlaySeconds,
			Party:       append([]int32{}, rec.Party[:]...),
			Globals:     append([]int32{}, rec.Globals[:]...),
		}
		save.PartyStats = make([]models.SaveHero, 0, len(rec.PartyStats))
		for _, h := range rec.PartyStats {
			save.PartyStats = append(save.PartyStats, models.SaveHero{
				Level:      h.Level,
				Experience: h.Experience,
				HP:         h.HP,
				MP:         h.MP,
			})
		}
		save.Inventory = make([]models.SaveItem, 0, len(rec.Inventory))
		for _, it := range rec.Inventory {
			save.Inventory = append(save.Inventory, models.SaveItem{ItemID: it.ItemID, Count: it.Count})
		}
		saves = append(saves, save)
	}
	return saves, nil
}
