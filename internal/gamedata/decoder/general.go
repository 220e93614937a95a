package decoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// 旧形式generalチャンクの絶対バイトオフセット表。
// 他のカテゴリと異なり、generalはフィールドを順次読みせず
// この表の位置へシークして読み取ります。
const (
	genOffTitle        = 0 // 32バイト固定、NULパディング
	genOffVersion      = 32
	genOffStartMap     = 36
	genOffStartX       = 40
	genOffStartY       = 44
	genOffTitleMusic   = 48
	genOffBattleMusic  = 52
	genOffVictoryMusic = 56
	genOffMaxHeroes    = 64
	genOffMaxEnemies   = 68
	genOffMaxMaps      = 72
	genOffMaxItems     = 76
	genOffMaxSpells    = 80
	genOffMaxScripts   = 84
	genOffMaxTextures  = 88
	genOffMaxAudio     = 92
	genOffStartingGold = 96

	genLegacyMinSize = 100
)

// DecodeGeneral はgeneralチャンクを単一のGeneralレコードにデコードします
func DecodeGeneral(data []byte) (*models.General, error) {
	if reld.IsRELD(data) {
		return decodeModernGeneral(data)
	}
	return decodeLegacyGeneral(data)
}

// decodeModernGeneral はRELD形式のgeneralチャンクをデコードします。
// generalのみレコード単位ではなくフィールド単位のタグを使います。
func decodeModernGeneral(data []byte) (*models.General, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	gen := &models.General{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch block.Tag {
		case "TITL":
			// タイトルはペイロード全体が生の文字列
			gen.Title = string(block.Payload)
		case "VERS":
			p := reld.NewPayloadReader(block.Payload)
			if gen.EngineVersion, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("VERS: %w", err)
			}
		case "STRT":
			p := reld.NewPayloadReader(block.Payload)
			if gen.StartMap, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("STRT: %w", err)
			}
			if gen.StartX, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("STRT: %w", err)
			}
			if gen.StartY, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("STRT: %w", err)
			}
		case "MUSC":
			p := reld.NewPayloadReader(block.Payload)
			if gen.TitleMusic, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("MUSC: %w", err)
			}
			if gen.BattleMusic, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("MUSC: %w", err)
			}
			if gen.VictoryMusic, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("MUSC: %w", err)
			}
		case "MAXC":
			p := reld.NewPayloadReader(block.Payload)
			maxes := []*int32{
				&gen.MaxHeroes, &gen.MaxEnemies, &gen.MaxMaps, &gen.MaxItems,
				&gen.MaxSpells, &gen.MaxScripts, &gen.MaxTextures, &gen.MaxAudio,
			}
			for _, m := range maxes {
				if *m, err = p.Int32(); err != nil {
					return nil, fmt.Errorf("MAXC: %w", err)
				}
			}
		case "GOLD":
			p := reld.NewPayloadReader(block.Payload)
			if gen.StartingGold, err = p.Int32(); err != nil {
				return nil, fmt.Errorf("GOLD: %w", err)
			}
		default:
			// 未知のタグは読み飛ばす
		}
	}

	return gen, nil
}

// decodeLegacyGeneral は旧形式のgeneralチャンクをデコードします。
// 各フィールドは共有オフセット表の絶対位置からシークして読み取ります。
func decodeLegacyGeneral(data []byte) (*models.General, error) {
	if len(data) < genLegacyMinSize {
		return nil, fmt.Errorf("general chunk too small: %d bytes, need %d", len(data), genLegacyMinSize)
	}

	r := bytes.NewReader(data)

	// タイトル (32バイト固定)
	if _, err := r.Seek(genOffTitle, io.SeekStart); err != nil {
		return nil, err
	}
	nameField := make([]byte, 32)
	if _, err := io.ReadFull(r, nameField); err != nil {
		return nil, err
	}
	title, err := fixedName(nameField)
	if err != nil {
		return nil, err
	}

	gen := &models.General{Title: title}
	fields := []struct {
		offset int64
		dst    *int32
	}{
		{genOffVersion, &gen.EngineVersion},
		{genOffStartMap, &gen.StartMap},
		{genOffStartX, &gen.StartX},
		{genOffStartY, &gen.StartY},
		{genOffTitleMusic, &gen.TitleMusic},
		{genOffBattleMusic, &gen.BattleMusic},
		{genOffVictoryMusic, &gen.VictoryMusic},
		{genOffMaxHeroes, &gen.MaxHeroes},
		{genOffMaxEnemies, &gen.MaxEnemies},
		{genOffMaxMaps, &gen.MaxMaps},
		{genOffMaxItems, &gen.MaxItems},
		{genOffMaxSpells, &gen.MaxSpells},
		{genOffMaxScripts, &gen.MaxScripts},
		{genOffMaxTextures, &gen.MaxTextures},
		{genOffMaxAudio, &gen.MaxAudio},
		{genOffStartingGold, &gen.StartingGold},
	}
	for _, f := range fields {
		if _, err := r.Seek(f.offset, io.SeekStart); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, f.dst); err != nil {
			return nil, fmt.Errorf("field at offset %d: %w", f.offset, err)
		}
	}

	return gen, nil
}
