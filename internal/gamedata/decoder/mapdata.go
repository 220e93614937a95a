package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// 旧形式マップの既定値。旧形式はヘッダしか永続化しておらず、
// レイヤー/通行可否/NPCは安全な既定値で合成します（意図的な
// 非可逆サポートであり、実タイルデータのデコードは行いません）。
const (
	legacyMapWidth      = 50
	legacyMapHeight     = 50
	legacyMapLayerCount = 3
)

// legacyMap は旧形式のマップヘッダ（64バイト固定）です
type legacyMap struct {
	Name     [32]byte
	Tileset  int32
	Music    int32
	Reserved [24]byte
}

// DecodeMaps はmapsチャンクをMapレコードの配列にデコードします
func DecodeMaps(data []byte) ([]models.Map, error) {
	if reld.IsRELD(data) {
		return decodeModernMaps(data)
	}
	return decodeLegacyMaps(data)
}

func decodeModernMaps(data []byte) ([]models.Map, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	maps := []models.Map{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "MAP " {
			continue
		}
		m, err := decodeMapBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", len(maps), err)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

func decodeMapBlock(payload []byte) (models.Map, error) {
	p := reld.NewPayloadReader(payload)
	var m models.Map
	var err error

	if m.Name, err = p.String(); err != nil {
		return m, err
	}
	ints := []*int32{&m.Tileset, &m.Music, &m.Width, &m.Height}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return m, err
		}
	}

	layerCount, err := p.Int32()
	if err != nil {
		return m, err
	}
	if layerCount < 0 {
		return m, fmt.Errorf("negative layer count %d", layerCount)
	}
	m.Layers = make([]models.MapLayer, 0, layerCount)
	for i := int32(0); i < layerCount; i++ {
		tiles, err := p.Int16Array()
		if err != nil {
			return m, fmt.Errorf("layer %d: %w", i, err)
		}
		m.Layers = append(m.Layers, models.MapLayer{Tiles: tiles})
	}

	// 通行可否は1セル1バイト
	passBytes, err := p.ByteArray()
	if err != nil {
		return m, err
	}
	m.Passable = make([]bool, len(passBytes))
	for i, b := range passBytes {
		m.Passable[i] = b != 0
	}

	npcCount, err := p.Int32()
	if err != nil {
		return m, err
	}
	if npcCount < 0 {
		return m, fmt.Errorf("negative NPC count %d", npcCount)
	}
	m.NPCs = make([]models.MapNPC, 0, npcCount)
	for i := int32(0); i < npcCount; i++ {
		var npc models.MapNPC
		shorts := []*int16{&npc.X, &npc.Y, &npc.Picture, &npc.Palette, &npc.MoveType, &npc.MoveSpeed}
		for _, dst := range shorts {
			if *dst, err = p.Int16(); err != nil {
				return m, fmt.Errorf("npc %d: %w", i, err)
			}
		}
		if npc.ScriptID, err = p.Int32(); err != nil {
			return m, fmt.Errorf("npc %d: %w", i, err)
		}
		m.NPCs = append(m.NPCs, npc)
	}

	eventCount, err := p.Int32()
	if err != nil {
		return m, err
	}
	if eventCount < 0 {
		return m, fmt.Errorf("negative event count %d", eventCount)
	}
	m.Events = make([]models.MapEvent, 0, eventCount)
	for i := int32(0); i < eventCount; i++ {
		var ev models.MapEvent
		shorts := []*int16{&ev.X, &ev.Y, &ev.Trigger}
		for _, dst := range shorts {
			if *dst, err = p.Int16(); err != nil {
				return m, fmt.Errorf("event %d: %w", i, err)
			}
		}
		if ev.ScriptID, err = p.Int32(); err != nil {
			return m, fmt.Errorf("event %d: %w", i, err)
		}
		m.Events = append(m.Events, ev)
	}

	return m, nil
}

func decodeLegacyMaps(data []byte) ([]models.Map, error) {
	maps := []models.Map{}
	for i, raw := range legacyRecords(data, MapStride) {
		var rec legacyMap
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("map record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("map record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		maps = append(maps, synthesizeLegacyMap(name, rec.Tileset, rec.Music))
	}
	return maps, nil
}

// synthesizeLegacyMap はヘッダしか持たない旧形式マップに既定の
// グリッドを合成します: 50×50、3レイヤー、全タイル0、全セル通行可。
func synthesizeLegacyMap(name string, tileset, music int32) models.Map {
	cells := legacyMapWidth * legacyMapHeight
	layers := make([]models.MapLayer, legacyMapLayerCount)
	for i := range layers {
		layers[i] = models.MapLayer{Tiles: make([]int16, cells)}
	}
	passable := make([]bool, cells)
	for i := range passable {
		passable[i] = true
	}
	return models.Map{
		Name:     name,
		Tileset:  tileset,
		Music:    music,
		Width:    legacyMapWidth,
		Height:   legacyMapHeight,
		Layers:   layers,
		Passable: passable,
		NPCs:     []models.MapNPC{},
		Events:   []models.MapEvent{},
	}
}
