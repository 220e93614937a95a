package decoder

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

func putFloat32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

func TestDecodeEnemies_Modern(t *testing.T) {
	b := reld.NewBlockBuilder().
		String("Slime").
		Int32(3).Int32(0). // picture, palette
		Int32(30).Int32(0).Int32(8).Int32(5).Int32(4).Int32(0).Int32(2).Int32(5).
		Int32(12).Int32(7). // gold, experience
		Int32(-1).Int32(0). // stealItem, stealChance
		Float32Array([]float32{1, 1, 1, 1, 2, 1, 1, 0.5}).
		Int32Array([]int32{1, 2}).
		Int32(9) // deathSound

	w := reld.NewWriter(2)
	if err := w.AddBlock("ENEM", b.Bytes()); err != nil {
		t.Fatal(err)
	}

	enemies, err := DecodeEnemies(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeEnemies failed: %v", err)
	}
	if len(enemies) != 1 {
		t.Fatalf("len = %d, want 1", len(enemies))
	}
	e := enemies[0]
	if e.Name != "Slime" || e.Stats.HP != 30 || e.Gold != 12 {
		t.Errorf("Name = %q, HP = %d, Gold = %d", e.Name, e.Stats.HP, e.Gold)
	}
	if e.ElementResists[7] != 0.5 {
		t.Errorf("ElementResists[7] = %v", e.ElementResists[7])
	}
	if len(e.Attacks) != 2 || e.Attacks[1] != 2 {
		t.Errorf("Attacks = %v", e.Attacks)
	}
	if e.DeathSound != 9 {
		t.Errorf("DeathSound = %d", e.DeathSound)
	}
}

func TestDecodeEnemies_Legacy(t *testing.T) {
	rec := legacyNamed(EnemyStride, "Goblin")
	putInt32(rec, 32, 5)      // picture
	putInt32(rec, 40, 45)     // HP
	putInt32(rec, 72, 20)     // gold
	putInt32(rec, 76, 11)     // experience
	putFloat32(rec, 88, 1.5)  // resist[0]
	putInt32(rec, 120, 3)     // attacks[0]
	putInt32(rec, 152, 4)     // deathSound

	enemies, err := DecodeEnemies(rec)
	if err != nil {
		t.Fatalf("DecodeEnemies failed: %v", err)
	}
	if len(enemies) != 1 {
		t.Fatalf("len = %d, want 1", len(enemies))
	}
	e := enemies[0]
	if e.Name != "Goblin" || e.Stats.HP != 45 || e.Gold != 20 || e.Experience != 11 {
		t.Errorf("record = %+v", e)
	}
	if e.ElementResists[0] != 1.5 || e.Attacks[0] != 3 || e.DeathSound != 4 {
		t.Errorf("resist = %v, attacks = %v, deathSound = %d",
			e.ElementResists[0], e.Attacks, e.DeathSound)
	}
}

func TestDecodeSpells_Modern(t *testing.T) {
	b := reld.NewBlockBuilder().
		String("Fire").
		Int32(1).Int32(0). // picture, palette
		Int32(4).          // mpCost
		Int32(1).          // target
		Int32(25).         // power
		Int32(2).          // element
		Int32(95).         // accuracy
		Int32(6).          // castSound
		Int32(3).          // learnLevel
		Int32(0)           // flags

	w := reld.NewWriter(2)
	if err := w.AddBlock("SPEL", b.Bytes()); err != nil {
		t.Fatal(err)
	}

	spells, err := DecodeSpells(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeSpells failed: %v", err)
	}
	if len(spells) != 1 {
		t.Fatalf("len = %d, want 1", len(spells))
	}
	s := spells[0]
	if s.Name != "Fire" || s.MPCost != 4 || s.Power != 25 || s.Element != 2 {
		t.Errorf("record = %+v", s)
	}
}

func TestDecodeSpells_Legacy(t *testing.T) {
	rec := legacyNamed(SpellStride, "Heal")
	putInt32(rec, 40, 3)  // mpCost
	putInt32(rec, 48, 30) // power
	putInt32(rec, 64, 2)  // learnLevel

	spells, err := DecodeSpells(rec)
	if err != nil {
		t.Fatalf("DecodeSpells failed: %v", err)
	}
	if len(spells) != 1 {
		t.Fatalf("len = %d, want 1", len(spells))
	}
	s := spells[0]
	if s.Name != "Heal" || s.MPCost != 3 || s.Power != 30 || s.LearnLevel != 2 {
		t.Errorf("record = %+v", s)
	}
}

func TestDecodeScripts_Modern(t *testing.T) {
	code := []byte{0x01, 0x02, 0x7f, 0x00}
	b := reld.NewBlockBuilder().
		String("on_start").
		Int32(10). // id
		Int32(2).  // format
		Int32(0).  // argCount
		ByteArray(code)

	w := reld.NewWriter(2)
	if err := w.AddBlock("SCRP", b.Bytes()); err != nil {
		t.Fatal(err)
	}

	scripts, err := DecodeScripts(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeScripts failed: %v", err)
	}
	if len(scripts) != 1 {
		t.Fatalf("len = %d, want 1", len(scripts))
	}
	s := scripts[0]
	if s.Name != "on_start" || s.ID != 10 {
		t.Errorf("Name = %q, ID = %d", s.Name, s.ID)
	}
	// 新形式ではコード長はバイト列から導出します。
	if s.Length != int32(len(code)) {
		t.Errorf("Length = %d, want %d", s.Length, len(code))
	}
	if string(s.Code) != string(code) {
		t.Errorf("Code = %v", s.Code)
	}
}

func TestDecodeScripts_LegacyHeaderOnly(t *testing.T) {
	rec := legacyNamed(ScriptStride, "boot")
	putInt32(rec, 32, 1)   // id
	putInt32(rec, 40, 480) // length

	scripts, err := DecodeScripts(rec)
	if err != nil {
		t.Fatalf("DecodeScripts failed: %v", err)
	}
	if len(scripts) != 1 {
		t.Fatalf("len = %d, want 1", len(scripts))
	}
	s := scripts[0]
	// 旧形式はヘッダのみで、本体は空のまま長さを保持します。
	if s.Length != 480 || len(s.Code) != 0 || s.Code == nil {
		t.Errorf("Length = %d, Code = %v", s.Length, s.Code)
	}
}

func TestDecodeTextures_Modern(t *testing.T) {
	pixels := []byte{0xff, 0x00, 0xff, 0x00}
	b := reld.NewBlockBuilder().
		String("tileset").
		Int16(16).Int16(16). // width, height
		Int16(8).            // bitsPerPixel
		Int16(0).            // paletteID
		ByteArray(pixels)

	w := reld.NewWriter(2)
	if err := w.AddBlock("TEXT", b.Bytes()); err != nil {
		t.Fatal(err)
	}

	textures, err := DecodeTextures(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeTextures failed: %v", err)
	}
	if len(textures) != 1 {
		t.Fatalf("len = %d, want 1", len(textures))
	}
	tex := textures[0]
	if tex.Name != "tileset" || tex.Width != 16 || tex.Height != 16 || tex.BitsPerPixel != 8 {
		t.Errorf("record = %+v", tex)
	}
	if len(tex.Pixels) != len(pixels) {
		t.Errorf("Pixels = %v", tex.Pixels)
	}
}

func TestDecodeTextures_Legacy(t *testing.T) {
	rec := legacyNamed(TextureStride, "font")
	putInt16(rec, 32, 128) // width
	putInt16(rec, 34, 64)  // height
	putInt16(rec, 36, 4)   // bitsPerPixel
	putInt16(rec, 38, 2)   // paletteID

	textures, err := DecodeTextures(rec)
	if err != nil {
		t.Fatalf("DecodeTextures failed: %v", err)
	}
	if len(textures) != 1 {
		t.Fatalf("len = %d, want 1", len(textures))
	}
	tex := textures[0]
	if tex.Width != 128 || tex.Height != 64 || tex.BitsPerPixel != 4 || tex.PaletteID != 2 {
		t.Errorf("record = %+v", tex)
	}
	if tex.Pixels == nil || len(tex.Pixels) != 0 {
		t.Errorf("Pixels = %v, want empty slice", tex.Pixels)
	}
}

func TestDecodeAudio_Modern(t *testing.T) {
	samples := []byte{0x00, 0x80, 0x00, 0x80}
	b := reld.NewBlockBuilder().
		String("battle_theme").
		Int32(1).     // format
		Int32(44100). // sampleRate
		Int16(2).     // channels
		Int16(16).    // bitsPerSample
		Int32(0).     // loopStart
		Int32(2).     // loopEnd
		ByteArray(samples)

	w := reld.NewWriter(2)
	if err := w.AddBlock("AUDI", b.Bytes()); err != nil {
		t.Fatal(err)
	}

	audio, err := DecodeAudio(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeAudio failed: %v", err)
	}
	if len(audio) != 1 {
		t.Fatalf("len = %d, want 1", len(audio))
	}
	a := audio[0]
	if a.Name != "battle_theme" || a.SampleRate != 44100 || a.Channels != 2 {
		t.Errorf("record = %+v", a)
	}
	if len(a.Samples) != len(samples) {
		t.Errorf("Samples = %v", a.Samples)
	}
}

func TestDecodeAudio_Legacy(t *testing.T) {
	rec := legacyNamed(AudioStride, "cursor_se")
	putInt32(rec, 32, 2)     // format
	putInt32(rec, 36, 22050) // sampleRate
	putInt16(rec, 40, 1)     // channels
	putInt16(rec, 42, 8)     // bitsPerSample
	putInt32(rec, 44, 100)   // loopStart
	putInt32(rec, 48, 2000)  // loopEnd

	audio, err := DecodeAudio(rec)
	if err != nil {
		t.Fatalf("DecodeAudio failed: %v", err)
	}
	if len(audio) != 1 {
		t.Fatalf("len = %d, want 1", len(audio))
	}
	a := audio[0]
	if a.SampleRate != 22050 || a.Channels != 1 || a.BitsPerSample != 8 {
		t.Errorf("record = %+v", a)
	}
	if a.LoopStart != 100 || a.LoopEnd != 2000 {
		t.Errorf("loop = %d..%d", a.LoopStart, a.LoopEnd)
	}
}

func TestDecodeRecords_BlankNameDropped(t *testing.T) {
	// 空の名前を持つレコードは全カテゴリで読み飛ばします。
	tests := []struct {
		name   string
		stride int
		decode func([]byte) (int, error)
	}{
		{"enemies", EnemyStride, func(b []byte) (int, error) {
			v, err := DecodeEnemies(b)
			return len(v), err
		}},
		{"spells", SpellStride, func(b []byte) (int, error) {
			v, err := DecodeSpells(b)
			return len(v), err
		}},
		{"scripts", ScriptStride, func(b []byte) (int, error) {
			v, err := DecodeScripts(b)
			return len(v), err
		}},
		{"textures", TextureStride, func(b []byte) (int, error) {
			v, err := DecodeTextures(b)
			return len(v), err
		}},
		{"audio", AudioStride, func(b []byte) (int, error) {
			v, err := DecodeAudio(b)
			return len(v), err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append(legacyNamed(tt.stride, ""), legacyNamed(tt.stride, "kept")...)
			n, err := tt.decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if n != 1 {
				t.Errorf("len = %d, want 1", n)
			}
		})
	}
}
