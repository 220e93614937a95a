package decoder

import (
	"testing"

	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// buildHeroBlock はHEROブロックのペイロードを組み立てます
func buildHeroBlock(name string) []byte {
	b := reld.NewBlockBuilder().String(name)
	// walkSprite..experience の8フィールド
	for i := 0; i < 8; i++ {
		b.Int32(0)
	}
	// ステータス8フィールド
	for i := 0; i < 8; i++ {
		b.Int32(0)
	}
	b.Int32(0)                 // defaultWeapon
	b.Float32Array(nil)        // 属性耐性
	b.Int16Array(nil)          // 手元座標
	b.Int32Array(nil)          // 魔法リスト
	return b.Bytes()
}

func TestDecodeHeroes_Modern(t *testing.T) {
	w := reld.NewWriter(1)
	if err := w.AddBlock("HERO", buildHeroBlock("Aria")); err != nil {
		t.Fatal(err)
	}

	heroes, err := DecodeHeroes(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeHeroes failed: %v", err)
	}
	if len(heroes) != 1 {
		t.Fatalf("len = %d, want 1", len(heroes))
	}
	if heroes[0].Name != "Aria" {
		t.Errorf("Name = %q, want Aria", heroes[0].Name)
	}
	if heroes[0].Stats.HP != 0 {
		t.Errorf("Stats.HP = %d, want 0", heroes[0].Stats.HP)
	}
}

func TestDecodeHeroes_ModernFullRecord(t *testing.T) {
	b := reld.NewBlockBuilder().String("Rook")
	for _, v := range []int32{1, 2, 3, 4, 5, 6, 10, 1500} { // walkSprite..experience
		b.Int32(v)
	}
	for _, v := range []int32{100, 20, 15, 12, 14, 8, 9, 11} { // stats
		b.Int32(v)
	}
	b.Int32(3)                                   // defaultWeapon
	b.Float32Array([]float32{1, 0.5, 2, 0, 0, 0, 0, 1.5}) // 属性耐性
	b.Int16Array([]int16{4, -2, 6, 8})           // 手元座標2対
	b.Int32Array([]int32{1, 2, 7})               // 魔法リスト

	w := reld.NewWriter(1)
	if err := w.AddBlock("HERO", b.Bytes()); err != nil {
		t.Fatal(err)
	}

	heroes, err := DecodeHeroes(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeHeroes failed: %v", err)
	}
	if len(heroes) != 1 {
		t.Fatalf("len = %d, want 1", len(heroes))
	}
	hero := heroes[0]
	if hero.WalkSprite != 1 || hero.Experience != 1500 {
		t.Errorf("WalkSprite = %d, Experience = %d", hero.WalkSprite, hero.Experience)
	}
	if hero.Stats.HP != 100 || hero.Stats.Speed != 11 {
		t.Errorf("Stats = %+v", hero.Stats)
	}
	if hero.DefaultWeapon != 3 {
		t.Errorf("DefaultWeapon = %d, want 3", hero.DefaultWeapon)
	}
	if hero.ElementResists[7] != 1.5 {
		t.Errorf("ElementResists[7] = %f, want 1.5", hero.ElementResists[7])
	}
	if hero.HandPositions[0].Y != -2 || hero.HandPositions[1].X != 6 {
		t.Errorf("HandPositions = %+v", hero.HandPositions)
	}
	if len(hero.Spells) != 3 || hero.Spells[2] != 7 {
		t.Errorf("Spells = %v, want [1 2 7]", hero.Spells)
	}
}

func TestDecodeHeroes_ModernUnknownTag(t *testing.T) {
	w := reld.NewWriter(1)
	// 認識できないタグ1つと認識できるブロック1つ
	if err := w.AddBlock("FUTR", []byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	if err := w.AddBlock("HERO", buildHeroBlock("Aria")); err != nil {
		t.Fatal(err)
	}

	heroes, err := DecodeHeroes(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeHeroes failed on unknown tag: %v", err)
	}
	if len(heroes) != 1 || heroes[0].Name != "Aria" {
		t.Errorf("heroes = %+v, want single Aria", heroes)
	}
}

func TestDecodeHeroes_LegacyStrideBoundary(t *testing.T) {
	t.Run("ちょうどの倍数", func(t *testing.T) {
		var data []byte
		data = append(data, legacyNamed(HeroStride, "Aria")...)
		data = append(data, legacyNamed(HeroStride, "Rook")...)

		heroes, err := DecodeHeroes(data)
		if err != nil {
			t.Fatalf("DecodeHeroes failed: %v", err)
		}
		if len(heroes) != 2 {
			t.Fatalf("len = %d, want 2", len(heroes))
		}
		if heroes[0].Name != "Aria" || heroes[1].Name != "Rook" {
			t.Errorf("names = %q, %q", heroes[0].Name, heroes[1].Name)
		}
	})

	t.Run("端数は読み捨て", func(t *testing.T) {
		var data []byte
		data = append(data, legacyNamed(HeroStride, "Aria")...)
		data = append(data, make([]byte, 77)...) // 不完全なレコード

		heroes, err := DecodeHeroes(data)
		if err != nil {
			t.Fatalf("DecodeHeroes failed: %v", err)
		}
		if len(heroes) != 1 {
			t.Errorf("len = %d, want 1 (partial record ignored)", len(heroes))
		}
	})
}

func TestDecodeHeroes_LegacyFields(t *testing.T) {
	rec := legacyNamed(HeroStride, "Aria")
	putInt32(rec, 32, 5)   // walkSprite
	putInt32(rec, 56, 12)  // level
	putInt32(rec, 64, 80)  // stats.HP
	putInt32(rec, 96, 2)   // defaultWeapon
	putInt16(rec, 132, 3)  // handPositions[0].X
	putInt16(rec, 134, -1) // handPositions[0].Y
	putInt32(rec, 140, 9)  // spells[0]

	heroes, err := DecodeHeroes(rec)
	if err != nil {
		t.Fatalf("DecodeHeroes failed: %v", err)
	}
	if len(heroes) != 1 {
		t.Fatalf("len = %d, want 1", len(heroes))
	}
	hero := heroes[0]
	if hero.WalkSprite != 5 || hero.Level != 12 {
		t.Errorf("WalkSprite = %d, Level = %d", hero.WalkSprite, hero.Level)
	}
	if hero.Stats.HP != 80 {
		t.Errorf("Stats.HP = %d, want 80", hero.Stats.HP)
	}
	if hero.DefaultWeapon != 2 {
		t.Errorf("DefaultWeapon = %d, want 2", hero.DefaultWeapon)
	}
	if hero.HandPositions[0].X != 3 || hero.HandPositions[0].Y != -1 {
		t.Errorf("HandPositions[0] = %+v", hero.HandPositions[0])
	}
	if len(hero.Spells) != 24 || hero.Spells[0] != 9 {
		t.Errorf("Spells[0] = %d (len %d), want 9 (len 24)", hero.Spells[0], len(hero.Spells))
	}
}

func TestDecodeHeroes_LegacyBlankNameDropped(t *testing.T) {
	var data []byte
	data = append(data, legacyNamed(HeroStride, "Aria")...)
	data = append(data, legacyNamed(HeroStride, "")...) // 未使用スロット
	data = append(data, legacyNamed(HeroStride, "Rook")...)

	heroes, err := DecodeHeroes(data)
	if err != nil {
		t.Fatalf("DecodeHeroes failed: %v", err)
	}
	if len(heroes) != 2 {
		t.Fatalf("len = %d, want 2 (blank slot dropped)", len(heroes))
	}
	if heroes[0].Name != "Aria" || heroes[1].Name != "Rook" {
		t.Errorf("names = %q, %q (order must be preserved)", heroes[0].Name, heroes[1].Name)
	}
}
