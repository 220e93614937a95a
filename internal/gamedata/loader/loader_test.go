package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/config"
	"github.com/shiroemons/go-rpgarc/pkg/lump"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

func newTestLoader() *Loader {
	return New(config.NewDebugLogger(false))
}

// generalChunk はTITLブロックのみを持つ最小のgeneralチャンクを作ります
func generalChunk(t *testing.T, title string) []byte {
	t.Helper()
	w := reld.NewWriter(2)
	if err := w.AddBlock("TITL", []byte(title)); err != nil {
		t.Fatal(err)
	}
	return w.Bytes()
}

// heroChunk は1人のヒーローを持つheroesチャンクを作ります
func heroChunk(t *testing.T, name string) []byte {
	t.Helper()
	b := reld.NewBlockBuilder().
		String(name).
		Int32(0).Int32(0).Int32(0).Int32(0).Int32(0).Int32(0). // 画像まわり
		Int32(1).Int32(0). // level, experience
		Int32(20).Int32(5).Int32(6).Int32(4).Int32(3).Int32(2).Int32(2).Int32(3).
		Int32(-1). // defaultWeapon
		Float32Array([]float32{1, 1, 1, 1, 1, 1, 1, 1}).
		Int16Array([]int16{0, 0, 0, 0, 0, 0, 0, 0}).
		Int32Array([]int32{})
	w := reld.NewWriter(2)
	if err := w.AddBlock("HERO", b.Bytes()); err != nil {
		t.Fatal(err)
	}
	return w.Bytes()
}

// writeModernArchive は指定ランプ入りの新形式コンテナファイルを作ります
func writeModernArchive(t *testing.T, lumps map[string][]byte) string {
	t.Helper()
	store := lump.NewStore()
	for name, data := range lumps {
		store.Put(name, data)
	}
	path := filepath.Join(t.TempDir(), "game.dat")
	if err := lump.WriteModernFile(store, path); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}
	return path
}

func TestLoadGameData_ModernContainer(t *testing.T) {
	path := writeModernArchive(t, map[string][]byte{
		"general.reld": generalChunk(t, "Test Game"),
	})

	l := newTestLoader()
	snapshot, err := l.LoadGameData(path)
	if err != nil {
		t.Fatalf("LoadGameData failed: %v", err)
	}
	if snapshot.General == nil {
		t.Fatal("General = nil")
	}
	if snapshot.General.Title != "Test Game" {
		t.Errorf("Title = %q, want %q", snapshot.General.Title, "Test Game")
	}
	// 欠けているカテゴリも空スライスとして返ります
	if snapshot.Heroes == nil || snapshot.Items == nil || snapshot.Saves == nil {
		t.Error("snapshot slices must be non-nil")
	}
	if len(snapshot.Heroes) != 0 {
		t.Errorf("len(Heroes) = %d, want 0", len(snapshot.Heroes))
	}
}

func TestLoadGameData_DirectoryTree(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "heroes.reld"), heroChunk(t, "Aria"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := newTestLoader()
	snapshot, err := l.LoadGameData(dir)
	if err != nil {
		t.Fatalf("LoadGameData failed: %v", err)
	}
	if len(snapshot.Heroes) != 1 {
		t.Fatalf("len(Heroes) = %d, want 1", len(snapshot.Heroes))
	}
	if snapshot.Heroes[0].Name != "Aria" {
		t.Errorf("Name = %q, want %q", snapshot.Heroes[0].Name, "Aria")
	}
}

func TestLoadHeroData_LegacyNameFallback(t *testing.T) {
	// 新形式名が無い場合は旧形式のチャンク名にフォールバックします
	path := writeModernArchive(t, map[string][]byte{
		"HRO": heroChunk(t, "Aria"),
	})

	l := newTestLoader()
	if ok, err := l.LoadArchive(path); !ok {
		t.Fatalf("LoadArchive failed: %v", err)
	}
	heroes, err := l.LoadHeroData()
	if err != nil {
		t.Fatalf("LoadHeroData failed: %v", err)
	}
	if len(heroes) != 1 || heroes[0].Name != "Aria" {
		t.Errorf("heroes = %+v", heroes)
	}
}

func TestLoadHeroData_ModernNameWins(t *testing.T) {
	path := writeModernArchive(t, map[string][]byte{
		"heroes.reld": heroChunk(t, "Aria"),
		"HRO":         heroChunk(t, "Old"),
	})

	l := newTestLoader()
	if ok, err := l.LoadArchive(path); !ok {
		t.Fatalf("LoadArchive failed: %v", err)
	}
	heroes, err := l.LoadHeroData()
	if err != nil {
		t.Fatalf("LoadHeroData failed: %v", err)
	}
	if len(heroes) != 1 || heroes[0].Name != "Aria" {
		t.Errorf("heroes = %+v (modern name must take precedence)", heroes)
	}
}

func TestLoadItemData_AbsentIsNotError(t *testing.T) {
	path := writeModernArchive(t, map[string][]byte{})

	l := newTestLoader()
	if ok, err := l.LoadArchive(path); !ok {
		t.Fatalf("LoadArchive failed: %v", err)
	}
	items, err := l.LoadItemData()
	if err != nil {
		t.Fatalf("LoadItemData failed: %v", err)
	}
	if items != nil {
		t.Errorf("items = %v, want nil for absent chunk", items)
	}
}

func TestLoadGameData_CategoryFailureIsIsolated(t *testing.T) {
	// heroesチャンクが壊れていてもitemsの読み込みは続行されます
	itemBlock := reld.NewBlockBuilder().
		String("Potion").String("Restores HP").
		Int32(0).Int32(0).Int32(20).Int32(1).Int32(-1).Int32(0).
		Int32Array(make([]int32, 8)).
		Int32(0)
	iw := reld.NewWriter(2)
	if err := iw.AddBlock("ITEM", itemBlock.Bytes()); err != nil {
		t.Fatal(err)
	}

	corrupt := append([]byte("RELD"), 0x02, 0x00, 0x00, 0x00)
	corrupt = append(corrupt, []byte("HERO")...)
	corrupt = append(corrupt, 0xff, 0xff, 0xff, 0x7f) // 実データより遥かに大きいサイズ

	path := writeModernArchive(t, map[string][]byte{
		"heroes.reld": corrupt,
		"items.reld":  iw.Bytes(),
	})

	l := newTestLoader()
	snapshot, err := l.LoadGameData(path)
	if err != nil {
		t.Fatalf("LoadGameData failed: %v", err)
	}
	if len(snapshot.Heroes) != 0 {
		t.Errorf("len(Heroes) = %d, want 0 for corrupt chunk", len(snapshot.Heroes))
	}
	if len(snapshot.Items) != 1 || snapshot.Items[0].Name != "Potion" {
		t.Errorf("Items = %+v", snapshot.Items)
	}
}

func TestLoadGameData_MissingArchive(t *testing.T) {
	l := newTestLoader()
	snapshot, err := l.LoadGameData(filepath.Join(t.TempDir(), "nope.dat"))
	if err == nil {
		t.Fatal("expected error for missing archive")
	}
	if snapshot != nil {
		t.Errorf("snapshot = %+v, want nil (no partial snapshot)", snapshot)
	}
}

func TestLoadGameData_LegacyContainer(t *testing.T) {
	// 旧形式コンテナ（名前\0 + サイズ + データの繰り返し）に
	// 旧チャンク名でgeneralを格納したケース。
	gen := generalChunk(t, "Legacy Quest")
	var raw []byte
	raw = append(raw, []byte("GEN")...)
	raw = append(raw, 0)
	raw = append(raw,
		byte(len(gen)), byte(len(gen)>>8), byte(len(gen)>>16), byte(len(gen)>>24))
	raw = append(raw, gen...)

	path := filepath.Join(t.TempDir(), "legacy.dat")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	l := newTestLoader()
	snapshot, err := l.LoadGameData(path)
	if err != nil {
		t.Fatalf("LoadGameData failed: %v", err)
	}
	if snapshot.General == nil || snapshot.General.Title != "Legacy Quest" {
		t.Errorf("General = %+v", snapshot.General)
	}
	if l.Archive().Kind() != lump.KindLegacy {
		t.Errorf("Kind = %v, want KindLegacy", l.Archive().Kind())
	}
}
