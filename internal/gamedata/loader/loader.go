// Package loader はアーカイブから全ゲームデータのスナップショットを組み立てる
// アグリゲータを実装します
package loader

import (
	"fmt"
	"os"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/config"
	"github.com/shiroemons/go-rpgarc/internal/gamedata/decoder"
	gderrors "github.com/shiroemons/go-rpgarc/internal/gamedata/errors"
	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/lump"
)

// chunkName はカテゴリごとの新形式/旧形式のチャンク名です。
// 新形式名を先に試し、見つからなければ旧形式名にフォールバックします。
type chunkName struct {
	modern string
	legacy string
}

var (
	chunkGeneral  = chunkName{"general.reld", "GEN"}
	chunkHeroes   = chunkName{"heroes.reld", "HRO"}
	chunkEnemies  = chunkName{"enemies.reld", "ENM"}
	chunkMaps     = chunkName{"maps.reld", "MAP"}
	chunkItems    = chunkName{"items.reld", "ITM"}
	chunkSpells   = chunkName{"spells.reld", "SPL"}
	chunkScripts  = chunkName{"scripts.reld", "SCR"}
	chunkTextures = chunkName{"textures.reld", "TEX"}
	chunkAudio    = chunkName{"audio.reld", "AUD"}
	chunkSaves    = chunkName{"saves.reld", "SAV"}
)

// Loader はLump Storeと各カテゴリのデコーダを束ねるアグリゲータです。
// 内部ロックは持たないため、複数ゴルーチンからの利用は呼び出し側で
// 直列化してください。
type Loader struct {
	archive *lump.Archive
	logger  *config.DebugLogger
}

// New は新しいLoaderを作成します
func New(logger *config.DebugLogger) *Loader {
	return &Loader{
		archive: lump.NewArchive(),
		logger:  logger,
	}
}

// Archive は所有するアーカイブハンドルを返します
func (l *Loader) Archive() *lump.Archive {
	return l.archive
}

// LoadArchive はアーカイブを読み込みます（既存の状態はクリアされます）
func (l *Loader) LoadArchive(path string) (bool, error) {
	return l.archive.LoadArchive(path)
}

// LoadGameData はアーカイブを読み込み、全カテゴリのスナップショットを返します。
// アーカイブ自体の読み込み失敗はエラーになります（部分スナップショットは
// 返しません）。カテゴリ単位のデコード失敗は警告ログを残して当該カテゴリを
// 「データなし」とし、他のカテゴリの読み込みを続行します。
// スナップショットの各スライスは常に非nilです。
func (l *Loader) LoadGameData(path string) (*models.Snapshot, error) {
	ok, err := l.archive.LoadArchive(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", gderrors.ErrInvalidArchive, path, err)
	}
	l.logger.Printf("アーカイブ %s を読み込みました（%s形式、%d ランプ）\n",
		path, l.archive.Kind(), l.archive.Store().Len())

	snapshot := &models.Snapshot{
		Heroes:   []models.Hero{},
		Enemies:  []models.Enemy{},
		Maps:     []models.Map{},
		Items:    []models.Item{},
		Spells:   []models.Spell{},
		Scripts:  []models.Script{},
		Textures: []models.Texture{},
		Audio:    []models.Audio{},
		Saves:    []models.Save{},
	}

	if gen, err := l.LoadGeneralData(); err != nil {
		l.warn(err)
	} else {
		snapshot.General = gen
	}
	if heroes, err := l.LoadHeroData(); err != nil {
		l.warn(err)
	} else if heroes != nil {
		snapshot.Heroes = heroes
	}
	if enemies, err := l.LoadEnemyData(); err != nil {
		l.warn(err)
	} else if enemies != nil {
		snapshot.Enemies = enemies
	}
	if maps, err := l.LoadMapData(); err != nil {
		l.warn(err)
	} else if maps != nil {
		snapshot.Maps = maps
	}
	if items, err := l.LoadItemData(); err != nil {
		l.warn(err)
	} else if items != nil {
		snapshot.Items = items
	}
	if spells, err := l.LoadSpellData(); err != nil {
		l.warn(err)
	} else if spells != nil {
		snapshot.Spells = spells
	}
	if scripts, err := l.LoadScriptData(); err != nil {
		l.warn(err)
	} else if scripts != nil {
		snapshot.Scripts = scripts
	}
	if textures, err := l.LoadTextureData(); err != nil {
		l.warn(err)
	} else if textures != nil {
		snapshot.Textures = textures
	}
	if audio, err := l.LoadAudioData(); err != nil {
		l.warn(err)
	} else if audio != nil {
		snapshot.Audio = audio
	}
	if saves, err := l.LoadSaveData(); err != nil {
		l.warn(err)
	} else if saves != nil {
		snapshot.Saves = saves
	}

	return snapshot, nil
}

// warn はカテゴリ単位の失敗を警告として記録します
func (l *Loader) warn(err error) {
	fmt.Fprintf(os.Stderr, "警告: %v\n", err)
}

// chunk はフォールバック名を順に試してチャンクを取得します。
// どちらの名前でも見つからない場合は (nil, "", false) を返します。
// これはエラーではなく「データなし」の通常の結果です。
func (l *Loader) chunk(name chunkName) ([]byte, string, bool) {
	if data, ok := l.archive.GetLump(name.modern); ok {
		return data, name.modern, true
	}
	if data, ok := l.archive.GetLump(name.legacy); ok {
		return data, name.legacy, true
	}
	return nil, "", false
}

// LoadGeneralData はgeneralカテゴリを単独でデコードします
func (l *Loader) LoadGeneralData() (*models.General, error) {
	data, chunk, ok := l.chunk(chunkGeneral)
	if !ok {
		return nil, nil
	}
	gen, err := decoder.DecodeGeneral(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("general", chunk, err)
	}
	return gen, nil
}

// LoadHeroData はheroesカテゴリを単独でデコードします
func (l *Loader) LoadHeroData() ([]models.Hero, error) {
	data, chunk, ok := l.chunk(chunkHeroes)
	if !ok {
		return nil, nil
	}
	heroes, err := decoder.DecodeHeroes(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("heroes", chunk, err)
	}
	return heroes, nil
}

// LoadEnemyData はenemiesカテゴリを単独でデコードします
func (l *Loader) LoadEnemyData() ([]models.Enemy, error) {
	data, chunk, ok := l.chunk(chunkEnemies)
	if !ok {
		return nil, nil
	}
	enemies, err := decoder.DecodeEnemies(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("enemies", chunk, err)
	}
	return enemies, nil
}

// LoadMapData はmapsカテゴリを単独でデコードします
func (l *Loader) LoadMapData() ([]models.Map, error) {
	data, chunk, ok := l.chunk(chunkMaps)
	if !ok {
		return nil, nil
	}
	maps, err := decoder.DecodeMaps(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("maps", chunk, err)
	}
	return maps, nil
}

// LoadItemData はitemsカテゴリを単独でデコードします
func (l *Loader) LoadItemData() ([]models.Item, error) {
	data, chunk, ok := l.chunk(chunkItems)
	if !ok {
		return nil, nil
	}
	items, err := decoder.DecodeItems(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("items", chunk, err)
	}
	return items, nil
}

// LoadSpellData はspellsカテゴリを単独でデコードします
func (l *Loader) LoadSpellData() ([]models.Spell, error) {
	data, chunk, ok := l.chunk(chunkSpells)
	if !ok {
		return nil, nil
	}
	spells, err := decoder.DecodeSpells(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("spells", chunk, err)
	}
	return spells, nil
}

// LoadScriptData はscriptsカテゴリを単独でデコードします
func (l *Loader) LoadScriptData() ([]models.Script, error) {
	data, chunk, ok := l.chunk(chunkScripts)
	if !ok {
		return nil, nil
	}
	scripts, err := decoder.DecodeScripts(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("scripts", chunk, err)
	}
	return scripts, nil
}

// LoadTextureData はtexturesカテゴリを単独でデコードします
func (l *Loader) LoadTextureData() ([]models.Texture, error) {
	data, chunk, ok := l.chunk(chunkTextures)
	if !ok {
		return nil, nil
	}
	textures, err := decoder.DecodeTextures(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("textures", chunk, err)
	}
	return textures, nil
}

// LoadAudioData はaudioカテゴリを単独でデコードします
func (l *Loader) LoadAudioData() ([]models.Audio, error) {
	data, chunk, ok := l.chunk(chunkAudio)
	if !ok {
		return nil, nil
	}
	audio, err := decoder.DecodeAudio(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("audio", chunk, err)
	}
	return audio, nil
}

// LoadSaveData はsavesカテゴリを単独でデコードします
func (l *Loader) LoadSaveData() ([]models.Save, error) {
	data, chunk, ok := l.chunk(chunkSaves)
	if !ok {
		return nil, nil
	}
	saves, err := decoder.DecodeSaves(data)
	if err != nil {
		return nil, gderrors.NewDecodeError("saves", chunk, err)
	}
	return saves, nil
}
