// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/config"
	"github.com/shiroemons/go-rpgarc/internal/gamedata/fileutil"
	"github.com/shiroemons/go-rpgarc/internal/gamedata/interfaces"
	"github.com/shiroemons/go-rpgarc/internal/gamedata/loader"
	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config *config.Config
	logger *config.DebugLogger
	loader interfaces.GameLoader
	lumps  interfaces.LumpProvider
	fs     interfaces.FileSystem
}

// Options はAppの設定オプション
type Options struct {
	Loader     interfaces.GameLoader
	Lumps      interfaces.LumpProvider
	FileSystem interfaces.FileSystem
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := config.NewDebugLogger(cfg.DebugMode)

	// デフォルトのローダーを設定
	var gameLoader interfaces.GameLoader
	var lumps interfaces.LumpProvider
	if opts.Loader != nil {
		gameLoader = opts.Loader
	} else {
		l := loader.New(logger)
		gameLoader = l
		lumps = l.Archive()
	}
	if opts.Lumps != nil {
		lumps = opts.Lumps
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	return &App{
		config: cfg,
		logger: logger,
		loader: gameLoader,
		lumps:  lumps,
		fs:     fs,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if a.config.ArchivePath == "" {
		return ErrNoArchiveSpecified
	}

	switch {
	case a.config.ListMode:
		return a.runList()
	case a.config.ExtractMode:
		return a.runExtract()
	default:
		return a.runSummary()
	}
}

// runList はランプ名とサイズの一覧を表示します
func (a *App) runList() error {
	if err := a.openArchive(); err != nil {
		return err
	}

	names := a.lumps.ListLumpNames()
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%8d  %s\n", a.lumps.GetLumpSize(name), name)
	}
	fmt.Printf("%d 個のランプ\n", len(names))
	return nil
}

// runExtract は全ランプを出力ディレクトリに書き出します
func (a *App) runExtract() error {
	if err := a.openArchive(); err != nil {
		return err
	}

	names := a.lumps.ListLumpNames()
	sort.Strings(names)

	count := 0
	for _, name := range names {
		data, ok := a.lumps.GetLump(name)
		if !ok {
			continue
		}
		outputPath := filepath.Join(a.config.OutputDir, filepath.FromSlash(name))
		if a.config.DryRun {
			a.logger.Printf("[dry-run] %s (%d バイト)\n", outputPath, len(data))
			count++
			continue
		}
		if err := a.fs.SaveLumpFile(outputPath, data); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrExtractFailed, name, err)
		}
		a.logger.Printf("%s を書き出しました（%d バイト）\n", outputPath, len(data))
		count++
	}
	fmt.Printf("%d 個のランプを書き出しました\n", count)
	return nil
}

// runSummary はゲームデータを読み込み、概要を表示します
func (a *App) runSummary() error {
	snapshot, err := a.loader.LoadGameData(a.config.ArchivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	fmt.Print(a.formatSummary(snapshot))
	return nil
}

// openArchive はランプアクセス用にアーカイブを開きます
func (a *App) openArchive() error {
	ok, err := a.lumps.LoadArchive(a.config.ArchivePath)
	if !ok {
		return fmt.Errorf("%w: %s: %w", ErrLoadFailed, a.config.ArchivePath, err)
	}
	return nil
}

// formatSummary はスナップショットの概要テキストを生成します
func (a *App) formatSummary(snapshot *models.Snapshot) string {
	title := "(無題)"
	if snapshot.General != nil && snapshot.General.Title != "" {
		title = snapshot.General.Title
	}

	out := fmt.Sprintf("タイトル: %s\n", title)
	out += fmt.Sprintf("ヒーロー: %d\n", len(snapshot.Heroes))
	out += fmt.Sprintf("エネミー: %d\n", len(snapshot.Enemies))
	out += fmt.Sprintf("マップ: %d\n", len(snapshot.Maps))
	out += fmt.Sprintf("アイテム: %d\n", len(snapshot.Items))
	out += fmt.Sprintf("魔法: %d\n", len(snapshot.Spells))
	out += fmt.Sprintf("スクリプト: %d\n", len(snapshot.Scripts))
	out += fmt.Sprintf("テクスチャ: %d\n", len(snapshot.Textures))
	out += fmt.Sprintf("オーディオ: %d\n", len(snapshot.Audio))
	out += fmt.Sprintf("セーブ: %d\n", len(snapshot.Saves))
	return out
}
