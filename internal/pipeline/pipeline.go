package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/badgerhobbs/heatclip/internal/ports"
	"github.com/badgerhobbs/heatclip/internal/ports/adapters/ffmpeg"
	"github.com/badgerhobbs/heatclip/internal/ports/adapters/pagefetch"
	"github.com/badgerhobbs/heatclip/internal/ports/adapters/ytdlp"
	"github.com/badgerhobbs/heatclip/internal/types"
	"github.com/badgerhobbs/heatclip/internal/usecase"
)

type Config struct {
	URL         string
	Mode        usecase.Mode
	OutDir      string
	ClipLength  int
	Align       types.ClipAlign
	ClipCount   int
	MostIntense bool
	Merge       bool
	Logger      zerolog.Logger

	// CacheDir is the base directory for downloaded videos.
	// If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath string
	YtDlpPath  string

	FetchTimeout time.Duration
}

func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("video url is empty")
	}
	switch c.Mode {
	case usecase.ModeHeatmaps, usecase.ModeChapters:
	default:
		return fmt.Errorf("mode must be %q or %q", usecase.ModeHeatmaps, usecase.ModeChapters)
	}
	if c.ClipLength < 0 {
		return fmt.Errorf("clip length must be >= 0")
	}
	if c.ClipCount < 0 {
		return fmt.Errorf("clip count must be >= 0")
	}
	if c.MostIntense && c.ClipCount == 0 {
		return fmt.Errorf("most-intense requires a clip count")
	}
	if _, err := types.ParseClipAlign(string(c.Align)); err != nil {
		return err
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	log := cfg.Logger

	// adapters
	fetcher := pagefetch.New(cfg.FetchTimeout)
	downloader := ytdlp.New(cfg.YtDlpPath)
	renderer := ffmpeg.New(cfg.FFmpegPath, log)

	uc := usecase.New(usecase.Deps{
		Fetcher:    fetcher,
		Downloader: downloader,
		Renderer:   renderer,
		Log:        log,
	})

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "videos")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	log.Debug().Str("cache", cacheDir).Msg("workspace prepared")

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.URL, time.Now().UTC())
	clipsDir := filepath.Join(runOutDir, "clips")
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return err
	}
	log.Info().Str("dir", runOutDir).Msg("output run dir")

	res, err := uc.Run(ctx, usecase.Input{
		URL:         cfg.URL,
		Mode:        cfg.Mode,
		Align:       cfg.Align,
		Length:      cfg.ClipLength,
		Count:       cfg.ClipCount,
		MostIntense: cfg.MostIntense,
		Merge:       cfg.Merge,
		CacheDir:    cacheDir,
		ClipsDir:    clipsDir,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}
	log.Info().Int("clips", len(res.Manifest.Clips)).Str("manifest", manifestPath).Msg("manifest written")
	return nil
}

// ensure adapters implement ports
var _ ports.PageFetcher = (*pagefetch.Adapter)(nil)
var _ ports.VideoDownloader = (*ytdlp.Adapter)(nil)
var _ ports.ClipRenderer = (*ffmpeg.Adapter)(nil)

func buildRunOutDir(outRoot, videoURL string, now time.Time) string {
	name := normalizePathSegment(stripScheme(videoURL))
	if name == "" {
		name = "video"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", videoURL, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func stripScheme(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[i+3:]
	}
	return u
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
