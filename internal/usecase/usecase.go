package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/badgerhobbs/heatclip/internal/domain/clips"
	"github.com/badgerhobbs/heatclip/internal/domain/heatmap"
	"github.com/badgerhobbs/heatclip/internal/domain/markers"
	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
	"github.com/badgerhobbs/heatclip/internal/ports"
	"github.com/badgerhobbs/heatclip/internal/types"
)

type Mode string

const (
	ModeHeatmaps Mode = "heatmaps"
	ModeChapters Mode = "chapters"
)

type Deps struct {
	Fetcher    ports.PageFetcher
	Downloader ports.VideoDownloader
	Renderer   ports.ClipRenderer
	Log        zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	URL         string
	Mode        Mode
	Align       types.ClipAlign
	Length      int
	Count       int
	MostIntense bool
	Merge       bool
	CacheDir    string
	ClipsDir    string
}

type Result struct {
	Manifest types.Manifest
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	dl, err := u.d.Downloader.Download(ctx, in.URL, in.CacheDir)
	if err != nil {
		return Result{}, err
	}
	u.d.Log.Info().Str("id", dl.ID).Str("duration", dl.Duration.String()).Msg("video downloaded")

	html, err := u.d.Fetcher.FetchPage(ctx, in.URL)
	if err != nil {
		return Result{}, err
	}

	doc, err := markers.InitialData(html)
	if err != nil {
		return Result{}, err
	}
	md := markers.MarkerData(doc)

	chapters, err := markers.Chapters(md, dl.Duration)
	if err != nil {
		return Result{}, err
	}
	heatmaps, err := markers.Heatmaps(md, chapters)
	if err != nil {
		return Result{}, err
	}
	v := types.VideoHeatmap{URL: in.URL, Chapters: chapters, Heatmaps: heatmaps}
	u.d.Log.Info().Int("chapters", len(chapters)).Int("heatmaps", len(heatmaps)).Msg("marker data parsed")

	planned, skipped, err := u.plan(v, in, dl.Duration)
	if err != nil {
		return Result{}, err
	}
	for _, s := range skipped {
		u.d.Log.Warn().Str("label", s.Label).Err(s.Err).Msg("skipping clip")
	}

	manifest := types.Manifest{URL: in.URL, VideoID: dl.ID}
	for _, c := range planned {
		outPath := filepath.Join(in.ClipsDir, c.Label+".mp4")
		if err := u.d.Renderer.RenderClip(ctx, dl.Path, c.Interval, outPath); err != nil {
			return Result{}, fmt.Errorf("render clip %s: %w", c.Label, err)
		}
		mc := types.ManifestClip{
			Label:    c.Label,
			StartSec: c.Interval.Start.TotalSeconds(),
			OpenEnd:  c.Interval.OpenEnd,
			File:     filepath.ToSlash(filepath.Join("clips", c.Label+".mp4")),
		}
		if !c.Interval.OpenEnd {
			mc.EndSec = c.Interval.End.TotalSeconds()
		}
		manifest.Clips = append(manifest.Clips, mc)
		u.d.Log.Info().Str("label", c.Label).Str("start", c.Interval.Start.String()).Msg("clip rendered")
	}

	return Result{Manifest: manifest}, nil
}

// plan selects base intervals and computes the clip list. Selection follows
// the count/most-intense truth table: both set ranks by intensity, count
// alone takes the first count in sequence order, neither takes everything.
func (u Usecase) plan(v types.VideoHeatmap, in Input, duration timecode.Timecode) ([]types.Clip, []clips.Skipped, error) {
	switch in.Mode {
	case ModeChapters:
		var selected []types.Chapter
		switch {
		case in.Count > 0 && in.MostIntense:
			var err error
			selected, err = heatmap.MostIntenseChapters(v, in.Merge, in.Count)
			if err != nil {
				return nil, nil, err
			}
		case in.Count > 0:
			selected = heatmap.ReferencedChapters(v)
			if len(selected) > in.Count {
				selected = selected[:in.Count]
			}
		default:
			selected = heatmap.ReferencedChapters(v)
		}
		planned, skipped := clips.FromChapters(selected, in.Align, in.Length, duration)
		return planned, skipped, nil

	case ModeHeatmaps:
		var selected []types.Heatmap
		switch {
		case in.Count > 0 && in.MostIntense:
			var err error
			selected, err = heatmap.MostIntense(v, in.Merge, in.Count)
			if err != nil {
				return nil, nil, err
			}
		case in.Count > 0:
			selected = v.Heatmaps
			if len(selected) > in.Count {
				selected = selected[:in.Count]
			}
		default:
			selected = v.Heatmaps
		}
		planned, skipped := clips.FromHeatmaps(v, selected, in.Align, in.Length, duration)
		return planned, skipped, nil
	}
	return nil, nil, fmt.Errorf("unknown mode %q", in.Mode)
}
