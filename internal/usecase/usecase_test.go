package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
	"github.com/badgerhobbs/heatclip/internal/ports"
	"github.com/badgerhobbs/heatclip/internal/types"
)

type fakeFetcher struct {
	html string
	err  error
}

func (f fakeFetcher) FetchPage(_ context.Context, _ string) (string, error) {
	return f.html, f.err
}

type fakeDownloader struct {
	info ports.DownloadInfo
}

func (f fakeDownloader) Download(_ context.Context, _, destDir string) (ports.DownloadInfo, error) {
	info := f.info
	info.Path = filepath.Join(destDir, info.ID+".webm")
	return info, nil
}

type fakeRenderer struct {
	inPaths   []string
	intervals []types.ClipInterval
	outPaths  []string
	err       error
}

func (f *fakeRenderer) RenderClip(_ context.Context, inPath string, iv types.ClipInterval, outPath string) error {
	if f.err != nil {
		return f.err
	}
	f.inPaths = append(f.inPaths, inPath)
	f.intervals = append(f.intervals, iv)
	f.outPaths = append(f.outPaths, outPath)
	return nil
}

// testPage embeds marker data for a 300s video with three chapters and
// three heat markers, one per chapter, most intense last.
func testPage() string {
	markersMap := `[
		{"key": "DESCRIPTION_CHAPTERS", "value": {"chapters": [
			{"chapterRenderer": {"title": {"simpleText": "Intro"}, "timeRangeStartMillis": 0, "thumbnail": {"thumbnails": []}}},
			{"chapterRenderer": {"title": {"simpleText": "Main Part"}, "timeRangeStartMillis": 60000, "thumbnail": {"thumbnails": []}}},
			{"chapterRenderer": {"title": {"simpleText": "Outro"}, "timeRangeStartMillis": 240000, "thumbnail": {"thumbnails": []}}}
		]}},
		{"key": "HEATSEEKER", "value": {"heatmap": {"heatmapRenderer": {"heatMarkers": [
			{"heatMarkerRenderer": {"timeRangeStartMillis": 10000, "markerDurationMillis": 5000, "heatMarkerIntensityScoreNormalized": 0.3}},
			{"heatMarkerRenderer": {"timeRangeStartMillis": 90000, "markerDurationMillis": 5000, "heatMarkerIntensityScoreNormalized": 0.6}},
			{"heatMarkerRenderer": {"timeRangeStartMillis": 250000, "markerDurationMillis": 5000, "heatMarkerIntensityScoreNormalized": 0.9}}
		]}}}}
	]`
	doc := fmt.Sprintf(`{"playerOverlays": {"playerOverlayRenderer": {"decoratedPlayerBarRenderer": {"decoratedPlayerBarRenderer": {"playerBar": {"multiMarkersPlayerBarRenderer": {"markersMap": %s}}}}}}}`, markersMap)
	return fmt.Sprintf("<html><script>var ytInitialData = %s;</script></html>", doc)
}

func newTestUsecase(renderer *fakeRenderer) Usecase {
	return New(Deps{
		Fetcher: fakeFetcher{html: testPage()},
		Downloader: fakeDownloader{info: ports.DownloadInfo{
			ID:       "vid123",
			Duration: timecode.FromSeconds(300),
		}},
		Renderer: renderer,
		Log:      zerolog.Nop(),
	})
}

func TestRun_ChaptersMode(t *testing.T) {
	t.Parallel()

	renderer := &fakeRenderer{}
	uc := newTestUsecase(renderer)

	res, err := uc.Run(context.Background(), Input{
		URL:      "https://example.test/watch?v=vid123",
		Mode:     ModeChapters,
		Align:    types.AlignLeft,
		CacheDir: t.TempDir(),
		ClipsDir: "clips",
	})
	require.NoError(t, err)

	require.Len(t, res.Manifest.Clips, 3)
	assert.Equal(t, "Intro", res.Manifest.Clips[0].Label)
	assert.Equal(t, "Main_Part", res.Manifest.Clips[1].Label)
	assert.Equal(t, "Outro", res.Manifest.Clips[2].Label)

	// Chapter partition: 0-60, 60-240, 240-end (open because the last
	// chapter's end equals the video duration).
	assert.Equal(t, 0, res.Manifest.Clips[0].StartSec)
	assert.Equal(t, 60, res.Manifest.Clips[0].EndSec)
	assert.Equal(t, 60, res.Manifest.Clips[1].StartSec)
	assert.Equal(t, 240, res.Manifest.Clips[1].EndSec)
	assert.Equal(t, 240, res.Manifest.Clips[2].StartSec)
	assert.True(t, res.Manifest.Clips[2].OpenEnd)

	require.Len(t, renderer.intervals, 3)
	assert.Contains(t, renderer.inPaths[0], "vid123.webm")
	assert.Equal(t, filepath.Join("clips", "Intro.mp4"), renderer.outPaths[0])
	assert.Equal(t, "vid123", res.Manifest.VideoID)
}

func TestRun_HeatmapsMostIntense(t *testing.T) {
	t.Parallel()

	renderer := &fakeRenderer{}
	uc := newTestUsecase(renderer)

	res, err := uc.Run(context.Background(), Input{
		URL:         "https://example.test/watch?v=vid123",
		Mode:        ModeHeatmaps,
		Align:       types.AlignLeft,
		Count:       2,
		MostIntense: true,
		CacheDir:    t.TempDir(),
		ClipsDir:    "clips",
	})
	require.NoError(t, err)

	// Intensities 0.9 (Outro) and 0.6 (Main Part), in that order.
	require.Len(t, res.Manifest.Clips, 2)
	assert.Equal(t, "Outro", res.Manifest.Clips[0].Label)
	assert.Equal(t, 250, res.Manifest.Clips[0].StartSec)
	assert.Equal(t, "Main_Part", res.Manifest.Clips[1].Label)
	assert.Equal(t, 90, res.Manifest.Clips[1].StartSec)
}

func TestRun_HeatmapsCountOnlyKeepsSequenceOrder(t *testing.T) {
	t.Parallel()

	renderer := &fakeRenderer{}
	uc := newTestUsecase(renderer)

	res, err := uc.Run(context.Background(), Input{
		URL:      "https://example.test/watch?v=vid123",
		Mode:     ModeHeatmaps,
		Align:    types.AlignLeft,
		Count:    2,
		CacheDir: t.TempDir(),
		ClipsDir: "clips",
	})
	require.NoError(t, err)

	require.Len(t, res.Manifest.Clips, 2)
	assert.Equal(t, 10, res.Manifest.Clips[0].StartSec)
	assert.Equal(t, 90, res.Manifest.Clips[1].StartSec)
}

func TestRun_AlignmentAndLength(t *testing.T) {
	t.Parallel()

	renderer := &fakeRenderer{}
	uc := newTestUsecase(renderer)

	res, err := uc.Run(context.Background(), Input{
		URL:      "https://example.test/watch?v=vid123",
		Mode:     ModeChapters,
		Align:    types.AlignCenter,
		Length:   10,
		CacheDir: t.TempDir(),
		ClipsDir: "clips",
	})
	require.NoError(t, err)

	// Intro spans 0-60: center-aligned 10s clip is 25-35.
	require.NotEmpty(t, res.Manifest.Clips)
	assert.Equal(t, 25, res.Manifest.Clips[0].StartSec)
	assert.Equal(t, 35, res.Manifest.Clips[0].EndSec)
}

func TestRun_NoMarkerDataYieldsNoClips(t *testing.T) {
	t.Parallel()

	renderer := &fakeRenderer{}
	uc := New(Deps{
		Fetcher: fakeFetcher{html: `<html><script>var ytInitialData = {"contents": {}};</script></html>`},
		Downloader: fakeDownloader{info: ports.DownloadInfo{
			ID:       "vid123",
			Duration: timecode.FromSeconds(300),
		}},
		Renderer: renderer,
		Log:      zerolog.Nop(),
	})

	res, err := uc.Run(context.Background(), Input{
		URL:      "https://example.test/watch?v=vid123",
		Mode:     ModeHeatmaps,
		Align:    types.AlignLeft,
		CacheDir: t.TempDir(),
		ClipsDir: "clips",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Manifest.Clips)
	assert.Empty(t, renderer.intervals)
}

func TestRun_UnknownMode(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&fakeRenderer{})
	_, err := uc.Run(context.Background(), Input{
		URL:      "https://example.test/watch?v=vid123",
		Mode:     Mode("bogus"),
		Align:    types.AlignLeft,
		CacheDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
