// Package markers turns the platform's embedded page data into typed
// Chapter and Heatmap records. The marker data is a sequence of tagged
// entries; only the chapter and heatmap tags are of interest, everything
// else is ignored. A missing tag is normal (the video simply has no
// chapters or no heatmap) and yields an empty result.
package markers

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
	"github.com/badgerhobbs/heatclip/internal/types"
)

var (
	ErrNoInitialData    = errors.New("no ytInitialData found in page markup")
	ErrMalformedMarker  = errors.New("malformed marker data")
	ErrUnsortedChapters = errors.New("chapters not sorted by start time")
)

const (
	chaptersKey = "DESCRIPTION_CHAPTERS"
	heatmapKey  = "HEATSEEKER"

	markerDataPath = "playerOverlays.playerOverlayRenderer." +
		"decoratedPlayerBarRenderer.decoratedPlayerBarRenderer." +
		"playerBar.multiMarkersPlayerBarRenderer.markersMap"
)

var reInitialData = regexp.MustCompile(`(?s)var ytInitialData = (.*?);<`)

// InitialData extracts the embedded ytInitialData JSON blob from page markup.
func InitialData(html string) (gjson.Result, error) {
	m := reInitialData.FindStringSubmatch(html)
	if m == nil {
		return gjson.Result{}, ErrNoInitialData
	}
	return gjson.Parse(m[1]), nil
}

// MarkerData returns the tagged marker entries under the player overlay.
// A missing path yields a non-existent result, which the parsers below
// treat the same as an empty marker map.
func MarkerData(doc gjson.Result) gjson.Result {
	return doc.Get(markerDataPath)
}

func findMarker(markerData gjson.Result, key string) gjson.Result {
	var value gjson.Result
	markerData.ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("key").String() == key {
			value = entry.Get("value")
			return false
		}
		return true
	})
	return value
}

// Chapters parses the chapter marker entry. Each chapter's end time is the
// next chapter's start offset; the last chapter ends at the full video
// duration, so the result tiles [first start, duration] without gaps.
func Chapters(markerData gjson.Result, duration timecode.Timecode) ([]types.Chapter, error) {
	raw := findMarker(markerData, chaptersKey).Get("chapters")
	if !raw.Exists() {
		return nil, nil
	}

	items := raw.Array()
	chapters := make([]types.Chapter, 0, len(items))
	for i, item := range items {
		r := item.Get("chapterRenderer")

		title := r.Get("title.simpleText")
		if !title.Exists() {
			return nil, fmt.Errorf("%w: %s chapter %d missing title", ErrMalformedMarker, chaptersKey, i)
		}
		start := r.Get("timeRangeStartMillis")
		if !start.Exists() {
			return nil, fmt.Errorf("%w: %s chapter %d (%q) missing start offset", ErrMalformedMarker, chaptersKey, i, title.String())
		}

		end := duration
		if i+1 < len(items) {
			next := items[i+1].Get("chapterRenderer.timeRangeStartMillis")
			if !next.Exists() {
				return nil, fmt.Errorf("%w: %s chapter %d missing start offset", ErrMalformedMarker, chaptersKey, i+1)
			}
			end = timecode.FromMilliseconds(int(next.Int()))
		}

		var thumbs []types.Thumbnail
		for _, th := range r.Get("thumbnail.thumbnails").Array() {
			thumbs = append(thumbs, types.Thumbnail{
				URL:    th.Get("url").String(),
				Width:  int(th.Get("width").Int()),
				Height: int(th.Get("height").Int()),
			})
		}

		chapters = append(chapters, types.Chapter{
			Title:      title.String(),
			StartTime:  timecode.FromMilliseconds(int(start.Int())),
			EndTime:    end,
			Thumbnails: thumbs,
		})
	}
	return chapters, nil
}

// Heatmaps parses the heatmap marker entry and associates each sample with
// the latest chapter whose start does not exceed the sample's start. The
// chapter list must be sorted ascending by start time; with sorted input a
// single reverse scan finds the association.
func Heatmaps(markerData gjson.Result, chapters []types.Chapter) ([]types.Heatmap, error) {
	raw := findMarker(markerData, heatmapKey).Get("heatmap.heatmapRenderer.heatMarkers")
	if !raw.Exists() {
		return nil, nil
	}

	for i := 1; i < len(chapters); i++ {
		if chapters[i].StartTime.Before(chapters[i-1].StartTime) {
			return nil, fmt.Errorf("%w: chapter %d starts at %s, before chapter %d at %s",
				ErrUnsortedChapters, i, chapters[i].StartTime, i-1, chapters[i-1].StartTime)
		}
	}

	items := raw.Array()
	heatmaps := make([]types.Heatmap, 0, len(items))
	for i, item := range items {
		r := item.Get("heatMarkerRenderer")

		start := r.Get("timeRangeStartMillis")
		if !start.Exists() {
			return nil, fmt.Errorf("%w: %s marker %d missing start offset", ErrMalformedMarker, heatmapKey, i)
		}
		durMs := r.Get("markerDurationMillis")
		if !durMs.Exists() {
			return nil, fmt.Errorf("%w: %s marker %d missing duration", ErrMalformedMarker, heatmapKey, i)
		}
		score := r.Get("heatMarkerIntensityScoreNormalized")
		if !score.Exists() {
			return nil, fmt.Errorf("%w: %s marker %d missing intensity score", ErrMalformedMarker, heatmapKey, i)
		}

		startTime := timecode.FromMilliseconds(int(start.Int()))

		idx := -1
		for j := len(chapters) - 1; j >= 0; j-- {
			if !chapters[j].StartTime.After(startTime) {
				idx = j
				break
			}
		}

		heatmaps = append(heatmaps, types.Heatmap{
			ChapterIdx: idx,
			StartTime:  startTime,
			EndTime:    timecode.FromMilliseconds(int(start.Int()) + int(durMs.Int())),
			Intensity:  score.Float(),
		})
	}
	return heatmaps, nil
}
