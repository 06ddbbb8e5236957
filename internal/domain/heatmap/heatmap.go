// Package heatmap ranks a video's attention samples by intensity and
// optionally merges samples sharing a chapter into one widened interval.
package heatmap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/badgerhobbs/heatclip/internal/types"
)

var ErrInvalidCount = errors.New("count must be positive")

// MostIntense returns the count most intense heatmaps, sorted descending by
// intensity with ties keeping their original order. With merge set and at
// least count chapter-bearing samples, samples sharing a chapter are folded
// into the first-admitted entry for that chapter, widening it to the union
// of start/end times; at most count distinct chapters are admitted, in
// intensity-descending order of first occurrence. Merges are keyed by the
// chapter's index, not its title, so identically-titled chapters stay apart.
//
// The returned heatmaps are copies; widening never touches the caller's data.
func MostIntense(v types.VideoHeatmap, merge bool, count int) ([]types.Heatmap, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	sorted := make([]types.Heatmap, len(v.Heatmaps))
	copy(sorted, v.Heatmaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Intensity > sorted[j].Intensity
	})

	chaptered := 0
	for _, h := range sorted {
		if h.ChapterIdx >= 0 {
			chaptered++
		}
	}

	// Merging only pays off when enough chapter-bearing samples exist to
	// make grouping meaningful.
	if !merge || chaptered < count {
		if len(sorted) > count {
			sorted = sorted[:count]
		}
		return sorted, nil
	}

	admitted := make(map[int]int, count) // chapter index -> result position
	var out []types.Heatmap
	for _, h := range sorted {
		if h.ChapterIdx < 0 {
			continue
		}
		pos, ok := admitted[h.ChapterIdx]
		if !ok {
			// Strict bound: exactly count chapters are admitted.
			if len(out) >= count {
				continue
			}
			admitted[h.ChapterIdx] = len(out)
			out = append(out, h)
			continue
		}
		m := &out[pos]
		if h.StartTime.Before(m.StartTime) {
			m.StartTime = h.StartTime
		}
		if h.EndTime.After(m.EndTime) {
			m.EndTime = h.EndTime
		}
	}
	return out, nil
}

// MostIntenseChapters projects MostIntense onto the referenced chapters,
// dropping any entry without one.
func MostIntenseChapters(v types.VideoHeatmap, merge bool, count int) ([]types.Chapter, error) {
	heatmaps, err := MostIntense(v, merge, count)
	if err != nil {
		return nil, err
	}
	var chapters []types.Chapter
	for _, h := range heatmaps {
		if ch, ok := v.ChapterFor(h); ok {
			chapters = append(chapters, ch)
		}
	}
	return chapters, nil
}

// ReferencedChapters is the deduplicated sequence of chapters referenced by
// the video's heatmaps, in heatmap order.
func ReferencedChapters(v types.VideoHeatmap) []types.Chapter {
	seen := make(map[int]bool, len(v.Chapters))
	var chapters []types.Chapter
	for _, h := range v.Heatmaps {
		if h.ChapterIdx < 0 || seen[h.ChapterIdx] {
			continue
		}
		if ch, ok := v.ChapterFor(h); ok {
			seen[h.ChapterIdx] = true
			chapters = append(chapters, ch)
		}
	}
	return chapters
}
