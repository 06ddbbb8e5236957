// Package clips computes final clip intervals from chapter or heatmap base
// intervals under an alignment policy, clamping against the video duration.
package clips

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
	"github.com/badgerhobbs/heatclip/internal/types"
)

var ErrInvalidInterval = errors.New("invalid clip interval")

// Interval computes the clamped clip interval for a base [start, end] range.
// A zero length means "use the base interval as-is"; otherwise the result is
// a window of exactly length seconds anchored at the base's start (left),
// end (right), or midpoint (center). A computed start below zero clamps to
// zero; a computed end at or beyond the video duration becomes open-ended
// rather than clamping to a numeric value. An interval whose start is not
// strictly before its effective end is an error.
func Interval(start, end timecode.Timecode, align types.ClipAlign, length int, duration timecode.Timecode) (types.ClipInterval, error) {
	startSec := start.TotalSeconds()
	endSec := end.TotalSeconds()

	if length > 0 {
		switch align {
		case types.AlignRight:
			startSec = endSec - length
		case types.AlignCenter:
			mid := (startSec + endSec) / 2
			startSec = mid - length/2
			endSec = startSec + length
		default: // left
			endSec = startSec + length
		}
	}

	if startSec < 0 {
		startSec = 0
	}

	durSec := duration.TotalSeconds()
	iv := types.ClipInterval{Start: timecode.FromSeconds(startSec)}
	if endSec >= durSec {
		iv.OpenEnd = true
		endSec = durSec
	} else {
		iv.End = timecode.FromSeconds(endSec)
	}

	if startSec >= endSec {
		return types.ClipInterval{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, timecode.FromSeconds(startSec), timecode.FromSeconds(endSec))
	}
	return iv, nil
}

// Skipped records a base interval that produced an invalid clip.
type Skipped struct {
	Label string
	Err   error
}

// FromChapters maps chapters to labeled clips. Invalid intervals are
// reported as skipped rather than failing the whole batch.
func FromChapters(chapters []types.Chapter, align types.ClipAlign, length int, duration timecode.Timecode) ([]types.Clip, []Skipped) {
	var out []types.Clip
	var skipped []Skipped
	for _, ch := range chapters {
		label := ValidFilename(ch.Title)
		iv, err := Interval(ch.StartTime, ch.EndTime, align, length, duration)
		if err != nil {
			skipped = append(skipped, Skipped{Label: label, Err: err})
			continue
		}
		out = append(out, types.Clip{Label: label, Interval: iv})
	}
	return out, skipped
}

// FromHeatmaps maps heatmaps to labeled clips. Chaptered heatmaps are
// labeled by their chapter title; unchaptered ones get a unique token.
func FromHeatmaps(v types.VideoHeatmap, heatmaps []types.Heatmap, align types.ClipAlign, length int, duration timecode.Timecode) ([]types.Clip, []Skipped) {
	var out []types.Clip
	var skipped []Skipped
	for _, h := range heatmaps {
		label := uuid.NewString()
		if ch, ok := v.ChapterFor(h); ok {
			label = ValidFilename(ch.Title)
		}
		iv, err := Interval(h.StartTime, h.EndTime, align, length, duration)
		if err != nil {
			skipped = append(skipped, Skipped{Label: label, Err: err})
			continue
		}
		out = append(out, types.Clip{Label: label, Interval: iv})
	}
	return out, skipped
}

var reInvalidFilenameRune = regexp.MustCompile(`[^-\w.]`)

// ValidFilename derives a safe file name from a title: trims, replaces
// spaces with underscores, then strips everything that is not a word
// character, hyphen, or period.
func ValidFilename(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	return reInvalidFilenameRune.ReplaceAllString(s, "")
}
