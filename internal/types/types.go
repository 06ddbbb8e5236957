package types

import (
	"fmt"

	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
)

type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// Chapter is one entry of a video's chapter partition. StartTime <= EndTime,
// and consecutive chapters tile [first start, video duration] without gaps.
type Chapter struct {
	Title      string
	StartTime  timecode.Timecode
	EndTime    timecode.Timecode
	Thumbnails []Thumbnail
}

// Heatmap is a single attention sample. ChapterIdx indexes into the owning
// VideoHeatmap's chapter list; -1 means the sample falls before the first
// chapter or the video has none. The index is an association, not ownership.
type Heatmap struct {
	ChapterIdx int
	StartTime  timecode.Timecode
	EndTime    timecode.Timecode
	Intensity  float64
}

// VideoHeatmap owns all chapter and heatmap data for one video.
type VideoHeatmap struct {
	URL      string
	Chapters []Chapter
	Heatmaps []Heatmap
}

// ChapterFor resolves a heatmap's chapter association.
func (v VideoHeatmap) ChapterFor(h Heatmap) (Chapter, bool) {
	if h.ChapterIdx < 0 || h.ChapterIdx >= len(v.Chapters) {
		return Chapter{}, false
	}
	return v.Chapters[h.ChapterIdx], true
}

type ClipAlign string

const (
	AlignLeft   ClipAlign = "left"
	AlignCenter ClipAlign = "center"
	AlignRight  ClipAlign = "right"
)

func ParseClipAlign(s string) (ClipAlign, error) {
	switch ClipAlign(s) {
	case AlignLeft, AlignCenter, AlignRight:
		return ClipAlign(s), nil
	}
	return "", fmt.Errorf("invalid align %q: must be left, center or right", s)
}

// ClipInterval is a computed clip time range. OpenEnd means the clip runs to
// the end of the source, whatever that turns out to be; End is meaningless
// when it is set. The renderer must not substitute a numeric duration for an
// open end, so the final frame is never rounded short.
type ClipInterval struct {
	Start   timecode.Timecode
	End     timecode.Timecode
	OpenEnd bool
}

type Clip struct {
	Label    string
	Interval ClipInterval
}

type Manifest struct {
	URL     string         `json:"url"`
	VideoID string         `json:"video_id"`
	Clips   []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	Label    string `json:"label"`
	StartSec int    `json:"start_sec"`
	EndSec   int    `json:"end_sec,omitempty"`
	OpenEnd  bool   `json:"open_end,omitempty"`
	File     string `json:"file"`
}
