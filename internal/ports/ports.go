package ports

import (
	"context"

	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
	"github.com/badgerhobbs/heatclip/internal/types"
)

// DownloadInfo describes a downloaded source video. Duration is owned by the
// download collaborator and feeds chapter-end inference and interval clamping.
type DownloadInfo struct {
	ID       string
	Path     string
	Duration timecode.Timecode
}

type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

type VideoDownloader interface {
	Download(ctx context.Context, url, destDir string) (DownloadInfo, error)
}

type ClipRenderer interface {
	RenderClip(ctx context.Context, inPath string, iv types.ClipInterval, outPath string) error
}
