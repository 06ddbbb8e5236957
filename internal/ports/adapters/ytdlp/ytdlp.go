// Package ytdlp downloads source videos by shelling out to yt-dlp.
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/badgerhobbs/heatclip/internal/domain/timecode"
	"github.com/badgerhobbs/heatclip/internal/ports"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

// Download fetches the video into destDir as <id>.<ext> and reports the
// video id and duration from yt-dlp's JSON output.
func (a *Adapter) Download(ctx context.Context, url, destDir string) (ports.DownloadInfo, error) {
	outTmpl := filepath.Join(destDir, "%(id)s.%(ext)s")
	cmd := exec.CommandContext(ctx, a.bin,
		"--print-json",
		"--no-progress",
		"-o", outTmpl,
		url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return ports.DownloadInfo{}, fmt.Errorf("yt-dlp download: %w\n%s", err, stderr.String())
	}

	info := gjson.ParseBytes(out)
	id := info.Get("id").String()
	ext := info.Get("ext").String()
	dur := info.Get("duration")
	if id == "" || ext == "" || !dur.Exists() {
		return ports.DownloadInfo{}, fmt.Errorf("yt-dlp output missing id, ext or duration for %s", url)
	}

	return ports.DownloadInfo{
		ID:       id,
		Path:     filepath.Join(destDir, id+"."+ext),
		Duration: timecode.FromFloatSeconds(dur.Float()),
	}, nil
}
