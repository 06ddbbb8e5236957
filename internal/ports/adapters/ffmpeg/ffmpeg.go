package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/badgerhobbs/heatclip/internal/types"
)

// portraitFilter reframes the source into a 9:16 portrait clip: a blurred,
// cropped copy fills the background while the original is scaled and
// centered on top.
const portraitFilter = "split [original][copy]; " +
	"[copy] crop=ih*9/16:ih:iw/2-ow/2:0, scale=1080:1920, gblur=sigma=50[blurred]; " +
	"[original] scale=-1:1080, crop=1080:1080:iw/2-ow/2:ih/2-oh/2 [scaled]; " +
	"[blurred][scaled] overlay=(main_w-overlay_w)/2:(main_h-overlay_h)/2"

type Adapter struct {
	ffmpeg string
	log    zerolog.Logger
}

func New(ffmpegPath string, log zerolog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{
		ffmpeg: ffmpegPath,
		log:    log.With().Str("component", "ffmpeg").Logger(),
	}
}

// RenderClip cuts [iv.Start, iv.End] out of inPath into a portrait clip.
// An open-ended interval omits -to entirely so the clip runs to the end of
// the source instead of being trimmed to a rounded duration.
func (a *Adapter) RenderClip(ctx context.Context, inPath string, iv types.ClipInterval, outPath string) error {
	args := []string{
		"-y",
		"-ss", strconv.Itoa(iv.Start.TotalSeconds()),
	}
	if !iv.OpenEnd {
		args = append(args, "-to", strconv.Itoa(iv.End.TotalSeconds()))
	}
	args = append(args,
		"-i", inPath,
		"-vf", portraitFilter,
		"-auto-alt-ref", "0",
		"-c:a", "copy",
		"-c:v", "h264",
		"-preset", "ultrafast",
		outPath,
	)

	a.log.Debug().
		Str("input", inPath).
		Str("output", outPath).
		Str("start", iv.Start.String()).
		Bool("open_end", iv.OpenEnd).
		Msg("rendering clip")

	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, string(b))
	}
	return nil
}
