package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/badgerhobbs/heatclip/internal/logging"
	"github.com/badgerhobbs/heatclip/internal/pipeline"
	"github.com/badgerhobbs/heatclip/internal/types"
	"github.com/badgerhobbs/heatclip/internal/usecase"
)

func run(cmd *cobra.Command, videoURL string, mode usecase.Mode) error {
	length, _ := cmd.Flags().GetInt("length")
	alignStr, _ := cmd.Flags().GetString("align")
	count, _ := cmd.Flags().GetInt("count")
	mostIntense, _ := cmd.Flags().GetBool("most-intense")
	merge, _ := cmd.Flags().GetBool("merge")
	outDir, _ := cmd.Flags().GetString("out")
	verbose, _ := cmd.Flags().GetBool("verbose")

	align, err := types.ParseClipAlign(alignStr)
	if err != nil {
		return err
	}

	logging.Init(verbose)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		URL:         videoURL,
		Mode:        mode,
		OutDir:      outDir,
		ClipLength:  length,
		Align:       align,
		ClipCount:   count,
		MostIntense: mostIntense,
		Merge:       merge,
		Logger:      logging.WithComponent("pipeline"),

		CacheDir:   getenvDefault("HEATCLIP_CACHE", ".cache"),
		FFmpegPath: getenvDefault("HEATCLIP_FFMPEG", "ffmpeg"),
		YtDlpPath:  getenvDefault("HEATCLIP_YTDLP", "yt-dlp"),

		FetchTimeout: 30 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
