package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/badgerhobbs/heatclip/internal/usecase"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "heatclip",
		Short:        "Cut clips from a video's attention heatmap and chapters",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	heatmaps := &cobra.Command{
		Use:   "heatmaps <url>",
		Short: "Clip the video's attention heatmap intervals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], usecase.ModeHeatmaps)
		},
	}
	chapters := &cobra.Command{
		Use:   "chapters <url>",
		Short: "Clip the video's chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], usecase.ModeChapters)
		},
	}
	addClipFlags(heatmaps)
	addClipFlags(chapters)
	root.AddCommand(heatmaps, chapters)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addClipFlags(cmd *cobra.Command) {
	cmd.Flags().Int("length", 0, "Fixed clip length in seconds (0 uses the full interval)")
	cmd.Flags().String("align", "left", "Clip alignment within an interval: left, center or right")
	cmd.Flags().Int("count", 0, "Maximum number of clips to make")
	cmd.Flags().Bool("most-intense", false, "Select clips in order of heatmap intensity")
	cmd.Flags().Bool("merge", false, "Merge intense heatmaps sharing a chapter into one clip")
	cmd.Flags().String("out", "out", "Output directory")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}
