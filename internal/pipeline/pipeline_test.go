package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/badgerhobbs/heatclip/internal/types"
	"github.com/badgerhobbs/heatclip/internal/usecase"
)

func validConfig() Config {
	return Config{
		URL:   "https://example.test/watch?v=abc",
		Mode:  usecase.ModeHeatmaps,
		Align: types.AlignLeft,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty url", func(c *Config) { c.URL = "" }, "url is empty"},
		{"bad mode", func(c *Config) { c.Mode = "bogus" }, "mode must be"},
		{"negative length", func(c *Config) { c.ClipLength = -1 }, "clip length"},
		{"negative count", func(c *Config) { c.ClipCount = -1 }, "clip count"},
		{"most-intense without count", func(c *Config) { c.MostIntense = true }, "requires a clip count"},
		{"bad align", func(c *Config) { c.Align = "middle" }, "invalid align"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuildRunOutDir(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 30, 45, 1234, time.UTC)
	got := buildRunOutDir("out", "https://example.test/watch?v=My_Video", now)
	base := filepath.Base(got)
	if filepath.Dir(got) != "out" {
		t.Fatalf("unexpected parent dir: %s", got)
	}
	if !strings.HasPrefix(base, "example-test-watch-v-my-video-20260820-103045Z-") {
		t.Fatalf("unexpected run dir format: %s", base)
	}
	if len(base) != len("example-test-watch-v-my-video-20260820-103045Z-")+6 {
		t.Fatalf("unexpected run dir suffix length: %s", base)
	}
}

func TestNormalizePathSegment(t *testing.T) {
	tests := map[string]string{
		"example.test/watch?v=abc": "example-test-watch-v-abc",
		"___":                      "",
		"abc123":                   "abc123",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := normalizePathSegment(in); got != want {
				t.Fatalf("normalizePathSegment(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
