package types

import "testing"

func TestParseClipAlign(t *testing.T) {
	for _, s := range []string{"left", "center", "right"} {
		got, err := ParseClipAlign(s)
		if err != nil {
			t.Fatalf("ParseClipAlign(%q): %v", s, err)
		}
		if string(got) != s {
			t.Fatalf("ParseClipAlign(%q) = %q", s, got)
		}
	}
	for _, s := range []string{"", "Left", "middle", "centre"} {
		if _, err := ParseClipAlign(s); err == nil {
			t.Fatalf("ParseClipAlign(%q): expected error", s)
		}
	}
}

func TestChapterFor(t *testing.T) {
	v := VideoHeatmap{
		Chapters: []Chapter{{Title: "Intro"}, {Title: "Middle"}},
	}
	if _, ok := v.ChapterFor(Heatmap{ChapterIdx: -1}); ok {
		t.Fatal("expected no chapter for idx -1")
	}
	if _, ok := v.ChapterFor(Heatmap{ChapterIdx: 2}); ok {
		t.Fatal("expected no chapter for out-of-range idx")
	}
	ch, ok := v.ChapterFor(Heatmap{ChapterIdx: 1})
	if !ok || ch.Title != "Middle" {
		t.Fatalf("ChapterFor(1) = %v, %v", ch, ok)
	}
}
