package ui

import (
	"strings"
	"testing"

	"github.com/fbritoferreira/m3u8-parser/internal/parser"
)

func testPlaylist(t *testing.T) *parser.Playlist {
	t.Helper()
	input := strings.Join([]string{
		"#EXTM3U",
		`#EXTINF:-1 tvg-id="news.example" group-title="News",World News`,
		"http://example.com/news.m3u8",
		`#EXTINF:-1 tvg-id="sports.example" group-title="Sports",Big Sports`,
		"http://example.com/sports.m3u8",
		`#EXTINF:-1 tvg-id="docs.example" group-title="Documentary",Deep Dives`,
		"http://example.com/docs.m3u8",
	}, "\n")
	pl, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return pl
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		name     string
		entry    *parser.Entry
		words    []string
		expected bool
	}{
		{
			name: "name substring",
			entry: &parser.Entry{
				Name: "World News",
			},
			words:    []string{"world"},
			expected: true,
		},
		{
			name: "all words must match",
			entry: &parser.Entry{
				Name:  "World News",
				Group: parser.Group{Title: "News"},
			},
			words:    []string{"world", "sports"},
			expected: false,
		},
		{
			name: "group and tvg id searchable",
			entry: &parser.Entry{
				Name:  "Big Sports",
				Group: parser.Group{Title: "Sports"},
				Tvg:   parser.Tvg{ID: "sports.example"},
			},
			words:    []string{"sports", "example"},
			expected: true,
		},
		{
			name: "url searchable",
			entry: &parser.Entry{
				Name: "Big Sports",
				URL:  "http://example.com/sports.m3u8",
			},
			words:    []string{"m3u8"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newEntryItem(tt.entry)
			if got := item.matchesQuery(tt.words); got != tt.expected {
				t.Errorf("matchesQuery(%v) = %v, expected %v", tt.words, got, tt.expected)
			}
		})
	}
}

func TestApplyFilterQuery(t *testing.T) {
	m := newBrowserModel(testPlaylist(t), "sports", "")
	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 match, got %d", len(m.filtered))
	}
	if m.items[m.filtered[0]].entry.Name != "Big Sports" {
		t.Errorf("expected Big Sports, got %q", m.items[m.filtered[0]].entry.Name)
	}
}

func TestApplyFilterGroup(t *testing.T) {
	m := newBrowserModel(testPlaylist(t), "", "news")
	if m.groups[m.groupIdx] != "News" {
		t.Fatalf("expected initial group News, got %q", m.groups[m.groupIdx])
	}
	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 match in group, got %d", len(m.filtered))
	}

	// Cycle back to the unfiltered view
	m.groupIdx = 0
	m.applyFilter()
	if len(m.filtered) != 3 {
		t.Errorf("expected all entries without a group filter, got %d", len(m.filtered))
	}
}

func TestMoveCursorClamped(t *testing.T) {
	m := newBrowserModel(testPlaylist(t), "", "")
	m.moveCursor(-5)
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
	m.moveCursor(100)
	if m.cursor != len(m.filtered)-1 {
		t.Errorf("expected cursor clamped to last row, got %d", m.cursor)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"much longer string", 10, "much long…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.in, tt.width, got, tt.expected)
		}
	}
}
