package player

import (
	"testing"

	"github.com/fbritoferreira/m3u8-parser/internal/parser"
)

// recordingClipboard captures copied text for assertions
type recordingClipboard struct {
	copied []string
}

func (c *recordingClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

func entryWithTransport(url, ua, referrer string) *parser.Entry {
	return &parser.Entry{
		Name:      "Test Channel",
		URL:       url,
		Transport: parser.Transport{UserAgent: ua, Referrer: referrer},
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		entry    *parser.Entry
		expected []string
	}{
		{
			name:     "mpv with transport overrides",
			command:  "mpv",
			entry:    entryWithTransport("http://example.com/a.m3u8", "Agent/1.0", "http://ref.example.com"),
			expected: []string{"--user-agent=Agent/1.0", "--referrer=http://ref.example.com", "http://example.com/a.m3u8"},
		},
		{
			name:     "mpv without overrides",
			command:  "mpv",
			entry:    entryWithTransport("http://example.com/a.m3u8", "", ""),
			expected: []string{"http://example.com/a.m3u8"},
		},
		{
			name:     "vlc flags",
			command:  "vlc",
			entry:    entryWithTransport("http://example.com/a.m3u8", "Agent/1.0", "http://ref.example.com"),
			expected: []string{"--http-user-agent", "Agent/1.0", "--http-referrer", "http://ref.example.com", "http://example.com/a.m3u8"},
		},
		{
			name:     "ffplay referer header",
			command:  "ffplay",
			entry:    entryWithTransport("http://example.com/a.m3u8", "", "http://ref.example.com"),
			expected: []string{"-headers", "Referer: http://ref.example.com", "http://example.com/a.m3u8"},
		},
		{
			name:     "full path to player",
			command:  "/usr/local/bin/mpv",
			entry:    entryWithTransport("http://example.com/a.m3u8", "Agent/1.0", ""),
			expected: []string{"--user-agent=Agent/1.0", "http://example.com/a.m3u8"},
		},
		{
			name:     "unknown player gets url only",
			command:  "someplayer",
			entry:    entryWithTransport("http://example.com/a.m3u8", "Agent/1.0", ""),
			expected: []string{"http://example.com/a.m3u8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Player{command: tt.command}
			args := p.BuildArgs(tt.entry)
			if len(args) != len(tt.expected) {
				t.Fatalf("expected args %v, got %v", tt.expected, args)
			}
			for i := range tt.expected {
				if args[i] != tt.expected[i] {
					t.Errorf("expected args[%d] = %q, got %q", i, tt.expected[i], args[i])
				}
			}
		})
	}
}

func TestOutputCopy(t *testing.T) {
	clip := &recordingClipboard{}
	p := (&Player{command: "mpv"}).WithClipboard(clip)

	e := entryWithTransport("http://example.com/a.m3u8", "", "")
	if err := p.OutputWithMode(e, OutputCopy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clip.copied) != 1 || clip.copied[0] != "http://example.com/a.m3u8" {
		t.Errorf("expected URL on clipboard, got %v", clip.copied)
	}
}

func TestPlayWithoutPlayer(t *testing.T) {
	p := &Player{command: ""}
	e := entryWithTransport("http://example.com/a.m3u8", "", "")
	if err := p.OutputWithMode(e, OutputPlay); err == nil {
		t.Fatal("expected error when no player is available")
	}
}
