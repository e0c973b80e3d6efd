package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidFormat reports source text whose first line does not
// start with the #EXTM3U marker. The parse aborts and no partial
// entries are exposed.
var ErrInvalidFormat = errors.New("invalid playlist format")

const (
	headerMarker = "#EXTM3U"
	infoMarker   = "#EXTINF:"
	optionMarker = "#EXTVLCOPT:"
	groupMarker  = "#EXTGRP:"
)

// Header attributes recognized on the #EXTM3U line. The default EPG
// URL appears in the wild under both spellings.
var headerAttrs = []string{"x-tvg-url", "url-tvg"}

// Parse parses extended M3U playlist text into a Playlist.
//
// The first line must start with #EXTM3U. Every following line is
// classified in order: #EXTINF starts a fresh entry, #EXTVLCOPT and
// #EXTGRP mutate the entry being built, and any other non-blank line
// is the entry's locator, which finalizes it. Blank lines are folded
// verbatim into the current entry's raw text.
func Parse(text string) (*Playlist, error) {
	lines := strings.Split(text, "\n")
	header, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	pl := NewPlaylist(header, text)
	var current *Entry

	for n, line := range lines[1:] {
		lineNum := n + 1
		switch {
		case strings.HasPrefix(line, infoMarker):
			// A second #EXTINF before a locator replaces the entry
			// being built; the replaced raw text is discarded.
			current = newEntry(line, lineNum+1)

		case strings.HasPrefix(line, optionMarker):
			if current == nil {
				continue
			}
			current.applyOption(line)

		case strings.HasPrefix(line, groupMarker):
			if current == nil {
				continue
			}
			current.applyGroup(line)

		case strings.TrimSpace(line) == "":
			if current == nil {
				continue
			}
			current.appendRaw(line)

		default:
			if current == nil {
				continue
			}
			current.finalize(line)
			pl.registerGroup(current.Group.Title)
			pl.Entries = append(pl.Entries, current)
			current = nil
		}
	}

	// A trailing #EXTINF without a locator stays in the list as a
	// building entry so its raw text survives serialization. Its
	// group is never registered.
	if current != nil {
		pl.Entries = append(pl.Entries, current)
	}

	return pl, nil
}

// ParseFile reads and parses a playlist from disk
func ParseFile(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func parseHeader(line string) (Header, error) {
	if !strings.HasPrefix(line, headerMarker) {
		return Header{}, fmt.Errorf("%w: first line must start with %s", ErrInvalidFormat, headerMarker)
	}
	header := Header{
		Attrs: make(map[string]string),
		Raw:   line,
	}
	for _, name := range headerAttrs {
		if v := attrValue(line, name); v != "" {
			header.Attrs[name] = v
		}
	}
	return header, nil
}

// newEntry builds an entry from an #EXTINF line. Every attribute
// lookup is total, so absent attributes come back as empty strings
// and the field-shape contract holds by construction.
func newEntry(line string, index int) *Entry {
	return &Entry{
		Name:  displayName(line),
		Index: index,
		Group: Group{Title: attrValue(line, "group-title")},
		Tvg: Tvg{
			ID:   attrValue(line, "tvg-id"),
			Name: attrValue(line, "tvg-name"),
			URL:  attrValue(line, "tvg-url"),
			Logo: attrValue(line, "tvg-logo"),
			Rec:  attrValue(line, "tvg-rec"),
		},
		Transport: Transport{UserAgent: attrValue(line, "user-agent")},
		Timeshift: attrValue(line, "timeshift"),
		Catchup: Catchup{
			Type:   attrValue(line, "catchup"),
			Source: attrValue(line, "catchup-source"),
			Days:   attrValue(line, "catchup-days"),
		},
		Raw:   line,
		state: stateBuilding,
	}
}

// applyOption merges #EXTVLCOPT transport overrides; new values
// replace old ones only when present
func (e *Entry) applyOption(line string) {
	if ua := optionValue(line, "http-user-agent"); ua != "" {
		e.Transport.UserAgent = ua
	}
	if ref := optionValue(line, "http-referrer"); ref != "" {
		e.Transport.Referrer = ref
	}
	e.appendRaw(line)
}

// applyGroup overwrites the group title from an #EXTGRP line, keeping
// the existing title when extraction yields nothing
func (e *Entry) applyGroup(line string) {
	if title := groupValue(line); title != "" {
		e.Group.Title = title
	}
	e.appendRaw(line)
}

// finalize resolves the locator line: the segment before the first
// pipe is the URL, the segment after carries optional user-agent and
// referer parameters
func (e *Entry) finalize(line string) {
	locator := strings.TrimSpace(line)
	if idx := strings.Index(locator, "|"); idx != -1 {
		params := locator[idx+1:]
		locator = locator[:idx]
		if ua := pipeParam(params, "user-agent"); ua != "" {
			e.Transport.UserAgent = ua
		}
		if ref := pipeParam(params, "referer"); ref != "" {
			e.Transport.Referrer = ref
		}
	}
	e.URL = strings.TrimSpace(locator)
	e.appendRaw(line)
	e.state = stateFinalized
}
