package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEntry reports an entry that violates the field-shape
// contract when handed across the package boundary.
var ErrInvalidEntry = errors.New("invalid entry")

// Header represents the #EXTM3U line
type Header struct {
	Attrs map[string]string // Recognized header attributes
	Raw   string            // Original line text
}

// TvgURL returns the default EPG URL, under either accepted spelling
func (h Header) TvgURL() string {
	if v := h.Attrs["x-tvg-url"]; v != "" {
		return v
	}
	return h.Attrs["url-tvg"]
}

// Group is the category label used to partition entries for filtering
type Group struct {
	Title string
}

// Tvg holds EPG metadata carried on an #EXTINF line
type Tvg struct {
	ID   string // tvg-id
	Name string // tvg-name
	URL  string // tvg-url
	Logo string // tvg-logo
	Rec  string // tvg-rec
}

// Transport holds per-entry HTTP overrides
type Transport struct {
	Referrer  string
	UserAgent string
}

// Catchup holds archive/replay metadata
type Catchup struct {
	Type   string // catchup
	Source string // catchup-source
	Days   string // catchup-days
}

type entryState int

const (
	stateBuilding entryState = iota
	stateFinalized
)

// Entry represents a single playlist item
type Entry struct {
	Name      string // Display name after the final comma
	Index     int    // Source line number + 1
	Group     Group
	Tvg       Tvg
	Transport Transport
	URL       string // Resolved locator, empty until a locator line is seen
	Raw       string // Verbatim source lines for this entry, newline-joined
	Timeshift string
	Catchup   Catchup

	state entryState
}

// Finalized reports whether a locator line has completed this entry
func (e *Entry) Finalized() bool {
	return e.state == stateFinalized
}

// Validate checks the field-shape contract for entries supplied from
// outside the parser (see ReplaceEntries)
func (e *Entry) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil entry", ErrInvalidEntry)
	}
	if e.Index < 1 {
		return fmt.Errorf("%w: index %d out of range", ErrInvalidEntry, e.Index)
	}
	if e.Raw == "" {
		return fmt.Errorf("%w: missing raw text", ErrInvalidEntry)
	}
	if e.state == stateFinalized && e.URL == "" {
		return fmt.Errorf("%w: finalized entry without locator", ErrInvalidEntry)
	}
	return nil
}

func (e *Entry) appendRaw(line string) {
	e.Raw += "\n" + line
}

// Playlist holds the parse result: the header, entries in source
// order, and the group index / filter cache built from them.
//
// A Playlist is not safe for concurrent use; every instance owns its
// own entry list, group index, and cache.
type Playlist struct {
	Header  Header
	Entries []*Entry // Integer key space: slice index, source order
	Raw     string   // Original source text

	groups      []string // Distinct group titles, first-seen order
	groupSeen   map[string]bool
	filterCache map[string][]*Entry
}

// NewPlaylist creates an empty playlist around the given header
func NewPlaylist(header Header, raw string) *Playlist {
	return &Playlist{
		Header:      header,
		Raw:         raw,
		groupSeen:   make(map[string]bool),
		filterCache: make(map[string][]*Entry),
	}
}

// registerGroup records a group title on entry finalization
func (p *Playlist) registerGroup(title string) {
	if p.groupSeen[title] {
		return
	}
	p.groupSeen[title] = true
	p.groups = append(p.groups, title)
}

// Groups returns the distinct group titles seen on finalized entries,
// in first-seen order
func (p *Playlist) Groups() []string {
	out := make([]string, len(p.groups))
	copy(out, p.groups)
	return out
}

// FilterByGroup returns the entries whose group matches the given
// name. The name is resolved against the group index first: every
// known title it is a case-insensitive prefix of is included, so one
// name can select several groups. Results are cached per name.
func (p *Playlist) FilterByGroup(name string) []*Entry {
	if hit, ok := p.filterCache[name]; ok {
		return hit
	}
	var titles []string
	for _, title := range p.groups {
		if hasPrefixFold(title, name) {
			titles = append(titles, title)
		}
	}
	result := p.filterEntries(titles)
	p.filterCache[name] = result
	return result
}

// FilterByGroups returns the entries whose group title starts with
// any of the given names, case-insensitively. Results are cached
// under the joined names.
func (p *Playlist) FilterByGroups(names []string) []*Entry {
	key := strings.Join(names, ",")
	if hit, ok := p.filterCache[key]; ok {
		return hit
	}
	result := p.filterEntries(names)
	p.filterCache[key] = result
	return result
}

// filterEntries keeps source order; an unmatched name contributes
// nothing rather than failing
func (p *Playlist) filterEntries(names []string) []*Entry {
	result := make([]*Entry, 0)
	for _, e := range p.Entries {
		for _, name := range names {
			if hasPrefixFold(e.Group.Title, name) {
				result = append(result, e)
				break
			}
		}
	}
	return result
}

// ReplaceEntries swaps the whole entry set. Every cached filter
// result is dropped, and new group titles are folded into the group
// index (the index never shrinks short of a full re-parse).
func (p *Playlist) ReplaceEntries(entries []*Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	p.Entries = entries
	p.filterCache = make(map[string][]*Entry)
	for _, e := range entries {
		if e.Finalized() {
			p.registerGroup(e.Group.Title)
		}
	}
	return nil
}

// Render reconstructs the playlist text by replaying captured raw
// lines. No field is re-derived, so a parse/render cycle is lossless.
func (p *Playlist) Render() string {
	return p.RenderEntries(p.Entries)
}

// RenderEntries reconstructs playlist text for a subset of entries
// (typically a filter result) under the original header line
func (p *Playlist) RenderEntries(entries []*Entry) string {
	var b strings.Builder
	b.WriteString(p.Header.Raw)
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(e.Raw)
	}
	return b.String()
}

// hasPrefixFold is a case-insensitive strings.HasPrefix
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
