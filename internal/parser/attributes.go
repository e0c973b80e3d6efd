package parser

import (
	"regexp"
	"strings"
)

var attrPairRegex = regexp.MustCompile(`([\w-]+)="([^"]*)"`)

// attrValue returns the trimmed value of the first case-insensitive
// name="value" occurrence on the line, or "" when absent. The lookup
// is total: every attribute resolves to a string, never to a missing
// value.
func attrValue(line, name string) string {
	for _, m := range attrPairRegex.FindAllStringSubmatch(line, -1) {
		if strings.EqualFold(m[1], name) {
			return strings.TrimSpace(m[2])
		}
	}
	return ""
}

// displayName returns the text after the final comma of the line's
// first physical line, trimmed. This is the channel name trailing an
// #EXTINF directive.
func displayName(line string) string {
	if idx := strings.Index(line, "\n"); idx != -1 {
		line = line[:idx]
	}
	idx := strings.LastIndex(line, ",")
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// optionValue returns the value following name= on an option line,
// with surrounding quotes stripped, or "" when absent
func optionValue(line, name string) string {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(name)+"=")
	if idx == -1 {
		return ""
	}
	value := line[idx+len(name)+1:]
	return strings.Trim(strings.TrimSpace(value), `"'`)
}

// groupValue returns the value after the first colon of a group
// override line, trimmed
func groupValue(line string) string {
	idx := strings.Index(line, ":")
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// pipeParam extracts a query-style parameter from the segment after a
// locator's pipe. The value runs until the next & or end of string.
func pipeParam(params, name string) string {
	idx := strings.Index(strings.ToLower(params), name+"=")
	if idx == -1 {
		return ""
	}
	value := params[idx+len(name)+1:]
	if amp := strings.Index(value, "&"); amp != -1 {
		value = value[:amp]
	}
	return value
}
