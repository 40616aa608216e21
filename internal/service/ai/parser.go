package ai

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Field names recognised in model output.
const (
	FieldTitle    = "title"
	FieldStory    = "story"
	FieldLocation = "location"
	FieldEntity   = "entity"
)

// A marker is a field name at the start of a line, optionally wrapped in
// markdown decoration: "Title:", "**Title:**", "## Story:", "- Entity:".
var markerPattern = regexp.MustCompile(`(?im)^[ \t>#*_-]*(title|story|location|entity)[ \t*_]*:[ \t*_]*`)

// singleLine fields keep only the text up to the end of their marker line.
var singleLine = map[string]bool{
	FieldTitle:    true,
	FieldLocation: true,
	FieldEntity:   true,
}

// markupTag matches well-formed inline HTML elements some models wrap
// their prose in. Anything else containing '<' is story text.
var markupTag = regexp.MustCompile(`(?i)</?(?:b|i|u|em|strong|p|br|span|div)(?:\s[^<>]*)?/?>`)

var markupPolicy = bluemonday.StrictPolicy()

// Fields holds the values extracted from model output. Absent fields read as "".
type Fields map[string]string

// Get returns the value of name, or "" if the field was absent.
func (f Fields) Get(name string) string {
	return f[name]
}

// Has reports whether name had a marker in the output.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// ParseFields extracts fields from free-form model output. Only markers for
// the given names are recognised; with no names, every known field is.
// Markers for other fields are kept as ordinary text.
//
// Matching is case-insensitive and anchored to line starts. The first marker
// for a field wins; later repeats are treated as ordinary text. A multi-line
// field (story) runs until the next first-occurrence marker, so fields may
// appear in any order.
func ParseFields(raw string, names ...string) Fields {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.ToLower(name)] = true
	}

	type marker struct {
		name       string
		start, end int // marker span; the value starts at end
	}

	var markers []marker
	seen := make(map[string]bool)
	for _, m := range markerPattern.FindAllStringSubmatchIndex(raw, -1) {
		name := strings.ToLower(raw[m[2]:m[3]])
		if len(wanted) > 0 && !wanted[name] {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		markers = append(markers, marker{name: name, start: m[0], end: m[1]})
	}

	fields := make(Fields, len(markers))
	for i, mk := range markers {
		stop := len(raw)
		if i+1 < len(markers) {
			stop = markers[i+1].start
		}
		value := raw[mk.end:stop]
		if singleLine[mk.name] {
			if nl := strings.IndexByte(value, '\n'); nl >= 0 {
				value = value[:nl]
			}
		}
		fields[mk.name] = cleanValue(mk.name, value)
	}
	return fields
}

func cleanValue(name, value string) string {
	if markupTag.MatchString(value) {
		value = stripMarkup(value)
	}
	value = strings.TrimSpace(value)
	if singleLine[name] {
		value = strings.TrimRight(value, "*_ \t")
		value = trimQuotes(value)
	}
	return value
}

// stripMarkup removes the known tags and leaves every other '<' in place.
// Stray brackets are escaped first so the sanitizer treats them as text.
func stripMarkup(value string) string {
	var b strings.Builder
	last := 0
	for _, loc := range markupTag.FindAllStringIndex(value, -1) {
		b.WriteString(strings.ReplaceAll(value[last:loc[0]], "<", "&lt;"))
		b.WriteString(value[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(strings.ReplaceAll(value[last:], "<", "&lt;"))
	return html.UnescapeString(markupPolicy.Sanitize(b.String()))
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
