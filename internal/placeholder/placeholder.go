// Package placeholder implements the bracket marker mini-language used by
// catalog prompts.
//
// A marker is a literal "[" followed by one or more characters other than
// "]" and closed by the next "]". The text between the brackets is the
// marker name, case preserved. The same name may appear several times in a
// template and every occurrence receives the same value.
//
// All functions in this package are pure and total: they never fail and
// never mutate their inputs.
package placeholder

import (
	"regexp"
	"strings"
)

// markerPattern matches one marker occurrence. Capture 1 is the name.
var markerPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// FillMap maps marker names to user supplied values. A missing entry or a
// value that is blank after trimming means the marker is not filled.
type FillMap map[string]string

// Set returns a copy of f with the entry for name replaced by value. The
// value is stored exactly as given. The receiver is left untouched so a
// caller holding the old map never observes the edit.
func (f FillMap) Set(name, value string) FillMap {
	out := make(FillMap, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[name] = value
	return out
}

// Filled reports whether name has a non-blank value.
func (f FillMap) Filled(name string) bool {
	v, ok := f[name]
	return ok && strings.TrimSpace(v) != ""
}

// ExtractMarkers returns the distinct marker names in template in order of
// first appearance. A template without markers yields an empty slice.
func ExtractMarkers(template string) []string {
	matches := markerPattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Render substitutes every occurrence of each filled marker with its value.
// Unfilled markers stay in the output as literal "[name]" text.
//
// Substitution is a single left-to-right pass over the template, so a value
// containing brackets is copied through as plain text and never becomes a
// new marker.
func Render(template string, fills FillMap) string {
	if len(fills) == 0 {
		return template
	}
	return markerPattern.ReplaceAllStringFunc(template, func(occurrence string) string {
		name := occurrence[1 : len(occurrence)-1]
		if !fills.Filled(name) {
			return occurrence
		}
		return fills[name]
	})
}

// AllMarkersFilled reports whether every name in markers has a non-blank
// value in fills. An empty marker list is always complete.
func AllMarkersFilled(markers []string, fills FillMap) bool {
	for _, name := range markers {
		if !fills.Filled(name) {
			return false
		}
	}
	return true
}

// MissingMarkers returns the names in markers that are not yet filled,
// preserving order.
func MissingMarkers(markers []string, fills FillMap) []string {
	var missing []string
	for _, name := range markers {
		if !fills.Filled(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Template is an immutable prompt string together with its marker set.
type Template struct {
	raw     string
	markers []string
}

// NewTemplate parses raw once and keeps the extracted markers.
func NewTemplate(raw string) Template {
	return Template{raw: raw, markers: ExtractMarkers(raw)}
}

// String returns the raw template text.
func (t Template) String() string {
	return t.raw
}

// Markers returns a copy of the template's marker set.
func (t Template) Markers() []string {
	out := make([]string, len(t.markers))
	copy(out, t.markers)
	return out
}

// HasMarkers reports whether the template needs any input at all.
func (t Template) HasMarkers() bool {
	return len(t.markers) > 0
}

// Render is Render(t.String(), fills).
func (t Template) Render(fills FillMap) string {
	return Render(t.raw, fills)
}

// Complete is AllMarkersFilled(t.Markers(), fills).
func (t Template) Complete(fills FillMap) bool {
	return AllMarkersFilled(t.markers, fills)
}

// Missing is MissingMarkers(t.Markers(), fills).
func (t Template) Missing(fills FillMap) []string {
	return MissingMarkers(t.markers, fills)
}
