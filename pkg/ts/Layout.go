// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"sort"
	"time"
)

// Layout is a string that describes the text representation of a time
type Layout string

func (l Layout) Format(t time.Time) string {
	return t.Format(string(l))
}

// NamedLayouts includes a map of layouts that can be referenced by name
var NamedLayouts = map[string]Layout{
	"Kitchen":     time.Kitchen,
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"DateTime":    time.DateTime,
	"DateOnly":    time.DateOnly,
	"TimeOnly":    time.TimeOnly,
	"Default":     "Jan 02 15:04:05",
	"Full":        "Jan 02 15:04:05 2006",
}

// Names returns the names of the known layouts in sorted order.
func Names() []string {
	names := make([]string, 0, len(NamedLayouts))
	for name := range NamedLayouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLayout returns a layout.
// If layout is the name of a known layout, then returns the referenced layout.
// Otherwise, returns the input layout.
func ParseLayout(layout string) Layout {
	format, ok := NamedLayouts[layout]
	if ok {
		return format
	}
	return Layout(layout)
}

// Clock formats timestamps with a layout in a location.
type Clock struct {
	Layout   Layout
	Location *time.Location
}

func (c Clock) Format(t time.Time) string {
	if c.Location != nil {
		t = t.In(c.Location)
	}
	if len(c.Layout) == 0 {
		return NamedLayouts["Default"].Format(t)
	}
	return c.Layout.Format(t)
}
