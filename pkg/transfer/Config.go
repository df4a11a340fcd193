// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

// Package transfer mirrors a source directory tree into a destination tree,
// copying files that are missing or differ in size and accumulating statistics for the run.
package transfer

import (
	"sort"
	"strings"
)

// ExtensionSet is a set of lowercase file extensions without a leading dot.
// A nil set allows every extension.
type ExtensionSet map[string]struct{}

// NewExtensionSet returns a set of the normalized extensions.
// Returns nil if no non-empty extension is given.
func NewExtensionSet(extensions []string) ExtensionSet {
	set := ExtensionSet{}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if len(ext) > 0 {
			set[ext] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// ParseExtensions parses a comma-separated list such as "jpg,PNG, .mov".
func ParseExtensions(list string) ExtensionSet {
	if len(strings.TrimSpace(list)) == 0 {
		return nil
	}
	return NewExtensionSet(strings.Split(list, ","))
}

// Allows returns true if the extension is a member of the set or if the set is nil.
func (s ExtensionSet) Allows(ext string) bool {
	if s == nil {
		return true
	}
	_, ok := s[ext]
	return ok
}

// Sorted returns the extensions in sorted order.
func (s ExtensionSet) Sorted() []string {
	extensions := make([]string, 0, len(s))
	for ext := range s {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// Config is the immutable configuration of a single run.
// Source and Destination are root paths within the source and destination file systems.
// DestinationURI is shown to the user in place of Destination, if set.
type Config struct {
	Source         string
	Destination    string
	DestinationURI string
	Extensions     ExtensionSet
	DryRun         bool
}

func (c Config) DestinationName() string {
	if len(c.DestinationURI) > 0 {
		return c.DestinationURI
	}
	return c.Destination
}

func (c Config) Allows(ext string) bool {
	return c.Extensions.Allows(ext)
}
