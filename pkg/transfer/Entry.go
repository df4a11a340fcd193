// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// NodeKind is the kind of a filesystem node, decided once when the node is visited.
type NodeKind int

const (
	Directory NodeKind = iota
	RegularFile
	// Other covers symbolic links, devices, named pipes and sockets.
	// They are mirrored like regular files.
	Other
)

func (k NodeKind) String() string {
	switch k {
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	default:
		return "other"
	}
}

func KindOf(mode os.FileMode) NodeKind {
	if mode.IsDir() {
		return Directory
	}
	if mode.IsRegular() {
		return RegularFile
	}
	return Other
}

// Entry is one discovered source file and its destination.
type Entry struct {
	RelativePath    string
	SourcePath      string
	DestinationPath string
	Size            int64
	Extension       string
	ModTime         time.Time
	Mode            os.FileMode
	Kind            NodeKind
}

// Extension returns the lowercase extension of name without the leading dot.
// Names that only begin with a dot, such as ".nomedia", have no extension.
func Extension(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
