// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"os"
	"time"
)

// CopyInput describes a single file copy.
// Mode is only applied when the destination file is created.
// If Parents is true, the parent directory of the destination is created first.
type CopyInput struct {
	SourceName            string
	SourceFileSystem      SourceFileSystem
	DestinationName       string
	DestinationFileSystem FileSystem
	Mode                  os.FileMode
	ModTime               time.Time
	Parents               bool
	Logger                Logger
}
