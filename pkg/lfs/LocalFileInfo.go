// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"encoding/json"
	"os"
	"time"
)

type LocalFileInfo struct {
	name    string
	modTime time.Time
	mode    os.FileMode
	size    int64
}

func (lfi *LocalFileInfo) IsDir() bool {
	return lfi.mode.IsDir()
}

func (lfi *LocalFileInfo) Mode() os.FileMode {
	return lfi.mode
}

func (lfi *LocalFileInfo) Name() string {
	return lfi.name
}

func (lfi *LocalFileInfo) ModTime() time.Time {
	return lfi.modTime
}

func (lfi *LocalFileInfo) Size() int64 {
	return lfi.size
}

func (lfi *LocalFileInfo) String() string {
	return lfi.name
}

func (lfi *LocalFileInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"dir":     lfi.IsDir(),
		"mode":    lfi.mode.String(),
		"modTime": lfi.modTime,
		"name":    lfi.name,
		"size":    lfi.size,
	})
}

func NewLocalFileInfo(name string, modTime time.Time, mode os.FileMode, size int64) *LocalFileInfo {
	return &LocalFileInfo{
		name:    name,
		modTime: modTime,
		mode:    mode,
		size:    size,
	}
}
