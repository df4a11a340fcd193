// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"encoding/json"
	"os"
	"time"
)

type S3FileInfo struct {
	name    string
	dir     bool
	modTime time.Time
	size    int64
}

func (fi *S3FileInfo) IsDir() bool {
	return fi.dir
}

// Mode returns a synthetic mode, since objects have no permissions.
func (fi *S3FileInfo) Mode() os.FileMode {
	if fi.dir {
		return os.ModeDir | 0755
	}
	return 0644
}

func (fi *S3FileInfo) Name() string {
	return fi.name
}

func (fi *S3FileInfo) ModTime() time.Time {
	return fi.modTime
}

func (fi *S3FileInfo) Size() int64 {
	return fi.size
}

func (fi *S3FileInfo) String() string {
	return fi.name
}

func (fi *S3FileInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"dir":     fi.dir,
		"modTime": fi.modTime,
		"name":    fi.name,
		"size":    fi.size,
	})
}

func NewS3FileInfo(name string, modTime time.Time, dir bool, size int64) *S3FileInfo {
	return &S3FileInfo{
		name:    name,
		dir:     dir,
		modTime: modTime,
		size:    size,
	}
}
