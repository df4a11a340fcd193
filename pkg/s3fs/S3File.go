// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"errors"
	"io"
)

// S3File is a write-only handle to an object.
// Bytes are sent to S3 as they are written and the object is finalized by Close.
type S3File struct {
	name        string
	writeCloser io.WriteCloser
}

func (f *S3File) Name() string {
	return f.name
}

func (f *S3File) Close() error {
	return f.writeCloser.Close()
}

func (f *S3File) Read(p []byte) (int, error) {
	return 0, errors.New("S3File does not support the Read function")
}

func (f *S3File) Write(p []byte) (int, error) {
	return f.writeCloser.Write(p)
}

func NewS3File(name string, writeCloser io.WriteCloser) *S3File {
	return &S3File{
		name:        name,
		writeCloser: writeCloser,
	}
}
