// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/navwar/gotransfer/pkg/fs"
)

// S3FileSystem writes a mirrored tree into a bucket under an optional prefix.
// Names are absolute slash-separated paths, with "/" mapping to the prefix itself.
type S3FileSystem struct {
	bucket           string
	prefix           string
	client           Client
	bucketKeyEnabled bool
	partSize         int
}

// Chtimes is a no-op, since S3 sets the last modified time of an object when it is written.
func (s3fs *S3FileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	return nil
}

func (s3fs *S3FileSystem) Dir(name string) string {
	return Dir(name)
}

// key returns the object key for the given name
func (s3fs *S3FileSystem) key(name string) string {
	return strings.TrimPrefix(path.Join("/", s3fs.prefix, name), "/")
}

func (s3fs *S3FileSystem) IsNotExist(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var responseError *awshttp.ResponseError
	if errors.As(err, &responseError) {
		if responseError.HTTPStatusCode() == 404 {
			return true
		}
	}
	return false
}

func (s3fs *S3FileSystem) IsPermission(err error) bool {
	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		if code := apiError.ErrorCode(); code == "AccessDenied" || code == "Forbidden" {
			return true
		}
	}
	var responseError *awshttp.ResponseError
	if errors.As(err, &responseError) {
		if responseError.HTTPStatusCode() == 403 {
			return true
		}
	}
	return false
}

func (s3fs *S3FileSystem) Join(name ...string) string {
	return path.Join(name...)
}

// MkdirAll writes an empty directory marker object, so empty directories survive the mirror.
func (s3fs *S3FileSystem) MkdirAll(ctx context.Context, name string, mode os.FileMode) error {
	key := s3fs.key(name)
	if len(key) == 0 {
		return nil
	}
	_, err := s3fs.client.PutObject(ctx, &s3.PutObjectInput{
		ACL:              types.ObjectCannedACLBucketOwnerFullControl,
		Body:             bytes.NewReader([]byte{}),
		Bucket:           aws.String(s3fs.bucket),
		BucketKeyEnabled: aws.Bool(s3fs.bucketKeyEnabled),
		ContentLength:    aws.Int64(0),
		Key:              aws.String(key + "/"),
	})
	if err != nil {
		return fmt.Errorf("error creating directory marker %q in bucket %q: %w", key+"/", s3fs.bucket, err)
	}
	return nil
}

// OpenFile returns a write-only file.  The object is created when the file is closed.
func (s3fs *S3FileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) == 0 {
		return nil, fmt.Errorf("error opening %q: s3 destinations only support writing", name)
	}
	uploader := NewUploader(ctx, &UploaderInput{
		ACL:              types.ObjectCannedACLBucketOwnerFullControl,
		Client:           s3fs.client,
		Bucket:           s3fs.bucket,
		BucketKeyEnabled: s3fs.bucketKeyEnabled,
		Key:              s3fs.key(name),
		PartSize:         s3fs.partSize,
	})
	return NewS3File(name, uploader), nil
}

func (s3fs *S3FileSystem) Root() string {
	if len(s3fs.prefix) == 0 {
		return fmt.Sprintf("s3://%s", s3fs.bucket)
	}
	return fmt.Sprintf("s3://%s/%s", s3fs.bucket, s3fs.prefix)
}

func (s3fs *S3FileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if path.Clean("/"+name) == "/" {
		return NewS3FileInfo("/", time.Time{}, true, int64(0)), nil
	}
	key := s3fs.key(name)
	headObjectOutput, err := s3fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return NewS3FileInfo(
		path.Base(name),
		aws.ToTime(headObjectOutput.LastModified),
		false,
		aws.ToInt64(headObjectOutput.ContentLength),
	), nil
}

// ParseURI returns the bucket and prefix for a URI in the form s3://bucket/prefix.
func ParseURI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid s3 uri %q: missing s3:// scheme", uri)
	}
	parts := Split(uri[len("s3://"):])
	if len(parts) == 0 || parts[0] == "/" {
		return "", "", fmt.Errorf("invalid s3 uri %q: missing bucket", uri)
	}
	return parts[0], path.Join(parts[1:]...), nil
}

type NewS3FileSystemInput struct {
	Bucket           string
	Prefix           string
	Client           Client
	BucketKeyEnabled bool
	PartSize         int
}

func NewS3FileSystem(input *NewS3FileSystemInput) *S3FileSystem {
	return &S3FileSystem{
		bucket:           input.Bucket,
		prefix:           strings.Trim(input.Prefix, "/"),
		client:           input.Client,
		bucketKeyEnabled: input.BucketKeyEnabled,
		partSize:         input.PartSize,
	}
}
