// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeClient is an in-memory bucket.
type fakeClient struct {
	mu       sync.Mutex
	objects  map[string][]byte
	uploads  map[string]map[int32][]byte
	aborted  []string
	puts     int
	parts    int
	failPart bool
	// content types by key
	types map[string]string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects: map[string][]byte{},
		uploads: map[string]map[int32][]byte{},
		types:   map[string]string{},
	}
}

func (c *fakeClient) keys() []string {
	keys := make([]string, 0, len(c.objects))
	for k := range c.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *fakeClient) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.uploads, aws.ToString(params.UploadId))
	c.aborted = append(c.aborted, aws.ToString(params.Key))
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (c *fakeClient) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	parts, ok := c.uploads[aws.ToString(params.UploadId)]
	if !ok {
		return nil, fmt.Errorf("unknown upload %q", aws.ToString(params.UploadId))
	}
	buf := &bytes.Buffer{}
	for _, part := range params.MultipartUpload.Parts {
		buf.Write(parts[aws.ToInt32(part.PartNumber)])
	}
	c.objects[aws.ToString(params.Key)] = buf.Bytes()
	delete(c.uploads, aws.ToString(params.UploadId))
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (c *fakeClient) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	uploadID := fmt.Sprintf("upload-%d", len(c.uploads)+1)
	c.types[aws.ToString(params.Key)] = aws.ToString(params.ContentType)
	c.uploads[uploadID] = map[int32][]byte{}
	return &s3.CreateMultipartUploadOutput{
		Bucket:   params.Bucket,
		Key:      params.Key,
		UploadId: aws.String(uploadID),
	}, nil
}

func (c *fakeClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(data))),
		LastModified:  aws.Time(time.Now()),
	}, nil
}

func (c *fakeClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[aws.ToString(params.Key)] = data
	c.types[aws.ToString(params.Key)] = aws.ToString(params.ContentType)
	c.puts++
	return &s3.PutObjectOutput{}, nil
}

func (c *fakeClient) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	if c.failPart {
		return nil, fmt.Errorf("connection reset")
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	parts, ok := c.uploads[aws.ToString(params.UploadId)]
	if !ok {
		return nil, fmt.Errorf("unknown upload %q", aws.ToString(params.UploadId))
	}
	parts[aws.ToInt32(params.PartNumber)] = data
	c.parts++
	return &s3.UploadPartOutput{
		ETag: aws.String(fmt.Sprintf("etag-%d", aws.ToInt32(params.PartNumber))),
	}, nil
}
