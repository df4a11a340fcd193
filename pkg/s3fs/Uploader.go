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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
)

// sniffLength is the number of leading bytes used to detect the content type.
const sniffLength = 3072

// Uploader buffers writes and uploads an object.
// Objects smaller than the part size are uploaded with a single PutObject on Close.
// Larger objects are uploaded as a multipart upload, one part each time the buffer fills.
// If any request fails, the multipart upload is aborted so no partial object is left behind.
type Uploader struct {
	ctx context.Context
	//
	acl              types.ObjectCannedACL
	client           Client
	bucket           *string
	bucketKeyEnabled bool
	key              *string
	partSize         int
	//
	buffer         *bytes.Buffer
	uploadID       *string
	lastPartNumber int32
	etags          map[int32]*string
	closed         bool
	err            error
	contentType    *string
}

// detectContentType sniffs the content type from the first bytes written.
// The result is fixed by the first request, so every part shares it.
func (u *Uploader) detectContentType() *string {
	if u.contentType == nil {
		b := u.buffer.Bytes()
		if len(b) > sniffLength {
			b = b[:sniffLength]
		}
		u.contentType = aws.String(mimetype.Detect(b).String())
	}
	return u.contentType
}

func (u *Uploader) abort() {
	if u.uploadID == nil {
		return
	}
	_, _ = u.client.AbortMultipartUpload(context.Background(), &s3.AbortMultipartUploadInput{
		Bucket:   u.bucket,
		Key:      u.key,
		UploadId: u.uploadID,
	})
	u.uploadID = nil
}

func (u *Uploader) uploadPart() error {
	// If multipart upload hasn't been started yet, then create it.
	if u.uploadID == nil {
		createMultipartUploadOutput, err := u.client.CreateMultipartUpload(u.ctx, &s3.CreateMultipartUploadInput{
			ACL:              u.acl,
			Bucket:           u.bucket,
			BucketKeyEnabled: aws.Bool(u.bucketKeyEnabled),
			ContentType:      u.detectContentType(),
			Key:              u.key,
		})
		if err != nil {
			return fmt.Errorf("error creating multipart upload for %q: %w", aws.ToString(u.key), err)
		}
		u.uploadID = createMultipartUploadOutput.UploadId
	}

	// a readseeker is needed to rewind the body if the client retries
	reader := bytes.NewReader(u.buffer.Bytes())
	partNumber := u.lastPartNumber + 1
	uploadPartOutput, err := u.client.UploadPart(u.ctx, &s3.UploadPartInput{
		Body:          reader,
		Bucket:        u.bucket,
		Key:           u.key,
		PartNumber:    aws.Int32(partNumber),
		UploadId:      u.uploadID,
		ContentLength: aws.Int64(int64(reader.Len())),
	})
	if err != nil {
		u.abort()
		u.err = fmt.Errorf("error uploading part %d for %q: %w", partNumber, aws.ToString(u.key), err)
		return u.err
	}

	u.etags[partNumber] = uploadPartOutput.ETag
	u.lastPartNumber = partNumber
	u.buffer = bytes.NewBuffer([]byte{})
	return nil
}

func (u *Uploader) Close() error {
	if u.closed {
		return io.ErrUnexpectedEOF
	}

	u.closed = true

	// an aborted upload never writes the object
	if u.err != nil {
		return u.err
	}

	// if upload hasn't started.
	if u.uploadID == nil {
		reader := bytes.NewReader(u.buffer.Bytes())
		_, err := u.client.PutObject(u.ctx, &s3.PutObjectInput{
			ACL:              u.acl,
			Body:             reader,
			Bucket:           u.bucket,
			BucketKeyEnabled: aws.Bool(u.bucketKeyEnabled),
			ContentLength:    aws.Int64(int64(reader.Len())),
			ContentType:      u.detectContentType(),
			Key:              u.key,
		})
		if err != nil {
			return fmt.Errorf("error putting object %q: %w", aws.ToString(u.key), err)
		}
		u.buffer = bytes.NewBuffer([]byte{})
		return nil
	}

	// upload remaining bytes
	if u.buffer.Len() > 0 {
		if err := u.uploadPart(); err != nil {
			return err
		}
	}

	completedParts := []types.CompletedPart{}
	for i := int32(1); i <= u.lastPartNumber; i++ {
		completedParts = append(completedParts, types.CompletedPart{
			ETag:       u.etags[i],
			PartNumber: aws.Int32(i),
		})
	}

	_, err := u.client.CompleteMultipartUpload(u.ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   u.bucket,
		Key:      u.key,
		UploadId: u.uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completedParts,
		},
	})
	if err != nil {
		u.abort()
		return fmt.Errorf("error completing multipart upload for %q: %w", aws.ToString(u.key), err)
	}
	return nil
}

func (u *Uploader) Write(p []byte) (int, error) {
	if u.closed {
		return 0, io.ErrUnexpectedEOF
	}

	n, err := u.buffer.Write(p)
	if err != nil {
		return 0, err
	}

	if u.buffer.Len() >= u.partSize {
		if err := u.uploadPart(); err != nil {
			return 0, err
		}
	}

	return n, nil
}

type UploaderInput struct {
	ACL              types.ObjectCannedACL
	Client           Client
	Bucket           string
	BucketKeyEnabled bool
	Key              string
	PartSize         int
}

func NewUploader(ctx context.Context, input *UploaderInput) *Uploader {
	return &Uploader{
		ctx: ctx,
		//
		acl:              input.ACL,
		client:           input.Client,
		bucket:           aws.String(input.Bucket),
		bucketKeyEnabled: input.BucketKeyEnabled,
		key:              aws.String(input.Key),
		partSize:         input.PartSize,
		//
		buffer:         bytes.NewBuffer([]byte{}),
		uploadID:       nil,
		lastPartNumber: int32(0),
		etags:          map[int32]*string{},
		closed:         false,
	}
}
