// Package storage issues presigned upload targets against
// S3-compatible object storage. Clients put raw photo bytes directly
// to the returned URL; the service only ever handles keys. Reads need
// no signing: a key resolves to baseURL + "/" + key.
package storage

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// presignExpiry is how long an issued upload URL stays valid.
const presignExpiry = 15 * time.Minute

// allowedUploadTypes are the photo content types uploads may carry.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadTarget is the issued destination for one direct upload.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// Client wraps an S3 client for presigned upload issuance on a single
// public bucket.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for reads
}

// New creates an S3 storage client with path-style addressing (as
// required by CEPH/MinIO style endpoints). Returns (nil, nil) if
// endpoint or credentials are empty, allowing the service to start
// with uploads disabled.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// AllowedType reports whether uploads of the given content type are
// accepted.
func AllowedType(contentType string) bool {
	return allowedUploadTypes[contentType]
}

// PresignUpload issues a presigned PUT target for one object of the
// given content type. Keys are uuid-based and grouped by year/month so
// buckets stay browsable.
func (c *Client) PresignUpload(ctx context.Context, contentType string) (UploadTarget, error) {
	if !AllowedType(contentType) {
		return UploadTarget{}, fmt.Errorf("presign upload: content type %q not allowed", contentType)
	}

	now := time.Now()
	ext := extensionFor(contentType)
	key := fmt.Sprintf("uploads/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New(), ext)

	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return UploadTarget{}, fmt.Errorf("s3 presign put %s: %w", key, err)
	}

	return UploadTarget{UploadURL: req.URL, Key: key}, nil
}

// Delete removes an object. Used when a bound photo is replaced and
// its old key is no longer referenced.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// BaseURL returns the public read base. A key appended with "/"
// yields its direct URL.
func (c *Client) BaseURL() string {
	if c.publicURL != "" {
		return c.publicURL
	}
	return c.endpoint + "/" + c.bucket
}

// FileURL returns the public read URL for a key.
func (c *Client) FileURL(key string) string {
	return c.BaseURL() + "/" + key
}

// extensionFor maps an allowed content type to a file extension.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
