package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// StorageConfig points at an S3-compatible bucket.
type StorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicBaseURL prefixes object keys in returned URLs. When empty the
	// URL is derived from the endpoint and bucket.
	PublicBaseURL string
}

// ObjectStorage uploads public objects to one bucket.
type ObjectStorage struct {
	client  s3iface.S3API
	bucket  string
	baseURL string
}

func NewObjectStorage(cfg StorageConfig) (*ObjectStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not set")
	}
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	return newObjectStorage(s3.New(sess), cfg), nil
}

func newObjectStorage(client s3iface.S3API, cfg StorageConfig) *ObjectStorage {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		endpoint := strings.TrimRight(cfg.Endpoint, "/")
		if endpoint == "" {
			endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
		}
		base = endpoint + "/" + cfg.Bucket
	}
	return &ObjectStorage{client: client, bucket: cfg.Bucket, baseURL: base}
}

// Upload stores body under key with public-read access and returns its URL.
func (o *ObjectStorage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := o.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(o.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}

	return o.baseURL + "/" + key, nil
}
