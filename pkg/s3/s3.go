package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// DefaultRegion is served from the bare s3.amazonaws.com host.
const DefaultRegion = "us-east-1"

type ItfS3 interface {
	PutPublicObject(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

type s3Client struct {
	uploader   *s3manager.Uploader
	region     string
	bucketName string
}

func New(sess *session.Session, bucketName string) (ItfS3, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	return &s3Client{
		uploader:   s3manager.NewUploader(sess),
		region:     aws.StringValue(sess.Config.Region),
		bucketName: bucketName,
	}, nil
}

// PutPublicObject writes body under key with a public-read ACL, replacing any
// object already stored there.
func (s *s3Client) PutPublicObject(ctx context.Context, key string, body []byte, contentType string) error {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return nil
}

func (s *s3Client) PublicURL(key string) string {
	return PublicURL(s.region, s.bucketName, key)
}

// PublicURL builds the path-style URL of a public object.
func PublicURL(region string, bucket string, key string) string {
	host := "s3.amazonaws.com"
	if region != DefaultRegion {
		host = fmt.Sprintf("s3-%s.amazonaws.com", region)
	}
	return fmt.Sprintf("https://%s/%s/%s", host, bucket, key)
}
