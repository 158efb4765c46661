package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignValidity = 15 * time.Minute

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload tells a client where to PUT an event image and which URL to
// store on the event afterwards.
type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}

func imageStorageKey(now time.Time, ext string) string {
	return fmt.Sprintf("events/%d/%02d/%02d/%v%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

func (s *EventService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignImageUpload returns a presigned PUT URL for a new event image.
func (s *EventService) PresignImageUpload(ctx context.Context, contentType string) (*ImageUpload, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, malformed("unsupported image content type")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.config.S3Bucket
	key := imageStorageKey(s.now(), ext)
	ct := strings.ToLower(strings.TrimSpace(contentType))

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &ct,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}

	return &ImageUpload{
		Key:       key,
		UploadURL: req.URL,
		ImageURL:  strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key,
	}, nil
}
