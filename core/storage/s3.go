package storage

import (
	"context"
	"fmt"
	"time"

	"jogofacil/core/config"
	"jogofacil/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner hands out short-lived presigned PUT URLs so clients upload
// payment receipts and team logos straight to object storage. The service
// never proxies file bytes.
type Presigner interface {
	PresignUpload(ctx context.Context, key string, contentType string) (string, error)
	ObjectURL(key string) string
}

type s3Presigner struct {
	client *s3.PresignClient
	bucket string
	region string
	ttl    time.Duration
}

func NewPresigner(cfg config.S3Config) Presigner {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: creds,
	})

	logger.Info("S3 presigner initialized", "bucket", cfg.Bucket, "region", cfg.Region)
	return &s3Presigner{
		client: s3.NewPresignClient(client),
		bucket: cfg.Bucket,
		region: cfg.Region,
		ttl:    time.Duration(cfg.PresignTTLMinutes) * time.Minute,
	}
}

func (p *s3Presigner) PresignUpload(ctx context.Context, key string, contentType string) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		logger.Error("Storage:PresignUpload:Error", "error", err, "key", key)
		return "", err
	}
	return req.URL, nil
}

func (p *s3Presigner) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}
