package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	infraconfig "github.com/smartbill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// S3Archiver stores invoice PDFs in an S3-compatible bucket.
// It works with AWS S3 as well as MinIO and other compatible backends.
type S3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3Archiver creates an archiver from storage configuration
func NewS3Archiver(cfg infraconfig.StorageConfig, logger *zap.Logger) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage credentials are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				if cfg.UseSSL {
					endpoint = "https://" + endpoint
				} else {
					endpoint = "http://" + endpoint
				}
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

// Archive uploads the PDF under <prefix><invoiceNo>.pdf
func (a *S3Archiver) Archive(ctx context.Context, invoiceNo string, pdf []byte) error {
	key := a.prefix + invoiceNo + ".pdf"

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload invoice %s: %w", invoiceNo, err)
	}

	a.logger.Debug("invoice archived",
		zap.String("invoice_no", invoiceNo),
		zap.String("key", key),
		zap.Int("bytes", len(pdf)))
	return nil
}

var _ InvoiceArchiver = (*S3Archiver)(nil)
