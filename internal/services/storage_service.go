// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/shopfront/ecommerce-backend/internal/config"
)

const invoiceFolder = "invoices"

// StorageService archives rendered documents in S3. Without AWS credentials
// it is disabled and archiving is skipped.
type StorageService struct {
	s3Client *s3.S3
	config   config.AWSConfig
	archive  bool
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg.AWS}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg.AWS,
		archive:  cfg.Invoice.Archive,
	}, nil
}

func (s *StorageService) Enabled() bool {
	return s.s3Client != nil && s.archive
}

// ArchiveInvoice stores the PDF under invoices/<order number>.pdf, replacing
// any earlier copy.
func (s *StorageService) ArchiveInvoice(ctx context.Context, orderNumber string, content []byte) (*UploadResult, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("S3 client not configured")
	}

	key := InvoiceKey(orderNumber)
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(content))),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.objectURL(key),
		Key:      key,
		Size:     int64(len(content)),
		MimeType: "application/pdf",
	}, nil
}

func InvoiceKey(orderNumber string) string {
	return fmt.Sprintf("%s/%s.pdf", invoiceFolder, orderNumber)
}

func (s *StorageService) objectURL(key string) string {
	if s.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}
