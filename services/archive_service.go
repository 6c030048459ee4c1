package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/prometheus"
)

// ArchiveInterface defines the interface for snapshot archive operations
type ArchiveInterface interface {
	PutSnapshot(key string, body []byte) error
}

// ArchiveService uploads historical performance snapshots to an S3 bucket.
// The database row remains the system of record; the archive is a secondary
// JSON copy for downstream reporting.
type ArchiveService struct {
	client *s3.Client
	bucket string
}

var archiveServiceInstance ArchiveInterface

// InitArchiveService initializes the snapshot archive with AWS credentials.
// Returns nil without error when no bucket is configured; archiving is
// optional.
func InitArchiveService() (ArchiveInterface, error) {
	cfg := appConfig.GetConfig()
	if cfg.AWSS3Bucket == "" {
		return nil, nil
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	archiveServiceInstance = &ArchiveService{
		client: client,
		bucket: cfg.AWSS3Bucket,
	}

	return archiveServiceInstance, nil
}

// GetArchiveService returns the initialized archive service instance, or nil
// when archiving is not configured.
func GetArchiveService() ArchiveInterface {
	return archiveServiceInstance
}

// SetArchiveService sets the archive service instance (primarily for testing)
func SetArchiveService(service ArchiveInterface) {
	archiveServiceInstance = service
}

// PutSnapshot uploads a serialized snapshot under the given key
func (s *ArchiveService) PutSnapshot(key string, body []byte) error {
	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}

	return nil
}

// ArchiveSnapshot serializes a historical performance record and uploads it
// to the configured archive bucket. Failures are logged and counted but do
// not propagate: the database write already succeeded and the archive copy
// is best-effort.
func ArchiveSnapshot(record *models.HistoricalPerformance) {
	archive := GetArchiveService()
	if archive == nil {
		return
	}

	body, err := json.Marshal(record)
	if err != nil {
		log.Printf("warning: failed to serialize snapshot %d for archive: %v", record.ID, err)
		prometheus.SnapshotArchiveErrorsTotal.Inc()
		return
	}

	key := fmt.Sprintf("snapshots/%d/%d.json", record.VendorID, record.Date.Unix())
	if err := archive.PutSnapshot(key, body); err != nil {
		log.Printf("warning: failed to archive snapshot %d: %v", record.ID, err)
		prometheus.SnapshotArchiveErrorsTotal.Inc()
		return
	}

	log.Printf("Archived performance snapshot for vendor %d at %s", record.VendorID, key)
}
