package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/models"
)

// S3Config holds object storage configuration
type S3Config struct {
	Endpoint  string // custom endpoint for S3-compatible storage
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
}

// objectAPI is the subset of the S3 client used by the exporter
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Exporter uploads rendered report documents to a bucket
type S3Exporter struct {
	client objectAPI
	bucket string
	prefix string
}

// NewS3Exporter creates an exporter from static or default AWS credentials
func NewS3Exporter(ctx context.Context, cfg S3Config) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return newS3Exporter(s3.NewFromConfig(awsCfg, s3Opts...), cfg.Bucket, cfg.Prefix), nil
}

func newS3Exporter(client objectAPI, bucket, prefix string) *S3Exporter {
	return &S3Exporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Key returns the object key of an archived report's HTML document,
// partitioned by creation day
func (e *S3Exporter) Key(rep *models.ArchivedReport) string {
	name := rep.ID + ".html"
	if rep.DatasheetNo != "" {
		name = rep.DatasheetNo + "-" + name
	}
	return path.Join(strings.TrimSuffix(e.prefix, "/"), rep.CreatedAt.UTC().Format("2006/01/02"), name)
}

// Export uploads the rendered HTML and returns the object key
func (e *S3Exporter) Export(ctx context.Context, rep *models.ArchivedReport, html []byte) (string, error) {
	key := e.Key(rep)

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"report-type":  string(rep.Type),
			"datasheet-no": rep.DatasheetNo,
		},
	})
	if err != nil {
		metrics.ExportUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	metrics.ExportUploads.WithLabelValues("success").Inc()
	slog.Info("report exported", "id", rep.ID, "bucket", e.bucket, "key", key, "bytes", len(html))
	return key, nil
}

// Type returns the service type
func (e *S3Exporter) Type() string {
	return "s3"
}

// HealthCheck verifies the bucket is reachable
func (e *S3Exporter) HealthCheck(ctx context.Context) error {
	_, err := e.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(e.bucket)})
	return err
}
