package export

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
)

type fakeS3 struct {
	puts []*s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

func testReport() *models.ArchivedReport {
	return &models.ArchivedReport{
		ID:          "7f1c",
		Type:        models.ReportEnhanced,
		DatasheetNo: "A612",
		CreatedAt:   time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC),
	}
}

func TestS3Exporter_Key(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"trailing slash", "reports/", "reports/2026/10/19/A612-7f1c.html"},
		{"no slash", "reports", "reports/2026/10/19/A612-7f1c.html"},
		{"empty", "", "2026/10/19/A612-7f1c.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newS3Exporter(&fakeS3{}, "bucket", tt.prefix)
			assert.Equal(t, tt.want, e.Key(testReport()))
		})
	}
}

func TestS3Exporter_Export(t *testing.T) {
	fake := &fakeS3{}
	e := newS3Exporter(fake, "pds-reports", "reports/")

	key, err := e.Export(context.Background(), testReport(), []byte("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "reports/2026/10/19/A612-7f1c.html", key)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "pds-reports", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "text/html; charset=utf-8", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, "enhanced-pds", fake.puts[0].Metadata["report-type"])
	assert.Equal(t, "<html></html>", string(fake.body))
}

func TestS3Exporter_ExportError(t *testing.T) {
	e := newS3Exporter(&fakeS3{err: errors.New("access denied")}, "b", "")

	_, err := e.Export(context.Background(), testReport(), nil)
	assert.ErrorContains(t, err, "access denied")
	assert.Error(t, e.HealthCheck(context.Background()))
}
