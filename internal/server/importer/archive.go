package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/ymori23/ranking-server/internal/server/config"
)

// S3Archiver keeps a copy of every successfully imported workbook in an
// S3-compatible bucket (MinIO in development).
type S3Archiver struct {
	config *sc.Config
}

// NewS3Archiver returns nil when no S3 endpoint is configured, which
// disables archival.
func NewS3Archiver(cfg *sc.Config) *S3Archiver {
	if cfg.S3BaseEndpoint == "" {
		return nil
	}
	return &S3Archiver{config: cfg}
}

func (a *S3Archiver) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(a.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.config.S3RootUser,
			a.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("imports/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (a *S3Archiver) Archive(ctx context.Context, path string) error {

	client, err := a.client(ctx)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	bucket := a.config.S3Bucket
	key := storageKey(filepath.Ext(path))

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   file,
	})
	return err
}
