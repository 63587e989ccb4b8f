// Package s3 publica datasets exportados en un bucket S3 compatible
// (AWS S3 o MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrBucketRequired = errors.New("s3 bucket required")

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // opcional, p.ej. MinIO
	PathStyle bool
	Prefix    string
	// HTTPClient opcional (tests).
	HTTPClient *http.Client
	// Options extra para config.LoadDefaultConfig (credenciales estáticas en tests).
	LoadOptions []func(*config.LoadOptions) error
}

type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := append([]func(*config.LoadOptions) error{config.WithRegion(region)}, cfg.LoadOptions...)
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})
	return &Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Upload sube data bajo prefix+name y devuelve la URI s3:// del objeto.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := u.key(name)
	input := &s3.PutObjectInput{
		Bucket:        &u.bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return "s3://" + u.bucket + "/" + key, nil
}

func (u *Uploader) key(name string) string {
	name = strings.TrimLeft(name, "/")
	if u.prefix == "" {
		return name
	}
	return strings.TrimRight(u.prefix, "/") + "/" + name
}
