package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/parathan/blog-core/internal/config"
)

// S3 stores uploads in an S3-compatible bucket.
type S3 struct {
	client       *s3.Client
	bucket       string
	region       string
	endpoint     string
	customDomain string
	pathStyle    bool
}

func newS3(cfg *config.Config) (*S3, error) {
	sc := cfg.Storage.S3
	region := sc.Region
	if region == "" {
		region = "us-east-1"
	}

	client := s3.New(s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, ""),
		UsePathStyle: sc.PathStyle,
	}, func(o *s3.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
		}
	})

	return &S3{
		client:       client,
		bucket:       sc.Bucket,
		region:       region,
		endpoint:     strings.TrimRight(sc.Endpoint, "/"),
		customDomain: strings.TrimRight(sc.CustomDomain, "/"),
		pathStyle:    sc.PathStyle,
	}, nil
}

func (s *S3) Upload(ctx context.Context, file File) (Object, error) {
	key := buildKey(file.Folder, file.Name)

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object: %w", err)
	}

	return Object{
		URL:    s.URL(key),
		Key:    key,
		Size:   int64(len(file.Data)),
		Format: keyFormat(key),
	}, nil
}

func (s *S3) Delete(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head object: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("delete object: %w", err)
	}
	return true, nil
}

func (s *S3) URL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	if s.endpoint != "" {
		if s.pathStyle {
			return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
		}
		host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
		return fmt.Sprintf("https://%s.%s/%s", s.bucket, host, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
