package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrDisabled = errors.New("report export storage is not configured")

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the bucket's public base URL, if it has one.
	PublicURL string
}

func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// ReportStore keeps exported reports somewhere the user can fetch them.
type ReportStore interface {
	Put(ctx context.Context, key string, html []byte) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Store struct {
	client    putObjectAPI
	bucket    string
	publicURL string
}

func NewR2Store(ctx context.Context, cfg R2Config) (*R2Store, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})
	return newR2Store(client, cfg), nil
}

func newR2Store(client putObjectAPI, cfg R2Config) *R2Store {
	return &R2Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

// Put uploads html under key and returns its public URL, or the key when
// the bucket is private.
func (s *R2Store) Put(ctx context.Context, key string, html []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(html),
		ContentType:        aws.String("text/html; charset=utf-8"),
		ContentDisposition: aws.String("inline"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	if s.publicURL == "" {
		return key, nil
	}
	return s.publicURL + "/" + key, nil
}
