package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	// Prefix is prepended to object keys, e.g. "reports/".
	Prefix string
}

// S3Sink uploads artifacts to an S3-compatible bucket (AWS or MinIO).
type S3Sink struct {
	cfg S3Config

	once   sync.Once
	client *s3.Client
	err    error
}

func NewS3Sink(cfg S3Config) *S3Sink {
	return &S3Sink{cfg: cfg}
}

func (s *S3Sink) getClient(ctx context.Context) (*s3.Client, error) {
	s.once.Do(func() {
		opts := []func(*config.LoadOptions) error{config.WithRegion(s.cfg.Region)}
		if s.cfg.AccessKey != "" {
			opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.cfg.AccessKey,
				s.cfg.SecretKey,
				"",
			)))
		}
		cfg, err := loadDefaultAWSConfig(ctx, opts...)
		if err != nil {
			s.err = fmt.Errorf("load aws config: %w", err)
			return
		}
		s.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
			if s.cfg.BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
				o.UsePathStyle = true
			}
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		})
	})
	return s.client, s.err
}

func (s *S3Sink) Write(ctx context.Context, name string, data []byte) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := path.Join(s.cfg.Prefix, path.Base(name))
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return "s3://" + s.cfg.Bucket + "/" + key, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
