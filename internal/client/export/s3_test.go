package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreSeams(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})
}

func TestS3Sink_AppliesConfig(t *testing.T) {
	restoreSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	var gotIn *s3.PutObjectInput
	calls := 0
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		calls++
		gotIn = in
		return &s3.PutObjectOutput{}, nil
	}

	sink := NewS3Sink(S3Config{
		Bucket:       "reports",
		Region:       "eu-west-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Prefix:       "inventory",
	})

	loc, err := sink.Write(context.Background(), "low-stock.csv", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/inventory/low-stock.csv", loc)
	assert.Equal(t, "inventory/low-stock.csv", aws.ToString(gotIn.Key))
	assert.Equal(t, "text/csv", aws.ToString(gotIn.ContentType))
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	_, err = sink.Write(context.Background(), "app-settings.json", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "application/json", aws.ToString(gotIn.ContentType))
}

func TestS3Sink_ConfigError(t *testing.T) {
	restoreSeams(t)
	boom := errors.New("no config")
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}

	_, err := NewS3Sink(S3Config{Bucket: "b"}).Write(context.Background(), "f.csv", nil)
	assert.ErrorIs(t, err, boom)
}

func TestS3Sink_UploadError(t *testing.T) {
	restoreSeams(t)
	boom := errors.New("denied")
	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, boom
	}

	sink := NewS3Sink(S3Config{Bucket: "b", Region: "us-east-1", AccessKey: "a", SecretKey: "s"})
	_, err := sink.Write(context.Background(), "f.csv", nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "upload f.csv")
}

func TestS3Sink_AgainstFakeEndpoint(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method, path = r.Method, r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewS3Sink(S3Config{
		Bucket:       "reports",
		Region:       "us-east-1",
		BaseEndpoint: srv.URL,
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	_, err := sink.Write(context.Background(), "low-stock.json", []byte(`[{"id":"1"}]`))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/reports/low-stock.json", path)
	assert.True(t, bytes.Contains(body, []byte(`[{"id":"1"}]`)))
}
