package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/zstd"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

const (
	DefaultS3Prefix = "aocinput/"
	zstdEncoding    = "zstd"
)

// S3Client is what the cache needs from *s3.Client: GetObject for reads
// and the calls the transfer manager makes for uploads.
type S3Client interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures NewS3Client. Empty credentials fall back to the
// default AWS chain; a non-empty Endpoint selects path-style addressing
// for S3-compatible stores.
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// S3Cache stores each input as a zstd-compressed object.
// Like FileCache it overwrites unconditionally.
type S3Cache struct {
	bucket   string
	prefix   string
	client   S3Client
	uploader *manager.Uploader
}

var _ Cache = (*S3Cache)(nil)

func NewS3Cache(client S3Client, bucket, prefix string) *S3Cache {
	if prefix == "" {
		prefix = DefaultS3Prefix
	}
	return &S3Cache{
		bucket:   bucket,
		prefix:   prefix,
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// ObjectKey is the object name used for key.
func (c *S3Cache) ObjectKey(key puzzle.Key) string {
	return fmt.Sprintf("%s%d/day%d.txt.zst", c.prefix, key.Year, key.Day)
}

func (c *S3Cache) Read(ctx context.Context, key puzzle.Key) (string, bool) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.ObjectKey(key)),
	})
	if err != nil {
		return "", false
	}
	defer out.Body.Close()

	compressed, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return "", false
	}
	defer decoder.Close()

	plain, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return "", false
	}
	return string(plain), true
}

func (c *S3Cache) Write(ctx context.Context, key puzzle.Key, input string) failure.ClassifiedError {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodeFailure,
			Key:       key,
		}
	}
	compressed := encoder.EncodeAll([]byte(input), nil)
	_ = encoder.Close()

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(c.bucket),
		Key:             aws.String(c.ObjectKey(key)),
		Body:            bytes.NewReader(compressed),
		ContentType:     aws.String("text/plain; charset=utf-8"),
		ContentEncoding: aws.String(zstdEncoding),
	})
	if err != nil {
		return &CacheError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	return nil
}
