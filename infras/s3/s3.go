package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"resto/config"
	"resto/infras/otel"
	"resto/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	otelAttrSize      = "size"
)

type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, objectKey string) error
	GetObjectKeyFromURL(bucketName, url string) (objectKey string)
}

// ObjectAPI is the part of the S3 client the media store needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Impl struct {
	client       ObjectAPI
	otel         otel.Otel
	bucket       string
	publicDomain string
	apiEndpoint  string
	cacheControl string
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	s3Cfg := cfg.External.S3

	var opts []func(*awsConfig.LoadOptions) error
	if s3Cfg.AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
			o.UsePathStyle = true
		}

		o.Region = s3Cfg.Region
	})

	return NewWithClient(cfg, otl, client)
}

func NewWithClient(cfg *config.Config, otl otel.Otel, client ObjectAPI) S3 {
	s3Cfg := cfg.External.S3

	cacheControl := ""
	if s3Cfg.CacheMaxAgeSec > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d, immutable", s3Cfg.CacheMaxAgeSec)
	}

	return &s3Impl{
		client:       client,
		otel:         otl,
		bucket:       s3Cfg.BucketName,
		publicDomain: strings.TrimSuffix(s3Cfg.PublicDomain, "/"),
		apiEndpoint:  strings.TrimSuffix(s3Cfg.APIEndpoint, "/"),
		cacheControl: cacheControl,
	}
}

func (svc *s3Impl) bucketOr(name string) string {
	if name == "" {
		return svc.bucket
	}

	return name
}

// UploadFileBytes stores fileData under directory/fileName and returns its public URL.
// Object names are unique per upload, so objects are served as immutable.
func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.bucketOr(bucketName)
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
		otelAttrSize:      len(fileData),
	})

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(fileData),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileData))),
	}
	if svc.cacheControl != "" {
		input.CacheControl = aws.String(svc.cacheControl)
	}

	if _, err = svc.client.PutObject(ctx, input); err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicDomain + "/" + objectKey, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.bucketOr(bucketName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// GetObjectKeyFromURL maps a URL returned by an upload back to its object key. Both the
// public domain form and the path-style API endpoint form are recognised; anything else
// yields an empty key.
func (svc *s3Impl) GetObjectKeyFromURL(bucketName, url string) (objectKey string) {
	prefixes := []string{svc.publicDomain, svc.apiEndpoint + "/" + svc.bucketOr(bucketName)}

	for _, prefix := range prefixes {
		if prefix == "" || prefix == "/"+svc.bucketOr(bucketName) {
			continue
		}

		if key, ok := strings.CutPrefix(url, prefix+"/"); ok && key != "" {
			return key
		}
	}

	return constant.Empty
}
