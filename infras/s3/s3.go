package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"slotlink/config"
	"slotlink/infras/otel"
	"slotlink/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// S3 stores archived documents in an S3 compatible bucket.
type S3 interface {
	Enabled() bool
	PutJSON(ctx context.Context, directory, name string, value any) (url string, err error)
	PutBytes(ctx context.Context, directory, name, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, objectKey string) error
	ObjectKeyFromURL(url string) string
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) Enabled() bool {
	return svc.client != nil && svc.config.External.S3.BucketName != ""
}

func (svc *s3Impl) PutJSON(ctx context.Context, directory, name string, value any) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutJSON")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := json.Marshal(value)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal object: %w", err)
	}

	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	return svc.PutBytes(ctx, directory, name, constant.ContentTypeJSON, data)
}

func (svc *s3Impl) PutBytes(ctx context.Context, directory, name, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !svc.Enabled() {
		return constant.Empty, ErrNotConfigured
	}

	bucket := svc.config.External.S3.BucketName
	objectKey := path.Join(directory, name)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	reader := bytes.NewReader(data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload object to S3")

		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return svc.publicURL(objectKey), nil
}

func (svc *s3Impl) Delete(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !svc.Enabled() {
		return ErrNotConfigured
	}

	bucket := svc.config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL strips the public domain or the bucket endpoint from url.
func (svc *s3Impl) ObjectKeyFromURL(url string) string {
	cfg := svc.config.External.S3

	prefixes := []string{
		strings.TrimSuffix(cfg.PublicDomain, "/") + "/",
		fmt.Sprintf("%s/%s/", strings.TrimSuffix(cfg.APIEndpoint, "/"), cfg.BucketName),
	}

	for _, prefix := range prefixes {
		if prefix != "/" && strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(objectKey string) string {
	cfg := svc.config.External.S3
	if cfg.PublicDomain != "" {
		return strings.TrimSuffix(cfg.PublicDomain, "/") + "/" + objectKey
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(cfg.APIEndpoint, "/"), cfg.BucketName, objectKey)
}

func New(config *config.Config, otel otel.Otel) S3 {
	svc := &s3Impl{config: config, otel: otel}

	cfg := config.External.S3
	if cfg.APIEndpoint == "" || cfg.BucketName == "" {
		log.Warn().Msg("S3 is not configured, archives are disabled")

		return svc
	}

	staticProvider := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(cfg.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")

		return svc
	}

	svc.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.APIEndpoint)
		o.UsePathStyle = true
	})

	return svc
}
