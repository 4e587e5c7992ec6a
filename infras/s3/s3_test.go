package s3_test

import (
	"context"
	"slotlink/config"
	"slotlink/infras/otel/mocks"
	"slotlink/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3_Disabled(t *testing.T) {
	svc := s3.New(&config.Config{}, mocks.NewOtel())

	assert.False(t, svc.Enabled())

	_, err := svc.PutJSON(context.Background(), "enrichment", "b-1", map[string]string{"k": "v"})
	assert.ErrorIs(t, err, s3.ErrNotConfigured)

	assert.ErrorIs(t, svc.Delete(context.Background(), "enrichment/b-1.json"), s3.ErrNotConfigured)
}

func TestS3_ObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.BucketName = "archive"

	svc := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "public domain", url: "https://cdn.example.com/enrichment/b-1.json", expected: "enrichment/b-1.json"},
		{name: "api endpoint", url: "https://s3.example.com/archive/enrichment/b-2.json", expected: "enrichment/b-2.json"},
		{name: "foreign url", url: "https://other.example.com/x.json", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.ObjectKeyFromURL(tt.url))
		})
	}
}
