package storage_test

import (
	"context"
	"testing"

	"oss-mcp/core/storage"
	"oss-mcp/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() storage.Config {
	return storage.Config{
		Region:          "oss-cn-hangzhou",
		AccessKeyID:     "testkey",
		AccessKeySecret: "testsecret",
		Bucket:          "test-bucket",
		Endpoint:        "oss-cn-hangzhou.aliyuncs.com",
	}
}

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		client, err := storage.NewClient(testConfig(), 0)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := testConfig()
		cfg.Endpoint = "http://localhost:9000"

		client, err := storage.NewClient(cfg, 0)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := testConfig()
		cfg.Endpoint = "https://oss-cn-hangzhou.aliyuncs.com"

		client, err := storage.NewClient(cfg, 0)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithPath", func(t *testing.T) {
		cfg := testConfig()
		cfg.Endpoint = "https://oss-cn-hangzhou.aliyuncs.com/some/path"

		client, err := storage.NewClient(cfg, 0)
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := testConfig()
		cfg.Bucket = ""

		_, err := storage.NewClient(cfg, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}

func TestBucket_Put(t *testing.T) {
	mockClient := new(mocks.Client)
	b := storage.NewBucket("Default", testConfig(), mockClient)

	mockClient.On("FPutObject", mock.Anything, "test-bucket", "docs/a.txt", "/tmp/a.txt", mock.Anything).
		Return(minio.UploadInfo{Size: 12}, nil)

	res, err := b.Put(context.Background(), "docs/a.txt", "/tmp/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://test-bucket.oss-cn-hangzhou.aliyuncs.com/docs/a.txt", res.URL)
	assert.Equal(t, int64(12), res.Size)
	assert.Equal(t, "default", b.Name())
	mockClient.AssertExpectations(t)
}

func TestBucket_PutError(t *testing.T) {
	mockClient := new(mocks.Client)
	b := storage.NewBucket("default", testConfig(), mockClient)

	mockClient.On("FPutObject", mock.Anything, "test-bucket", "a.txt", "/tmp/a.txt", mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	res, err := b.Put(context.Background(), "a.txt", "/tmp/a.txt")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, res)
}

func TestBucket_ObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		key      string
		want     string
	}{
		{"NoScheme", "oss-cn-hangzhou.aliyuncs.com", "a.txt", "https://test-bucket.oss-cn-hangzhou.aliyuncs.com/a.txt"},
		{"HTTP", "http://oss-cn-hangzhou.aliyuncs.com", "a.txt", "http://test-bucket.oss-cn-hangzhou.aliyuncs.com/a.txt"},
		{"TrailingSlash", "https://oss-cn-hangzhou.aliyuncs.com/", "dir/b.png", "https://test-bucket.oss-cn-hangzhou.aliyuncs.com/dir/b.png"},
		{"Escaped", "oss-cn-hangzhou.aliyuncs.com", "my file.txt", "https://test-bucket.oss-cn-hangzhou.aliyuncs.com/my%20file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Endpoint = tt.endpoint
			b := storage.NewBucket("default", cfg, new(mocks.Client))
			assert.Equal(t, tt.want, b.ObjectURL(tt.key))
		})
	}
}

func TestBucket_Exists(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)

	b := storage.NewBucket("default", testConfig(), mockClient)
	ok, err := b.Exists(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
}
