package upload

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"oss-mcp/core/storage"
	"oss-mcp/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(bucket string) storage.Config {
	return storage.Config{
		Region:          "oss-cn-hangzhou",
		AccessKeyID:     "testkey",
		AccessKeySecret: "testsecret",
		Bucket:          bucket,
		Endpoint:        "oss-cn-hangzhou.aliyuncs.com",
	}
}

// setupRegistry returns a registry whose clients all share mockClient.
func setupRegistry(t *testing.T, mockClient *mocks.Client) (*storage.Registry, *atomic.Int32) {
	t.Helper()
	configs := storage.NewConfigs()
	configs.Set("default", testConfig("test-bucket"))
	configs.Set("backup", testConfig("backup-bucket"))

	calls := new(atomic.Int32)
	reg := storage.NewRegistry(configs, func(cfg storage.Config) (storage.Client, error) {
		calls.Add(1)
		return mockClient, nil
	}, zap.NewNop())
	return reg, calls
}

func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	return path
}

func TestService_Upload(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		mockClient := new(mocks.Client)
		reg, _ := setupRegistry(t, mockClient)
		svc := NewService(reg, zap.NewNop())
		path := writeTempFile(t, "report.pdf")

		mockClient.On("FPutObject", mock.Anything, "test-bucket", "report.pdf", path, mock.Anything).
			Return(minio.UploadInfo{Size: 5}, nil)

		res := svc.Upload(context.Background(), Request{FilePath: path})
		assert.True(t, res.Success)
		assert.Equal(t, "https://test-bucket.oss-cn-hangzhou.aliyuncs.com/report.pdf", res.URL)
		assert.Empty(t, res.Error)
		assert.Equal(t, "default", res.ConfigName)
		mockClient.AssertExpectations(t)
	})

	t.Run("TargetDirAndFileName", func(t *testing.T) {
		mockClient := new(mocks.Client)
		reg, _ := setupRegistry(t, mockClient)
		svc := NewService(reg, zap.NewNop())
		path := writeTempFile(t, "local.txt")

		mockClient.On("FPutObject", mock.Anything, "backup-bucket", "docs/2024/renamed.txt", path, mock.Anything).
			Return(minio.UploadInfo{Size: 5}, nil)

		res := svc.Upload(context.Background(), Request{
			FilePath:   path,
			TargetDir:  "/docs/2024/",
			FileName:   "renamed.txt",
			ConfigName: "Backup",
		})
		assert.True(t, res.Success)
		assert.Equal(t, "https://backup-bucket.oss-cn-hangzhou.aliyuncs.com/docs/2024/renamed.txt", res.URL)
		assert.Equal(t, "Backup", res.ConfigName)
		mockClient.AssertExpectations(t)
	})

	t.Run("FileNotFound", func(t *testing.T) {
		mockClient := new(mocks.Client)
		reg, calls := setupRegistry(t, mockClient)
		svc := NewService(reg, zap.NewNop())
		path := filepath.Join(t.TempDir(), "missing.txt")

		res := svc.Upload(context.Background(), Request{FilePath: path})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "not found")
		assert.Contains(t, res.Error, path)
		assert.Empty(t, res.URL)
		assert.Equal(t, "default", res.ConfigName)

		assert.Equal(t, int32(0), calls.Load())
		mockClient.AssertNotCalled(t, "FPutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Directory", func(t *testing.T) {
		reg, calls := setupRegistry(t, new(mocks.Client))
		svc := NewService(reg, zap.NewNop())

		res := svc.Upload(context.Background(), Request{FilePath: t.TempDir()})
		assert.False(t, res.Success)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("EmptyFilePath", func(t *testing.T) {
		reg, _ := setupRegistry(t, new(mocks.Client))
		svc := NewService(reg, zap.NewNop())

		res := svc.Upload(context.Background(), Request{ConfigName: "backup"})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "filePath")
		assert.Equal(t, "backup", res.ConfigName)
	})

	t.Run("ConfigNotFound", func(t *testing.T) {
		mockClient := new(mocks.Client)
		reg, calls := setupRegistry(t, mockClient)
		svc := NewService(reg, zap.NewNop())
		path := writeTempFile(t, "a.txt")

		res := svc.Upload(context.Background(), Request{FilePath: path, ConfigName: "missing"})
		assert.False(t, res.Success)
		assert.Equal(t, "missing", res.ConfigName)
		assert.Contains(t, res.Error, "missing")
		assert.Empty(t, res.URL)

		assert.Equal(t, int32(0), calls.Load())

		// Building the default handle afterwards is the first construction.
		_, ok := reg.Get("default")
		require.True(t, ok)
		assert.Equal(t, int32(1), calls.Load())
		mockClient.AssertNotCalled(t, "FPutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PutError", func(t *testing.T) {
		mockClient := new(mocks.Client)
		reg, _ := setupRegistry(t, mockClient)
		svc := NewService(reg, zap.NewNop())
		path := writeTempFile(t, "a.txt")

		mockClient.On("FPutObject", mock.Anything, "test-bucket", "a.txt", path, mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		res := svc.Upload(context.Background(), Request{FilePath: path})
		assert.False(t, res.Success)
		assert.Equal(t, "Upload failed: "+assert.AnError.Error(), res.Error)
		assert.Empty(t, res.URL)
		assert.Equal(t, "default", res.ConfigName)
	})

	t.Run("ReusesClient", func(t *testing.T) {
		mockClient := new(mocks.Client)
		reg, calls := setupRegistry(t, mockClient)
		svc := NewService(reg, zap.NewNop())
		path := writeTempFile(t, "a.txt")

		mockClient.On("FPutObject", mock.Anything, "test-bucket", "a.txt", path, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc.Upload(context.Background(), Request{FilePath: path})
		svc.Upload(context.Background(), Request{FilePath: path, ConfigName: "DEFAULT"})
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestRequest_ObjectName(t *testing.T) {
	assert.Equal(t, "b.txt", Request{FilePath: "/tmp/a/b.txt"}.ObjectName())
	assert.Equal(t, "c.txt", Request{FilePath: "/tmp/a/b.txt", FileName: "c.txt"}.ObjectName())
}
