package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"oss-mcp/core/storage"

	"go.uber.org/zap"
)

// Buckets resolves configuration names to client handles.
type Buckets interface {
	Get(name string) (*storage.Bucket, bool)
}

// Request describes a single upload.
type Request struct {
	// FilePath is the local file to upload. Required.
	FilePath string `json:"filePath"`
	// TargetDir is the directory inside the bucket. Optional.
	TargetDir string `json:"targetDir,omitempty"`
	// FileName overrides the object name. Defaults to the base name of FilePath.
	FileName string `json:"fileName,omitempty"`
	// ConfigName selects the configuration. Defaults to "default".
	ConfigName string `json:"configName,omitempty"`
}

// Result is the outcome of an upload. Exactly one of URL and Error is set.
type Result struct {
	Success    bool   `json:"success"`
	URL        string `json:"url,omitempty"`
	Error      string `json:"error,omitempty"`
	ConfigName string `json:"ossConfigName"`
}

// Service uploads local files to the configured buckets.
type Service struct {
	buckets Buckets
	logger  *zap.Logger
}

// NewService creates a new upload service.
func NewService(buckets Buckets, logger *zap.Logger) *Service {
	return &Service{
		buckets: buckets,
		logger:  logger,
	}
}

// ObjectName returns the name the file will be stored under.
func (r Request) ObjectName() string {
	if r.FileName != "" {
		return r.FileName
	}
	return filepath.Base(r.FilePath)
}

// Upload stores req.FilePath in the bucket selected by req.ConfigName.
// Every failure is reported in the returned Result.
func (s *Service) Upload(ctx context.Context, req Request) Result {
	configName := req.ConfigName
	if configName == "" {
		configName = storage.DefaultConfigName
	}
	fail := func(format string, args ...any) Result {
		return Result{Success: false, Error: fmt.Sprintf(format, args...), ConfigName: configName}
	}

	if strings.TrimSpace(req.FilePath) == "" {
		return fail("filePath is required")
	}

	info, err := os.Stat(req.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fail("File not found: %s", req.FilePath)
		}
		return fail("Cannot access file %s: %v", req.FilePath, err)
	}
	if info.IsDir() {
		return fail("Not a regular file: %s", req.FilePath)
	}

	bucket, ok := s.buckets.Get(configName)
	if !ok {
		return fail("OSS config not found for: %s", configName)
	}

	key := JoinKey(req.TargetDir, req.ObjectName())
	s.logger.Info("Uploading file",
		zap.String("file", req.FilePath),
		zap.String("key", key),
		zap.String("config", configName),
	)

	res, err := bucket.Put(ctx, key, req.FilePath)
	if err != nil {
		s.logger.Error("Upload failed", zap.String("key", key), zap.Error(err))
		return fail("Upload failed: %s", err.Error())
	}

	s.logger.Info("Upload completed", zap.String("url", res.URL), zap.Int64("size", res.Size))
	return Result{Success: true, URL: res.URL, ConfigName: configName}
}
