package storage

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultTimeout bounds connection setup and the wait for the first response byte.
const DefaultTimeout = 30 * time.Second

// Client defines the interface for storage operations.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// FPutObject uploads a local file as an object.
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ClientFactory builds a storage client for a configuration.
type ClientFactory func(cfg Config) (Client, error)

// endpointParts splits an endpoint into host and whether TLS should be used.
// Endpoints without a scheme default to TLS.
func endpointParts(endpoint string) (host string, secure bool) {
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	default:
		return endpoint, true
	}
}

// NewClientFactory returns a factory creating minio clients with the given timeout.
func NewClientFactory(timeout time.Duration) ClientFactory {
	return func(cfg Config) (Client, error) {
		return NewClient(cfg, timeout)
	}
}

// NewClient creates a new Minio client for an S3-compatible OSS endpoint.
func NewClient(cfg Config, timeout time.Duration) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	endpoint, secure := endpointParts(cfg.Endpoint)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	// OSS only serves virtual-hosted style requests.
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		Secure:       secure,
		Region:       cfg.Region,
		Transport:    transport,
		BucketLookup: minio.BucketLookupDNS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return minioClient, nil
}

// PutResult describes a stored object.
type PutResult struct {
	// URL is the public address of the object.
	URL string
	// Size is the number of bytes uploaded.
	Size int64
}

// Bucket is a client handle bound to one configuration.
type Bucket struct {
	name   string
	cfg    Config
	client Client
}

// NewBucket binds a client to a configuration.
func NewBucket(name string, cfg Config, client Client) *Bucket {
	return &Bucket{name: NormalizeName(name), cfg: cfg, client: client}
}

// Name returns the normalized configuration name.
func (b *Bucket) Name() string {
	return b.name
}

// Config returns the configuration the handle was built from.
func (b *Bucket) Config() Config {
	return b.cfg
}

// Put uploads the local file at localPath under key.
func (b *Bucket) Put(ctx context.Context, key, localPath string) (*PutResult, error) {
	info, err := b.client.FPutObject(ctx, b.cfg.Bucket, key, localPath, minio.PutObjectOptions{})
	if err != nil {
		return nil, err
	}
	return &PutResult{URL: b.ObjectURL(key), Size: info.Size}, nil
}

// Exists reports whether the configured bucket is reachable and exists.
func (b *Bucket) Exists(ctx context.Context) (bool, error) {
	return b.client.BucketExists(ctx, b.cfg.Bucket)
}

// ObjectURL returns the virtual-hosted URL of key.
func (b *Bucket) ObjectURL(key string) string {
	host, secure := endpointParts(b.cfg.Endpoint)
	host = strings.TrimSuffix(host, "/")
	scheme := "https"
	if !secure {
		scheme = "http"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   b.cfg.Bucket + "." + host,
		Path:   "/" + key,
	}
	return u.String()
}
