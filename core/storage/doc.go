// Package storage provides the object storage layer for OSS uploads.
//
// It wraps the MinIO Go client, which speaks the S3 protocol that Aliyun OSS
// also serves, behind a small Client interface so tests can substitute
// core/storage/mocks.
//
// # Configurations
//
// A Config carries the five connection fields (region, access key id, access
// key secret, bucket, endpoint). ParseConfig accepts a JSON object and rejects
// it unless every field is a non-empty string. Configs holds configurations
// keyed by lowercased name in insertion order.
//
// # Registry
//
// Registry hands out one Bucket handle per configuration name. Handles are
// built on first use and cached for the lifetime of the process; a failed
// construction is logged and reported as "not found".
//
// # Usage
//
//	reg := storage.NewRegistry(configs, storage.NewClientFactory(30*time.Second), logger)
//	bucket, ok := reg.Get("default")
//	res, err := bucket.Put(ctx, "docs/report.pdf", "/tmp/report.pdf")
package storage
