// Package upload implements file uploads to OSS buckets.
//
// The Service validates a Request, checks the local file before any network
// call, resolves the named configuration through the storage registry, builds
// the object key and stores the file. It never returns an error: every
// outcome is a Result carrying either the object URL or a message, plus the
// configuration name that was attempted.
//
// # Object Keys
//
// The key is the target directory with leading and trailing slashes removed,
// joined to the object name with a single slash. Without a directory the key is
// the object name alone.
//
// # Tool
//
//   - upload_to_oss(filePath, targetDir?, fileName?, configName?)
package upload
