// Package configs exposes the resolved OSS configurations to protocol clients.
//
// # Tool
//
//   - list_oss_configs() : bullet list of configuration names, or a notice when none exist.
package configs
