package config

import (
	"fmt"
	"io"
)

// secretMask replaces the hidden part of a secret.
const secretMask = "****"

// MaskSecret shows the first and last four characters of s. Secrets of four
// characters or fewer are fully masked.
func MaskSecret(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return secretMask
	}
	return string(r[:4]) + secretMask + string(r[len(r)-4:])
}

// PrintSummary writes the resolved port and every OSS configuration with masked credentials.
func PrintSummary(w io.Writer, cfg *ServerConfig) {
	fmt.Fprintln(w, "\nConfiguration:")
	fmt.Fprintf(w, "- Port: %d (source: %s)\n", cfg.Port, cfg.Origins.Port)

	if cfg.Storage.Len() == 0 {
		fmt.Fprintln(w, "- OSS configs: none found")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "- OSS configs (source: %s):\n", cfg.Origins.Storage)
	for _, name := range cfg.Storage.Names() {
		c, _ := cfg.Storage.Get(name)
		fmt.Fprintf(w, "  - %s:\n", name)
		fmt.Fprintf(w, "    Region: %s\n", c.Region)
		fmt.Fprintf(w, "    Endpoint: %s\n", c.Endpoint)
		fmt.Fprintf(w, "    Bucket: %s\n", c.Bucket)
		fmt.Fprintf(w, "    AccessKeyId: %s\n", MaskSecret(c.AccessKeyID))
		fmt.Fprintf(w, "    AccessKeySecret: %s\n", MaskSecret(c.AccessKeySecret))
	}
	fmt.Fprintln(w)
}
