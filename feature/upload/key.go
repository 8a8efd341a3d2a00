package upload

import "strings"

// JoinKey builds the object key for name inside dir. Leading and trailing
// slashes of dir are stripped; an empty dir yields name alone.
func JoinKey(dir, name string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
