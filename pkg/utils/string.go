package utils

import (
	"math/rand"
	"regexp"
	"strconv"
	"time"
)

const slugCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomString uses the top-level rand functions, which are safe for
// the concurrent create requests Fiber serves.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = slugCharset[rand.Intn(len(slugCharset))]
	}
	return string(b)
}

// GenerateSlug builds the public identifier for a page: the current time in
// base 36 plus a random suffix. Uniqueness is still enforced by the slug
// column's unique index; callers retry on a duplicate-key insert.
func GenerateSlug() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + GenerateRandomString(6)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// MakeUploadKey prefixes the sanitized original name with a millisecond
// timestamp so concurrent uploads of the same file never share a path.
func MakeUploadKey(originalName string) string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + SanitizeFilename(originalName)
}
