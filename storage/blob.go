package storage

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore keeps uploaded image files and hands out their public URLs.
type BlobStore interface {
	// Upload stores data under a fresh unique key and returns its public URL.
	Upload(ctx context.Context, data []byte, originalName string) (string, error)
	// Delete removes the object addressed by the trailing path segment of url.
	Delete(ctx context.Context, url string) error
}

// NewObjectKey builds a collision-resistant key that keeps the original file
// name readable: "<uuid>_<name>". Characters outside [A-Za-z0-9._-] become
// "_" so the key survives unescaped in a URL path.
func NewObjectKey(originalName string) string {
	name := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return uuid.New().String() + "_" + strings.Map(keyRune, name)
}

func keyRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.', r == '_', r == '-':
		return r
	}
	return '_'
}

// KeyFromURL returns the storage key of a public URL: its last path segment.
func KeyFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	}
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	return raw
}
