package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type LocalConfig struct {
	Dir        string // directory the files are written to
	BaseURL    string // e.g. http://localhost:8080
	PublicPath string // route the directory is served under, e.g. /uploads
}

// LocalStore keeps blobs on the local disk; the router serves Dir under
// PublicPath.
type LocalStore struct {
	dir        string
	baseURL    string
	publicPath string
}

func NewLocalStore(cfg LocalConfig) (*LocalStore, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("local storage dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir uploads dir: %w", err)
	}
	publicPath := "/" + strings.Trim(cfg.PublicPath, "/")
	if publicPath == "/" {
		publicPath = "/uploads"
	}
	return &LocalStore{
		dir:        cfg.Dir,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		publicPath: publicPath,
	}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) PublicPath() string {
	return s.publicPath
}

func (s *LocalStore) Upload(ctx context.Context, data []byte, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := NewObjectKey(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	log.Printf("✅ stored %s (%d bytes)", key, len(data))
	return s.baseURL + s.publicPath + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := filepath.Base(KeyFromURL(url))
	if key == "." || key == ".." || key == "/" || key == "" {
		return fmt.Errorf("invalid blob url %q", url)
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
