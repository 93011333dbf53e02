package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalURLPrefix is the public path the upload directory is served under.
const LocalURLPrefix = "/uploads"

// LocalSink writes objects into a directory that the router serves statically.
type LocalSink struct {
	dir       string
	urlPrefix string
}

func NewLocalSink(dir, urlPrefix string) *LocalSink {
	return &LocalSink{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

func (s *LocalSink) Backend() string { return "local" }

// Dir is the directory objects are written to.
func (s *LocalSink) Dir() string { return s.dir }

// Put writes r to <dir>/<name>, creating dir if needed, and returns <prefix>/<name>.
func (s *LocalSink) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dstPath := filepath.Join(s.dir, name)
	out, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dstPath, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write %s: %w", dstPath, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("close %s: %w", dstPath, err)
	}
	return s.urlPrefix + "/" + name, nil
}

func (s *LocalSink) Remove(ctx context.Context, name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid object name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
