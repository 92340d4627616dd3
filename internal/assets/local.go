package assets

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmlee-dev/reportdeck/internal/db"
)

// LocalStore writes uploads to a directory served under /assets/ and
// records each one in the assets table.
type LocalStore struct {
	dir     string // on-disk root, files land in <dir>/uploads/
	baseURL string // public prefix, e.g. http://localhost:8090
	db      *db.DB
	log     *zap.Logger
}

// NewLocalStore creates a local asset store rooted at dir.
func NewLocalStore(dir, baseURL string, database *db.DB, log *zap.Logger) *LocalStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/"), db: database, log: log}
}

// Dir returns the on-disk root of the store.
func (s *LocalStore) Dir() string { return s.dir }

// Upload writes the binary under uploads/ with a generated name and
// returns its public URL. Size must be the exact byte count; callers
// enforce the upload limit before reaching the store.
func (s *LocalStore) Upload(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	name := generateName(filename)
	rel := path.Join("uploads", name)
	dst := filepath.Join(s.dir, "uploads", name)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("writing asset file: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assets (id, path, size, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), rel, written, time.Now().UTC(),
	)
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("recording asset: %w", err)
	}

	url := s.baseURL + "/assets/" + rel
	s.log.Info("asset uploaded",
		zap.String("path", rel),
		zap.Int64("size", written),
	)
	return url, nil
}

// generateName produces a collision-resistant file name that keeps the
// original extension: <random base36>_<unix ms>.<ext>.
func generateName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strconv.FormatInt(rand.Int63(), 36) + "_" +
		strconv.FormatInt(time.Now().UnixMilli(), 10) + ext
}
