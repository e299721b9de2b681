package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

// Store keeps rendered artifacts as flat files under a base directory. Keys
// are random, never derived from invoice identity, so stored documents cannot
// be enumerated by guessing.
type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if basePath == "" {
		basePath = "./data/artifacts"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) Save(_ context.Context, data io.Reader) (string, error) {
	key := uuid.NewString() + ".pdf"
	path := filepath.Join(s.basePath, key)

	f, err := os.Create(path)
	if err != nil {
		return "", domain.WrapError(domain.ErrArtifactWrite, "create artifact file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		_ = os.Remove(path)
		return "", domain.WrapError(domain.ErrArtifactWrite, "write artifact file", err)
	}
	return key, nil
}

func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, error) {
	// Keys are flat names; strip any path component a caller may smuggle in.
	path := filepath.Join(s.basePath, filepath.Base(key))

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrArtifactNotFound, "open artifact", err)
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}
