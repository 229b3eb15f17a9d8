package session

import (
	"context"
	"errors"
	"io/fs"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/crypto"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/security"
)

// FileStore keeps the session in a single owner-readable file.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore creates a store writing to path. sealer may be nil.
func NewFileStore(path string, sealer crypto.Sealer) *FileStore {
	return &FileStore{path: path, codec: codec{sealer: sealer}}
}

// Save writes user, replacing any previous session.
func (s *FileStore) Save(_ context.Context, user domain.User) error {
	data, err := s.codec.encode(user)
	if err != nil {
		return err
	}
	return security.SafeWriteFile(s.path, data)
}

// Load returns the stored user, or false when the file does not exist.
func (s *FileStore) Load(_ context.Context) (domain.User, bool, error) {
	data, err := security.SafeReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}

	user, err := s.codec.decode(data)
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// Clear deletes the session file.
func (s *FileStore) Clear(_ context.Context) error {
	return security.SafeRemove(s.path)
}
