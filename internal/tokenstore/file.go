package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidosorynbay/simple-social/pkg/config"
	"github.com/aidosorynbay/simple-social/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// FileStore keeps the token in a single file, the process-local analog of
// one browser storage key.
type FileStore struct {
	path   string
	logger logger.Logger
}

func NewFileStore(opts Opts) *FileStore {
	return &FileStore{
		path:   opts.Config.Session.TokenPath,
		logger: opts.Logger.WithComponent("TokenStore"),
	}
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Set(_ context.Context, token string) error {
	if token == "" {
		err := os.Remove(s.path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(s.path, []byte(token), 0o600)
}
