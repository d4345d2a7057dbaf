package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avolkov/pennywise/internal/domain"
)

// FileStore keeps each collection as an indented JSON file under a single
// data directory. Saves go through a temp file and rename so a crash
// mid-write never leaves a truncated document behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveTransactions implements Store.
func (s *FileStore) SaveTransactions(ctx context.Context, userID string, txs []*domain.Transaction) error {
	data, err := encodeTransactions(txs)
	if err != nil {
		return err
	}
	return s.write(kindTransactions, userID, data)
}

// LoadTransactions implements Store. A missing file yields an empty list.
func (s *FileStore) LoadTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	data, err := s.read(kindTransactions, userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*domain.Transaction{}, nil
	}
	return decodeTransactions(data)
}

// SaveSettings implements Store.
func (s *FileStore) SaveSettings(ctx context.Context, userID string, settings domain.Settings) error {
	data, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	return s.write(kindSettings, userID, data)
}

// LoadSettings implements Store. A missing file yields the defaults.
func (s *FileStore) LoadSettings(ctx context.Context, userID string) (domain.Settings, error) {
	data, err := s.read(kindSettings, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	if data == nil {
		return domain.DefaultSettings(), nil
	}
	return decodeSettings(data)
}

// SaveChatHistory implements Store.
func (s *FileStore) SaveChatHistory(ctx context.Context, userID string, msgs []domain.Message) error {
	data, err := encodeChatHistory(msgs)
	if err != nil {
		return err
	}
	return s.write(kindChatHistory, userID, data)
}

// LoadChatHistory implements Store. A missing file yields an empty list.
func (s *FileStore) LoadChatHistory(ctx context.Context, userID string) ([]domain.Message, error) {
	data, err := s.read(kindChatHistory, userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []domain.Message{}, nil
	}
	return decodeChatHistory(data)
}

// read returns (nil, nil) when the file does not exist.
func (s *FileStore) read(kind, userID string) ([]byte, error) {
	path := filepath.Join(s.dir, documentName(kind, userID))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

// write replaces the whole document atomically via temp file + rename.
func (s *FileStore) write(kind, userID string, data []byte) error {
	path := filepath.Join(s.dir, documentName(kind, userID))

	tmp, err := os.CreateTemp(s.dir, documentName(kind, userID)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file for %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file for %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %q: %w", path, err)
	}
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
