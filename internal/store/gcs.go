package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/avolkov/pennywise/internal/domain"
)

// GCSStore keeps each collection as a JSON object in a GCS bucket, named
// the same way FileStore names its files. Object writes in GCS are already
// atomic, readers never observe a partially written document.
// It assumes Application Default Credentials are configured.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a store backed by the given bucket.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// SaveTransactions implements Store.
func (s *GCSStore) SaveTransactions(ctx context.Context, userID string, txs []*domain.Transaction) error {
	data, err := encodeTransactions(txs)
	if err != nil {
		return err
	}
	return s.write(ctx, kindTransactions, userID, data)
}

// LoadTransactions implements Store.
func (s *GCSStore) LoadTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	data, err := s.read(ctx, kindTransactions, userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*domain.Transaction{}, nil
	}
	return decodeTransactions(data)
}

// SaveSettings implements Store.
func (s *GCSStore) SaveSettings(ctx context.Context, userID string, settings domain.Settings) error {
	data, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	return s.write(ctx, kindSettings, userID, data)
}

// LoadSettings implements Store.
func (s *GCSStore) LoadSettings(ctx context.Context, userID string) (domain.Settings, error) {
	data, err := s.read(ctx, kindSettings, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	if data == nil {
		return domain.DefaultSettings(), nil
	}
	return decodeSettings(data)
}

// SaveChatHistory implements Store.
func (s *GCSStore) SaveChatHistory(ctx context.Context, userID string, msgs []domain.Message) error {
	data, err := encodeChatHistory(msgs)
	if err != nil {
		return err
	}
	return s.write(ctx, kindChatHistory, userID, data)
}

// LoadChatHistory implements Store.
func (s *GCSStore) LoadChatHistory(ctx context.Context, userID string) ([]domain.Message, error) {
	data, err := s.read(ctx, kindChatHistory, userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []domain.Message{}, nil
	}
	return decodeChatHistory(data)
}

// read returns (nil, nil) when the object does not exist.
func (s *GCSStore) read(ctx context.Context, kind, userID string) ([]byte, error) {
	name := documentName(kind, userID)
	rc, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", s.bucket, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read gs://%s/%s: %w", s.bucket, name, err)
	}
	return data, nil
}

func (s *GCSStore) write(ctx context.Context, kind, userID string, data []byte) error {
	name := documentName(kind, userID)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", s.bucket, name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize gs://%s/%s: %w", s.bucket, name, err)
	}
	return nil
}

// Ensure GCSStore implements Store.
var _ Store = (*GCSStore)(nil)
