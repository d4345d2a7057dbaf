// Package store persists per-user collections as one JSON document per user
// per collection kind. Implementations cover local flat files and GCS
// objects; both use the same `<kind>_<userID>.json` naming convention and
// the same indented-JSON encoding.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avolkov/pennywise/internal/domain"
)

// Collection kinds, used to build file and object names.
const (
	kindTransactions = "transactions"
	kindSettings     = "settings"
	kindChatHistory  = "chat_history"
)

// Store reads and writes a user's collections. Load methods return the
// kind-specific default when nothing was ever saved for the user; a document
// that exists but cannot be parsed is an error, not a silent reset.
type Store interface {
	SaveTransactions(ctx context.Context, userID string, txs []*domain.Transaction) error
	LoadTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error)

	SaveSettings(ctx context.Context, userID string, settings domain.Settings) error
	LoadSettings(ctx context.Context, userID string) (domain.Settings, error)

	SaveChatHistory(ctx context.Context, userID string, msgs []domain.Message) error
	LoadChatHistory(ctx context.Context, userID string) ([]domain.Message, error)
}

func documentName(kind, userID string) string {
	return fmt.Sprintf("%s_%s.json", kind, userID)
}

func encodeTransactions(txs []*domain.Transaction) ([]byte, error) {
	docs := make([]map[string]any, 0, len(txs))
	for _, t := range txs {
		docs = append(docs, t.Document())
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode transactions: %w", err)
	}
	return data, nil
}

func decodeTransactions(data []byte) ([]*domain.Transaction, error) {
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	txs := make([]*domain.Transaction, 0, len(docs))
	for _, doc := range docs {
		t, err := domain.TransactionFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("decode transactions: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func encodeSettings(s domain.Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}

func decodeSettings(data []byte) (domain.Settings, error) {
	s := domain.DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

func encodeChatHistory(msgs []domain.Message) ([]byte, error) {
	if msgs == nil {
		msgs = []domain.Message{}
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode chat history: %w", err)
	}
	return data, nil
}

func decodeChatHistory(data []byte) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("decode chat history: %w", err)
	}
	return msgs, nil
}
