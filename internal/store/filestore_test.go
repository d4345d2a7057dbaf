package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/pennywise/internal/domain"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	return fs, dir
}

func TestFileStore_TransactionsRoundTrip(t *testing.T) {
	fs, dir := newTestStore(t)
	ctx := context.Background()

	rid := "rec-1"
	first := domain.NewTransaction("Rent", decimal.NewFromInt(-900), "2024-01-01", "bills", "tx-1")
	first.Notes = "january"
	first.RecurringID = &rid
	second := domain.NewTransaction("Salary", decimal.NewFromInt(3000), "2024-01-02", "income", "tx-2")

	require.NoError(t, fs.SaveTransactions(ctx, "u1", []*domain.Transaction{first, second}))

	got, err := fs.LoadTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Order preserved, every base field intact.
	assert.Equal(t, "tx-1", got[0].ID)
	assert.Equal(t, "Rent", got[0].Name)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(-900)))
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, "bills", got[0].Category)
	assert.Equal(t, "january", got[0].Notes)
	require.NotNil(t, got[0].RecurringID)
	assert.Equal(t, "rec-1", *got[0].RecurringID)
	assert.Equal(t, "tx-2", got[1].ID)

	// One file per user per collection, by naming convention.
	_, err = os.Stat(filepath.Join(dir, "transactions_u1.json"))
	assert.NoError(t, err)
}

func TestFileStore_VariantDocumentsReloadAsBase(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	food := domain.NewFoodTransaction("Lunch", decimal.NewFromFloat(-12.5), "2024-02-01", "food", "Luigi's", "lunch", "tx-f")
	require.NoError(t, fs.SaveTransactions(ctx, "u1", []*domain.Transaction{food}))

	got, err := fs.LoadTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindGeneric, got[0].Kind)
	assert.Empty(t, got[0].RestaurantName)
	assert.Equal(t, "Luigi's", got[0].Attributes["restaurant_name"])
}

func TestFileStore_MissingFilesYieldDefaults(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	txs, err := fs.LoadTransactions(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, txs)

	settings, err := fs.LoadSettings(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	msgs, err := fs.LoadChatHistory(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestFileStore_MalformedDocumentIsAnError(t *testing.T) {
	fs, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions_u1.json"), []byte("{not json"), 0o644))
	_, err := fs.LoadTransactions(ctx, "u1")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings_u1.json"), []byte("[]"), 0o644))
	_, err = fs.LoadSettings(ctx, "u1")
	assert.Error(t, err)
}

func TestFileStore_SettingsRoundTrip(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	s := domain.DefaultSettings()
	s.Theme = "light"
	s.BudgetValues.Dollar["food"] = 250

	require.NoError(t, fs.SaveSettings(ctx, "u1", s))
	got, err := fs.LoadSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 250.0, got.BudgetValues.Dollar["food"])
}

func TestFileStore_ChatHistoryRoundTrip(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	msgs := []domain.Message{
		{Sender: "user", Text: "hello", Timestamp: "2024-03-05T10:00:00Z"},
		{Sender: "assistant", Text: "hi", Timestamp: "2024-03-05T10:00:01Z"},
	}
	require.NoError(t, fs.SaveChatHistory(ctx, "u1", msgs))

	got, err := fs.LoadChatHistory(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	fs, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, fs.SaveTransactions(ctx, "u1", nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "transactions_u1.json", entries[0].Name())
}
