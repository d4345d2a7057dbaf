// Package ledger owns the in-memory source of truth for every user's
// transactions, settings, and chat history. Collections are loaded from the
// backing store on first touch and kept for the life of the process; every
// mutation writes the whole collection back through the store before
// returning. All access to one user's state is serialized by a per-user
// mutex, so concurrent requests for the same user cannot lose updates.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pennywise/internal/domain"
	"github.com/avolkov/pennywise/internal/store"
)

// ErrTransactionNotFound reports an update or delete against an id that is
// not in the user's collection.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionInput carries the caller-supplied fields for create and update.
// Zero values stand in for absent fields: an empty Type becomes "expense",
// an empty Status "confirmed", a nil Attributes an empty bag.
type TransactionInput struct {
	ID          string
	Name        string
	Amount      decimal.Decimal
	Date        string
	Category    string
	Type        string
	Notes       string
	Attributes  map[string]any
	Status      string
	RecurringID *string
	AutoConfirm bool
}

// userState is one user's resident collections. Each collection is loaded
// independently, on the first operation that touches it.
type userState struct {
	mu sync.Mutex

	transactions       []*domain.Transaction
	transactionsLoaded bool

	settings       domain.Settings
	settingsLoaded bool

	chat       []domain.Message
	chatLoaded bool
}

// Ledger is the per-user repository injected into the API handlers.
type Ledger struct {
	mu    sync.Mutex
	users map[string]*userState
	store store.Store
}

// New creates a ledger backed by the given store.
func New(st store.Store) *Ledger {
	return &Ledger{
		users: make(map[string]*userState),
		store: st,
	}
}

// state returns the user's state record, creating it if needed. The record
// itself starts unloaded; the caller locks it and loads what it touches.
func (l *Ledger) state(userID string) *userState {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, ok := l.users[userID]
	if !ok {
		st = &userState{}
		l.users[userID] = st
	}
	return st
}

// InitUser installs fresh collections for a newly registered user. The
// transaction list and chat history start empty; settings come from the
// store so a re-registered identifier keeps any previously saved settings.
// Nothing is persisted until the first mutation.
func (l *Ledger) InitUser(ctx context.Context, userID string) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	settings, err := l.store.LoadSettings(ctx, userID)
	if err != nil {
		return err
	}
	st.transactions = []*domain.Transaction{}
	st.transactionsLoaded = true
	st.settings = settings
	st.settingsLoaded = true
	st.chat = []domain.Message{}
	st.chatLoaded = true
	return nil
}

// WarmUser loads every collection that is not yet resident. Called at login.
func (l *Ledger) WarmUser(ctx context.Context, userID string) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureTransactions(ctx, st, userID); err != nil {
		return err
	}
	if err := l.ensureSettings(ctx, st, userID); err != nil {
		return err
	}
	return l.ensureChat(ctx, st, userID)
}

// Transactions returns copies of the user's transactions in insertion
// order. Copies are taken under the lock so callers can read them while
// an update for the same user runs.
func (l *Ledger) Transactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureTransactions(ctx, st, userID); err != nil {
		return nil, err
	}
	out := make([]*domain.Transaction, len(st.transactions))
	for i, t := range st.transactions {
		out[i] = t.Clone()
	}
	return out, nil
}

// CreateTransaction appends a new transaction built from in. The category
// picks the constructor: "food" and "trip" take their variant inputs from
// the attributes sub-fields. Afterwards type, notes, attributes, status,
// recurringId, and autoConfirm are overwritten from the request wholesale,
// replacing the variant's attribute mirror with whatever the caller sent.
func (l *Ledger) CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*domain.Transaction, error) {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureTransactions(ctx, st, userID); err != nil {
		return nil, err
	}

	var t *domain.Transaction
	switch in.Category {
	case "food":
		t = domain.NewFoodTransaction(in.Name, in.Amount, in.Date, in.Category,
			attrString(in.Attributes, "restaurant_name"), attrString(in.Attributes, "meal_type"), "")
	case "trip":
		t = domain.NewTripTransaction(in.Name, in.Amount, in.Date, in.Category,
			attrString(in.Attributes, "destination"), attrString(in.Attributes, "travel_method"), "")
	default:
		t = domain.NewTransaction(in.Name, in.Amount, in.Date, in.Category, "")
	}

	t.Type = stringOrDefault(in.Type, domain.TypeExpense)
	t.Notes = in.Notes
	if in.Attributes != nil {
		t.Attributes = in.Attributes
	} else {
		t.Attributes = map[string]any{}
	}
	t.Status = stringOrDefault(in.Status, "confirmed")
	t.RecurringID = in.RecurringID
	t.AutoConfirm = in.AutoConfirm

	st.transactions = append(st.transactions, t)
	if err := l.store.SaveTransactions(ctx, userID, st.transactions); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// UpdateTransaction locates in.ID by linear scan and overwrites name,
// amount, date, category, type, notes, and attributes in place. Status,
// recurringId, and autoConfirm are left as they are; only the create path
// sets those.
func (l *Ledger) UpdateTransaction(ctx context.Context, userID string, in TransactionInput) (*domain.Transaction, error) {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureTransactions(ctx, st, userID); err != nil {
		return nil, err
	}

	for _, t := range st.transactions {
		if t.ID != in.ID {
			continue
		}
		t.Name = in.Name
		t.Amount = in.Amount
		t.Date = in.Date
		t.Category = in.Category
		t.Type = stringOrDefault(in.Type, domain.TypeExpense)
		t.Notes = in.Notes
		if in.Attributes != nil {
			t.Attributes = in.Attributes
		} else {
			t.Attributes = map[string]any{}
		}
		if err := l.store.SaveTransactions(ctx, userID, st.transactions); err != nil {
			return nil, err
		}
		return t.Clone(), nil
	}
	return nil, ErrTransactionNotFound
}

// DeleteTransaction removes the transaction with the given id.
func (l *Ledger) DeleteTransaction(ctx context.Context, userID, id string) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureTransactions(ctx, st, userID); err != nil {
		return err
	}

	for i, t := range st.transactions {
		if t.ID != id {
			continue
		}
		st.transactions = append(st.transactions[:i], st.transactions[i+1:]...)
		return l.store.SaveTransactions(ctx, userID, st.transactions)
	}
	return ErrTransactionNotFound
}

// Settings returns a copy of the user's settings.
func (l *Ledger) Settings(ctx context.Context, userID string) (domain.Settings, error) {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureSettings(ctx, st, userID); err != nil {
		return domain.Settings{}, err
	}
	return st.settings.Clone(), nil
}

// PatchSettings applies the patch's present fields and persists the result.
func (l *Ledger) PatchSettings(ctx context.Context, userID string, patch domain.SettingsPatch) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureSettings(ctx, st, userID); err != nil {
		return err
	}
	patch.Apply(&st.settings)
	return l.store.SaveSettings(ctx, userID, st.settings)
}

// ChatHistory returns the user's messages in order.
func (l *Ledger) ChatHistory(ctx context.Context, userID string) ([]domain.Message, error) {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureChat(ctx, st, userID); err != nil {
		return nil, err
	}
	out := make([]domain.Message, len(st.chat))
	copy(out, st.chat)
	return out, nil
}

// AppendMessage adds one message with a server-assigned RFC 3339 timestamp.
func (l *Ledger) AppendMessage(ctx context.Context, userID, sender, text string) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := l.ensureChat(ctx, st, userID); err != nil {
		return err
	}
	st.chat = append(st.chat, domain.Message{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	return l.store.SaveChatHistory(ctx, userID, st.chat)
}

// ensureTransactions loads the transaction list if this is the first touch.
// The caller must hold st.mu.
func (l *Ledger) ensureTransactions(ctx context.Context, st *userState, userID string) error {
	if st.transactionsLoaded {
		return nil
	}
	txs, err := l.store.LoadTransactions(ctx, userID)
	if err != nil {
		return err
	}
	st.transactions = txs
	st.transactionsLoaded = true
	return nil
}

func (l *Ledger) ensureSettings(ctx context.Context, st *userState, userID string) error {
	if st.settingsLoaded {
		return nil
	}
	settings, err := l.store.LoadSettings(ctx, userID)
	if err != nil {
		return err
	}
	st.settings = settings
	st.settingsLoaded = true
	return nil
}

func (l *Ledger) ensureChat(ctx context.Context, st *userState, userID string) error {
	if st.chatLoaded {
		return nil
	}
	msgs, err := l.store.LoadChatHistory(ctx, userID)
	if err != nil {
		return err
	}
	st.chat = msgs
	st.chatLoaded = true
	return nil
}

func attrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	if s, ok := attrs[key].(string); ok {
		return s
	}
	return ""
}

func stringOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
