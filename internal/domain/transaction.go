package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction kinds. The kind is chosen at creation time from the category
// ("food" and "trip" select the specialized constructors) and controls which
// dedicated fields Document emits.
const (
	KindGeneric = "generic"
	KindFood    = "food"
	KindTrip    = "trip"
)

// Transaction types.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Transaction is one financial transaction belonging to a user.
// Amount is signed: negative amounts are expenses, non-negative income.
// Type is derived from the sign at construction time only; callers may
// overwrite it afterwards without the amount being consulted again.
type Transaction struct {
	ID          string
	Name        string
	Amount      decimal.Decimal
	Date        string // "YYYY-MM-DD", stored as given, never validated
	Category    string
	Type        string
	Notes       string
	Attributes  map[string]any
	Status      string
	RecurringID *string
	AutoConfirm bool

	// Kind discriminator plus the dedicated fields of the food and trip
	// variants. Only the fields matching Kind are meaningful.
	Kind           string
	RestaurantName string
	MealType       string
	Destination    string
	TravelMethod   string
}

// NewTransaction creates a generic transaction. An empty id is replaced with
// a generated UUID.
func NewTransaction(name string, amount decimal.Decimal, date, category, id string) *Transaction {
	if id == "" {
		id = uuid.New().String()
	}
	txType := TypeIncome
	if amount.IsNegative() {
		txType = TypeExpense
	}
	return &Transaction{
		ID:         id,
		Name:       name,
		Amount:     amount,
		Date:       date,
		Category:   category,
		Type:       txType,
		Attributes: map[string]any{},
		Status:     "confirmed",
		Kind:       KindGeneric,
	}
}

// NewFoodTransaction creates the food variant. The variant inputs are
// mirrored into Attributes so API consumers can read either representation.
func NewFoodTransaction(name string, amount decimal.Decimal, date, category, restaurantName, mealType, id string) *Transaction {
	t := NewTransaction(name, amount, date, category, id)
	t.Kind = KindFood
	t.RestaurantName = restaurantName
	t.MealType = mealType
	t.Attributes = map[string]any{
		"restaurant_name": restaurantName,
		"meal_type":       mealType,
	}
	return t
}

// NewTripTransaction creates the trip variant, mirroring the variant inputs
// into Attributes the same way NewFoodTransaction does.
func NewTripTransaction(name string, amount decimal.Decimal, date, category, destination, travelMethod, id string) *Transaction {
	t := NewTransaction(name, amount, date, category, id)
	t.Kind = KindTrip
	t.Destination = destination
	t.TravelMethod = travelMethod
	t.Attributes = map[string]any{
		"destination":   destination,
		"travel_method": travelMethod,
	}
	return t
}

// Clone returns a copy detached from the receiver: the attributes bag and
// the recurring id are copied, not aliased. Values inside the bag are
// shared; the ledger only ever replaces the bag wholesale, never mutates
// its entries.
func (t *Transaction) Clone() *Transaction {
	out := *t
	if t.Attributes != nil {
		attrs := make(map[string]any, len(t.Attributes))
		for k, v := range t.Attributes {
			attrs[k] = v
		}
		out.Attributes = attrs
	}
	if t.RecurringID != nil {
		rid := *t.RecurringID
		out.RecurringID = &rid
	}
	return &out
}

// Document renders the transaction as the plain mapping used both on the
// wire and in the persisted files. Variant kinds additionally emit their
// dedicated fields at the top level; the duplication with the Attributes
// mirror is intentional.
func (t *Transaction) Document() map[string]any {
	var recurringID any
	if t.RecurringID != nil {
		recurringID = *t.RecurringID
	}
	attrs := t.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	doc := map[string]any{
		"id":          t.ID,
		"name":        t.Name,
		"amount":      t.Amount.InexactFloat64(),
		"date":        t.Date,
		"category":    t.Category,
		"type":        t.Type,
		"notes":       t.Notes,
		"attributes":  attrs,
		"status":      t.Status,
		"recurringId": recurringID,
		"autoConfirm": t.AutoConfirm,
	}
	switch t.Kind {
	case KindFood:
		doc["restaurant_name"] = t.RestaurantName
		doc["meal_type"] = t.MealType
	case KindTrip:
		doc["destination"] = t.Destination
		doc["travel_method"] = t.TravelMethod
	}
	return doc
}

// TransactionFromDocument rebuilds a transaction from its mapping form.
//
// Decoding always yields the generic kind: variant fields written by
// Document are not restored into their dedicated fields, only whatever the
// attributes bag carries survives a reload. Writes are variant-shaped,
// reads are base-shaped. This asymmetry is deliberate; the API has always
// behaved this way and consumers compensate by reading attributes.
func TransactionFromDocument(doc map[string]any) (*Transaction, error) {
	name, ok := doc["name"].(string)
	if !ok {
		return nil, fmt.Errorf("transaction document missing name")
	}
	amount, err := amountFromDocument(doc["amount"])
	if err != nil {
		return nil, fmt.Errorf("transaction %q: %w", name, err)
	}

	t := NewTransaction(name, amount, stringOr(doc, "date", ""), stringOr(doc, "category", ""), stringOr(doc, "id", ""))
	t.Type = stringOr(doc, "type", TypeExpense)
	t.Notes = stringOr(doc, "notes", "")
	if attrs, ok := doc["attributes"].(map[string]any); ok {
		t.Attributes = attrs
	}
	t.Status = stringOr(doc, "status", "confirmed")
	if rid, ok := doc["recurringId"].(string); ok {
		t.RecurringID = &rid
	}
	if ac, ok := doc["autoConfirm"].(bool); ok {
		t.AutoConfirm = ac
	}
	return t, nil
}

func amountFromDocument(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case float64:
		return decimal.NewFromFloat(a), nil
	case string:
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse amount %q: %w", a, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("amount has unsupported type %T", v)
	}
}

func stringOr(doc map[string]any, key, def string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return def
}
