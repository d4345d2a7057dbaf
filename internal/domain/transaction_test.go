package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewTransaction_TypeFromSign(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		wantType string
	}{
		{name: "negative is expense", amount: "-4.50", wantType: TypeExpense},
		{name: "positive is income", amount: "120", wantType: TypeIncome},
		{name: "zero is income", amount: "0", wantType: TypeIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("parse amount: %v", err)
			}
			tx := NewTransaction("Coffee", amount, "2024-03-05", "food", "")
			if tx.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", tx.Type, tt.wantType)
			}
			if tx.ID == "" {
				t.Error("expected a generated id")
			}
			if tx.Status != "confirmed" {
				t.Errorf("Status = %q, want confirmed", tx.Status)
			}
		})
	}
}

func TestNewTransaction_KeepsGivenID(t *testing.T) {
	tx := NewTransaction("Rent", decimal.NewFromInt(-900), "2024-01-01", "bills", "tx-1")
	if tx.ID != "tx-1" {
		t.Errorf("ID = %q, want tx-1", tx.ID)
	}
}

func TestVariants_MirrorIntoAttributes(t *testing.T) {
	food := NewFoodTransaction("Lunch", decimal.NewFromFloat(-12.30), "2024-02-01", "food", "Luigi's", "lunch", "")
	if food.Kind != KindFood {
		t.Fatalf("Kind = %q, want %q", food.Kind, KindFood)
	}
	if food.Attributes["restaurant_name"] != "Luigi's" || food.Attributes["meal_type"] != "lunch" {
		t.Errorf("attributes mirror missing, got %v", food.Attributes)
	}

	trip := NewTripTransaction("Train", decimal.NewFromFloat(-40), "2024-02-02", "trip", "Boston", "rail", "")
	if trip.Attributes["destination"] != "Boston" || trip.Attributes["travel_method"] != "rail" {
		t.Errorf("attributes mirror missing, got %v", trip.Attributes)
	}
}

func TestDocument_VariantFieldsTopLevel(t *testing.T) {
	food := NewFoodTransaction("Lunch", decimal.NewFromFloat(-12.30), "2024-02-01", "food", "Luigi's", "lunch", "")
	doc := food.Document()

	if doc["restaurant_name"] != "Luigi's" || doc["meal_type"] != "lunch" {
		t.Errorf("expected dedicated variant fields in document, got %v", doc)
	}
	attrs, ok := doc["attributes"].(map[string]any)
	if !ok || attrs["restaurant_name"] != "Luigi's" {
		t.Errorf("expected attributes mirror in document, got %v", doc["attributes"])
	}
	if doc["amount"] != -12.30 {
		t.Errorf("amount = %v, want -12.30", doc["amount"])
	}
}

func TestDocument_GenericOmitsVariantFields(t *testing.T) {
	tx := NewTransaction("Rent", decimal.NewFromInt(-900), "2024-01-01", "bills", "")
	doc := tx.Document()
	if _, ok := doc["restaurant_name"]; ok {
		t.Error("generic document should not carry restaurant_name")
	}
	if _, ok := doc["destination"]; ok {
		t.Error("generic document should not carry destination")
	}
}

// Reloading a food or trip document yields the base shape: the dedicated
// fields are not restored, only the attributes bag survives.
func TestFromDocument_AlwaysBaseShape(t *testing.T) {
	food := NewFoodTransaction("Lunch", decimal.NewFromFloat(-12.30), "2024-02-01", "food", "Luigi's", "lunch", "")
	doc := food.Document()

	got, err := TransactionFromDocument(doc)
	if err != nil {
		t.Fatalf("TransactionFromDocument: %v", err)
	}
	if got.Kind != KindGeneric {
		t.Errorf("Kind = %q, want %q", got.Kind, KindGeneric)
	}
	if got.RestaurantName != "" {
		t.Errorf("RestaurantName = %q, want empty after reload", got.RestaurantName)
	}
	if got.Attributes["restaurant_name"] != "Luigi's" {
		t.Errorf("attributes should survive reload, got %v", got.Attributes)
	}
	if out := got.Document(); out["restaurant_name"] != nil {
		t.Errorf("reloaded document should lack top-level restaurant_name, got %v", out)
	}
}

func TestFromDocument_RoundTripBaseShape(t *testing.T) {
	rid := "rec-7"
	tx := NewTransaction("Salary", decimal.NewFromInt(3000), "2024-03-01", "income", "tx-9")
	tx.Notes = "monthly"
	tx.Attributes = map[string]any{"source": "employer"}
	tx.Status = "pending"
	tx.RecurringID = &rid
	tx.AutoConfirm = true

	got, err := TransactionFromDocument(tx.Document())
	if err != nil {
		t.Fatalf("TransactionFromDocument: %v", err)
	}
	if got.ID != "tx-9" || got.Name != "Salary" || got.Date != "2024-03-01" || got.Category != "income" {
		t.Errorf("base fields not preserved: %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Amount = %s, want 3000", got.Amount)
	}
	if got.Notes != "monthly" || got.Status != "pending" || !got.AutoConfirm {
		t.Errorf("optional fields not preserved: %+v", got)
	}
	if got.RecurringID == nil || *got.RecurringID != "rec-7" {
		t.Errorf("RecurringID not preserved: %v", got.RecurringID)
	}
}

func TestFromDocument_MissingName(t *testing.T) {
	if _, err := TransactionFromDocument(map[string]any{"amount": 1.0}); err == nil {
		t.Error("expected error for document without name")
	}
}

func TestFromDocument_DefaultType(t *testing.T) {
	got, err := TransactionFromDocument(map[string]any{"name": "x", "amount": 5.0})
	if err != nil {
		t.Fatalf("TransactionFromDocument: %v", err)
	}
	if got.Type != TypeExpense {
		t.Errorf("Type = %q, want the expense default", got.Type)
	}
}
