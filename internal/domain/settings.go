package domain

// BudgetValues holds the per-category budgets for each budget type. Both
// maps are always present, even when empty, to match the wire shape the
// front end expects.
type BudgetValues struct {
	Dollar     map[string]float64 `json:"dollar"`
	Percentage map[string]float64 `json:"percentage"`
}

// Settings is the per-user settings singleton.
type Settings struct {
	Currency              string           `json:"currency"`
	Notifications         bool             `json:"notifications"`
	AutoCategorize        bool             `json:"autoCategorize"`
	SelectedCategories    []string         `json:"selectedCategories"`
	BudgetType            string           `json:"budgetType"` // "dollar" or "percentage"
	BudgetValues          BudgetValues     `json:"budgetValues"`
	RecurringTransactions []map[string]any `json:"recurringTransactions"`
	Theme                 string           `json:"theme"`
}

// DefaultSettings returns the settings a user starts with before anything
// was ever persisted for them.
func DefaultSettings() Settings {
	return Settings{
		Currency:           "USD",
		Notifications:      true,
		AutoCategorize:     false,
		SelectedCategories: []string{"food", "transportation", "entertainment", "shopping", "bills", "groceries"},
		BudgetType:         "dollar",
		BudgetValues: BudgetValues{
			Dollar:     map[string]float64{},
			Percentage: map[string]float64{},
		},
		RecurringTransactions: []map[string]any{},
		Theme:                 "dark",
	}
}

// Clone returns a copy that shares no mutable state with the receiver.
func (s Settings) Clone() Settings {
	out := s
	out.SelectedCategories = append([]string(nil), s.SelectedCategories...)
	out.BudgetValues.Dollar = cloneFloatMap(s.BudgetValues.Dollar)
	out.BudgetValues.Percentage = cloneFloatMap(s.BudgetValues.Percentage)
	out.RecurringTransactions = make([]map[string]any, len(s.RecurringTransactions))
	for i, rt := range s.RecurringTransactions {
		m := make(map[string]any, len(rt))
		for k, v := range rt {
			m[k] = v
		}
		out.RecurringTransactions[i] = m
	}
	return out
}

func cloneFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SettingsPatch is a partial settings update. Only fields present in the
// request body are applied; the allowed keys are enumerated here rather
// than merged blindly from the raw JSON.
type SettingsPatch struct {
	Currency              *string           `json:"currency"`
	Notifications         *bool             `json:"notifications"`
	AutoCategorize        *bool             `json:"autoCategorize"`
	SelectedCategories    *[]string         `json:"selectedCategories"`
	BudgetType            *string           `json:"budgetType"`
	BudgetValues          *BudgetValues     `json:"budgetValues"`
	RecurringTransactions *[]map[string]any `json:"recurringTransactions"`
	Theme                 *string           `json:"theme"`
}

// Apply writes the patch's present fields onto s, leaving absent fields
// untouched.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.AutoCategorize != nil {
		s.AutoCategorize = *p.AutoCategorize
	}
	if p.SelectedCategories != nil {
		s.SelectedCategories = *p.SelectedCategories
	}
	if p.BudgetType != nil {
		s.BudgetType = *p.BudgetType
	}
	if p.BudgetValues != nil {
		s.BudgetValues = *p.BudgetValues
	}
	if p.RecurringTransactions != nil {
		s.RecurringTransactions = *p.RecurringTransactions
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
}
