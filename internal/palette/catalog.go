// Package palette holds the catalog of block templates offered by the rule
// builder and validates block configuration against them.
package palette

import "rulecanvas/internal/domain"

var catalog = []domain.Template{
	// ── Triggers ───────────────────────────────────────
	{
		Kind:        domain.KindEmailReceived,
		Category:    domain.CategoryTrigger,
		Label:       "When new email received",
		Defaults:    domain.Config{EmailType: "any"},
		AllowedKeys: []string{domain.KeyEmailType},
	},
	{
		Kind:        domain.KindFileUploaded,
		Category:    domain.CategoryTrigger,
		Label:       "When file uploaded",
		Defaults:    domain.Config{FileType: "any"},
		AllowedKeys: []string{domain.KeyFileType},
	},
	{
		Kind:        domain.KindCustomerMessage,
		Category:    domain.CategoryTrigger,
		Label:       "When customer message arrives",
		Defaults:    domain.Config{Platform: "any"},
		AllowedKeys: []string{domain.KeyPlatform},
	},
	{
		Kind:        domain.KindSchedule,
		Category:    domain.CategoryTrigger,
		Label:       "On schedule (time-based)",
		Defaults:    domain.Config{Frequency: "daily"},
		AllowedKeys: []string{domain.KeyFrequency},
	},

	// ── Conditions ─────────────────────────────────────
	{
		Kind:        domain.KindAmountGreater,
		Category:    domain.CategoryCondition,
		Label:       "If amount greater than",
		Defaults:    domain.Config{Amount: 1000, Comparison: "greater"},
		AllowedKeys: []string{domain.KeyAmount, domain.KeyComparison},
	},
	{
		Kind:        domain.KindStockBelow,
		Category:    domain.CategoryCondition,
		Label:       "If stock level below",
		Defaults:    domain.Config{Quantity: 10, Comparison: "below"},
		AllowedKeys: []string{domain.KeyQuantity, domain.KeyComparison},
	},
	{
		Kind:        domain.KindCustomerPriority,
		Category:    domain.CategoryCondition,
		Label:       "If customer priority is",
		Defaults:    domain.Config{Priority: "high"},
		AllowedKeys: []string{domain.KeyPriority},
	},
	{
		Kind:        domain.KindDocumentContains,
		Category:    domain.CategoryCondition,
		Label:       "If document contains",
		Defaults:    domain.Config{},
		AllowedKeys: []string{domain.KeyKeyword},
	},

	// ── Actions ────────────────────────────────────────
	{
		Kind:        domain.KindSendNotification,
		Category:    domain.CategoryAction,
		Label:       "Send email notification",
		Defaults:    domain.Config{Recipient: "owner", Template: "default"},
		AllowedKeys: []string{domain.KeyRecipient, domain.KeyTemplate},
	},
	{
		Kind:        domain.KindUpdateCustomerDB,
		Category:    domain.CategoryAction,
		Label:       "Update Customer database record",
		Defaults:    domain.Config{Table: "customer database", Field: "status"},
		AllowedKeys: []string{domain.KeyTable, domain.KeyField},
	},
	{
		Kind:        domain.KindCreateEvent,
		Category:    domain.CategoryAction,
		Label:       "Create calendar event",
		Defaults:    domain.Config{Duration: 30, Reminder: true},
		AllowedKeys: []string{domain.KeyDuration, domain.KeyReminder},
	},
	{
		Kind:        domain.KindUpdateSalesDB,
		Category:    domain.CategoryAction,
		Label:       "Update Sales database record",
		Defaults:    domain.Config{Table: "sales database", Field: "status"},
		AllowedKeys: []string{domain.KeyTable, domain.KeyField},
	},
	{
		Kind:        domain.KindUpdatePurchaseDB,
		Category:    domain.CategoryAction,
		Label:       "Update Purchase database record",
		Defaults:    domain.Config{Table: "purchase database", Field: "status"},
		AllowedKeys: []string{domain.KeyTable, domain.KeyField},
	},
	{
		Kind:        domain.KindAddInventory,
		Category:    domain.CategoryAction,
		Label:       "Add to inventory",
		Defaults:    domain.Config{Location: "warehouse", Notify: true},
		AllowedKeys: []string{domain.KeyLocation, domain.KeyNotify},
	},
	{
		Kind:        domain.KindRemoveInventory,
		Category:    domain.CategoryAction,
		Label:       "Remove from inventory",
		Defaults:    domain.Config{Location: "warehouse", Notify: true},
		AllowedKeys: []string{domain.KeyLocation, domain.KeyNotify},
	},
	{
		Kind:        domain.KindPrintDocuments,
		Category:    domain.CategoryAction,
		Label:       "Print out documents",
		Defaults:    domain.Config{Location: "office", Notify: true},
		AllowedKeys: []string{domain.KeyLocation, domain.KeyNotify},
	},
}

// Templates returns the palette in display order. The slice is a copy.
func Templates() []domain.Template {
	out := make([]domain.Template, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory returns the templates of one category in display order.
func ByCategory(c domain.Category) []domain.Template {
	var out []domain.Template
	for _, t := range catalog {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the template for kind.
func Lookup(kind domain.BlockKind) (domain.Template, bool) {
	for _, t := range catalog {
		if t.Kind == kind {
			return t, true
		}
	}
	return domain.Template{}, false
}
