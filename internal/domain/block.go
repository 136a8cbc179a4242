package domain

// Category groups blocks into the three stages of a rule.
type Category string

const (
	CategoryTrigger   Category = "trigger"
	CategoryCondition Category = "condition"
	CategoryAction    Category = "action"
)

// Categories lists every category in rule order.
var Categories = []Category{CategoryTrigger, CategoryCondition, CategoryAction}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTrigger, CategoryCondition, CategoryAction:
		return true
	}
	return false
}

// BlockKind identifies the palette entry a block was created from.
// It selects which Config fields are meaningful for the block.
type BlockKind string

const (
	KindEmailReceived   BlockKind = "email_received"
	KindFileUploaded    BlockKind = "file_uploaded"
	KindCustomerMessage BlockKind = "customer_message"
	KindSchedule        BlockKind = "schedule"

	KindAmountGreater    BlockKind = "amount_greater"
	KindStockBelow       BlockKind = "stock_below"
	KindCustomerPriority BlockKind = "customer_priority"
	KindDocumentContains BlockKind = "document_contains"

	KindSendNotification BlockKind = "send_notification"
	KindUpdateCustomerDB BlockKind = "update_customer_record"
	KindCreateEvent      BlockKind = "create_calendar_event"
	KindUpdateSalesDB    BlockKind = "update_sales_record"
	KindUpdatePurchaseDB BlockKind = "update_purchase_record"
	KindAddInventory     BlockKind = "add_inventory"
	KindRemoveInventory  BlockKind = "remove_inventory"
	KindPrintDocuments   BlockKind = "print_documents"
)

// Position is a point on the canvas surface. It carries no rule semantics.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Block is one trigger, condition or action placed on the rule canvas.
type Block struct {
	ID       int64     `json:"id" yaml:"id"`
	Kind     BlockKind `json:"kind" yaml:"kind"`
	Category Category  `json:"category" yaml:"category"`
	Label    string    `json:"label" yaml:"label"`
	Config   Config    `json:"config" yaml:"config"`
	Position Position  `json:"position" yaml:"position"`
}

// Config holds the per-block options. A zero value means the option is unset.
type Config struct {
	// trigger options
	EmailType string `json:"emailType,omitempty" yaml:"emailType,omitempty" validate:"omitempty,oneof=any invoice customer supplier"`
	FileType  string `json:"fileType,omitempty" yaml:"fileType,omitempty" validate:"omitempty,max=32"`
	Platform  string `json:"platform,omitempty" yaml:"platform,omitempty" validate:"omitempty,max=32"`
	Frequency string `json:"frequency,omitempty" yaml:"frequency,omitempty" validate:"omitempty,schedule"`

	// condition options
	Amount     float64 `json:"amount,omitempty" yaml:"amount,omitempty" validate:"gte=0"`
	Comparison string  `json:"comparison,omitempty" yaml:"comparison,omitempty" validate:"omitempty,oneof=greater less equal below"`
	Quantity   float64 `json:"quantity,omitempty" yaml:"quantity,omitempty" validate:"gte=0"`
	Priority   string  `json:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Keyword    string  `json:"keyword,omitempty" yaml:"keyword,omitempty" validate:"omitempty,max=128"`

	// action options
	Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty" validate:"omitempty,eq=owner|email"`
	Template  string `json:"template,omitempty" yaml:"template,omitempty" validate:"omitempty,oneof=default urgent reminder"`
	Table     string `json:"table,omitempty" yaml:"table,omitempty" validate:"omitempty,max=64"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty" validate:"omitempty,max=64"`
	Duration  int    `json:"duration,omitempty" yaml:"duration,omitempty" validate:"gte=0"`
	Reminder  bool   `json:"reminder,omitempty" yaml:"reminder,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty" validate:"omitempty,max=64"`
	Notify    bool   `json:"notify,omitempty" yaml:"notify,omitempty"`
}

// Config option names, matching the JSON field names.
const (
	KeyEmailType  = "emailType"
	KeyFileType   = "fileType"
	KeyPlatform   = "platform"
	KeyFrequency  = "frequency"
	KeyAmount     = "amount"
	KeyComparison = "comparison"
	KeyQuantity   = "quantity"
	KeyPriority   = "priority"
	KeyKeyword    = "keyword"
	KeyRecipient  = "recipient"
	KeyTemplate   = "template"
	KeyTable      = "table"
	KeyField      = "field"
	KeyDuration   = "duration"
	KeyReminder   = "reminder"
	KeyLocation   = "location"
	KeyNotify     = "notify"
)

// Keys returns the names of the options that are set, in declaration order.
func (c Config) Keys() []string {
	set := []struct {
		key string
		ok  bool
	}{
		{KeyEmailType, c.EmailType != ""},
		{KeyFileType, c.FileType != ""},
		{KeyPlatform, c.Platform != ""},
		{KeyFrequency, c.Frequency != ""},
		{KeyAmount, c.Amount != 0},
		{KeyComparison, c.Comparison != ""},
		{KeyQuantity, c.Quantity != 0},
		{KeyPriority, c.Priority != ""},
		{KeyKeyword, c.Keyword != ""},
		{KeyRecipient, c.Recipient != ""},
		{KeyTemplate, c.Template != ""},
		{KeyTable, c.Table != ""},
		{KeyField, c.Field != ""},
		{KeyDuration, c.Duration != 0},
		{KeyReminder, c.Reminder},
		{KeyLocation, c.Location != ""},
		{KeyNotify, c.Notify},
	}
	var keys []string
	for _, s := range set {
		if s.ok {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// IsZero reports whether no option is set.
func (c Config) IsZero() bool {
	return c == Config{}
}
