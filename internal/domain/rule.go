package domain

import (
	"errors"
	"time"
)

// ErrRuleNotFound is returned by a RuleStore when no rule has the requested ID.
var ErrRuleNotFound = errors.New("rule not found")

// SavedRule is a named snapshot of the blocks on the canvas.
type SavedRule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`    // business grouping, e.g. "Financial"
	Description string    `json:"description"` // generated sentence at save time
	Active      bool      `json:"active"`
	Blocks      []Block   `json:"blocks"`
	Source      string    `json:"source,omitempty"` // rule file it was imported from
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RuleStore interface {
	CreateRule(r *SavedRule) error
	GetRule(id string) (*SavedRule, error)
	GetRuleBySource(source string) (*SavedRule, error)
	ListRules() ([]SavedRule, error)
	UpdateRule(r *SavedRule) error
	DeleteRule(id string) error
}
