// Package preview derives the human-readable views of a rule from the blocks
// on the canvas: a plain-language sentence, a complexity class and the
// execution-flow breakdown. Every function is pure and recomputes from scratch.
package preview

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"rulecanvas/internal/domain"
)

// EmptyDescription is returned for a rule with no blocks.
const EmptyDescription = "No rule defined yet. Add blocks to see a preview."

// Connectors between the clauses of the sentence. Their punctuation is part
// of the output format and is emitted even when an earlier clause is absent.
const (
	triggerLead   = "When "
	conditionLead = ", and if "
	actionLead    = ", then "

	triggerJoin   = " or "
	conditionJoin = " and "
	actionJoin    = ", "
)

// Generate computes every derived view of blocks.
func Generate(blocks []domain.Block) domain.Preview {
	return domain.Preview{
		Description: Describe(blocks),
		Complexity:  Classify(len(blocks)),
		Flow:        Flow(blocks),
		Counts:      Count(blocks),
		Total:       len(blocks),
	}
}

// Describe renders blocks as a single plain-language sentence.
func Describe(blocks []domain.Block) string {
	if len(blocks) == 0 {
		return EmptyDescription
	}
	triggers, conditions, actions := partition(blocks)

	var sb strings.Builder
	if len(triggers) > 0 {
		sb.WriteString(triggerLead)
		sb.WriteString(joinRendered(triggers, triggerJoin, renderTrigger))
	}
	if len(conditions) > 0 {
		sb.WriteString(conditionLead)
		sb.WriteString(joinRendered(conditions, conditionJoin, renderCondition))
	}
	if len(actions) > 0 {
		sb.WriteString(actionLead)
		sb.WriteString(joinRendered(actions, actionJoin, renderAction))
	}
	sb.WriteString(".")
	return capitalizeFirst(sb.String())
}

func renderTrigger(b domain.Block) string {
	text := strings.ToLower(b.Label)
	if t := b.Config.EmailType; t != "" && t != "any" {
		text = strings.Replace(text, "email", t+" email", 1)
	}
	return text
}

func renderCondition(b domain.Block) string {
	text := strings.ToLower(b.Label)
	cfg := b.Config
	if cfg.Amount != 0 {
		text = strings.Replace(text, "greater than", "greater than $"+formatNumber(cfg.Amount), 1)
	}
	if cfg.Quantity != 0 {
		text = strings.Replace(text, "below", "below "+formatNumber(cfg.Quantity), 1)
	}
	if cfg.Priority != "" {
		text = strings.Replace(text, "is", "is "+cfg.Priority, 1)
	}
	return text
}

func renderAction(b domain.Block) string {
	text := strings.ToLower(b.Label)
	cfg := b.Config
	if cfg.Recipient != "" && cfg.Recipient != "owner" {
		text = strings.Replace(text, "notification", "notification to "+cfg.Recipient, 1)
	}
	if cfg.Template != "" && cfg.Template != "default" {
		text += " using " + cfg.Template + " template"
	}
	return text
}

func joinRendered(blocks []domain.Block, sep string, render func(domain.Block) string) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = render(b)
	}
	return strings.Join(parts, sep)
}

// formatNumber prints n in its shortest form: 1000, 12.5.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// partition splits blocks by category, keeping insertion order within each.
func partition(blocks []domain.Block) (triggers, conditions, actions []domain.Block) {
	for _, b := range blocks {
		switch b.Category {
		case domain.CategoryTrigger:
			triggers = append(triggers, b)
		case domain.CategoryCondition:
			conditions = append(conditions, b)
		case domain.CategoryAction:
			actions = append(actions, b)
		}
	}
	return triggers, conditions, actions
}
