package preview

import "rulecanvas/internal/domain"

// Execution-flow step names.
const (
	StepTrigger    = "Trigger"
	StepConditions = "Check Conditions"
	StepActions    = "Execute Actions"
)

// Classify maps a block count to a complexity class.
func Classify(n int) domain.Complexity {
	switch {
	case n <= 0:
		return domain.ComplexityNone
	case n <= 2:
		return domain.ComplexitySimple
	case n <= 4:
		return domain.ComplexityMedium
	default:
		return domain.ComplexityComplex
	}
}

// Flow returns the trigger → conditions → actions breakdown. Categories
// without blocks are left out entirely.
func Flow(blocks []domain.Block) []domain.FlowStep {
	triggers, conditions, actions := partition(blocks)

	var flow []domain.FlowStep
	for _, s := range []struct {
		name   string
		blocks []domain.Block
	}{
		{StepTrigger, triggers},
		{StepConditions, conditions},
		{StepActions, actions},
	} {
		if len(s.blocks) == 0 {
			continue
		}
		flow = append(flow, domain.FlowStep{Step: s.name, Items: labels(s.blocks)})
	}
	return flow
}

// Count tallies blocks per category.
func Count(blocks []domain.Block) domain.Counts {
	var c domain.Counts
	for _, b := range blocks {
		switch b.Category {
		case domain.CategoryTrigger:
			c.Triggers++
		case domain.CategoryCondition:
			c.Conditions++
		case domain.CategoryAction:
			c.Actions++
		}
	}
	return c
}

func labels(blocks []domain.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Label
	}
	return out
}
