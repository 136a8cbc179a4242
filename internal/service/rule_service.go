package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rulecanvas/internal/canvas"
	"rulecanvas/internal/domain"
	"rulecanvas/internal/palette"
	"rulecanvas/internal/preview"
	"rulecanvas/internal/rulefile"
)

// ─────────────────────────────────────────────────────────────
// Rule Service: business logic for the rule canvas and saved rules
// ─────────────────────────────────────────────────────────────

var (
	ErrBlockNotFound    = errors.New("block not found")
	ErrEmptyCanvas      = errors.New("canvas has no blocks")
	ErrRuleNameRequired = errors.New("rule name is required")
)

// RuleService edits the canvas and manages saved rules.
type RuleService struct {
	canvas  *canvas.Canvas
	store   domain.RuleStore
	emitter EventEmitter
	logger  *zap.Logger
}

// NewRuleService creates a RuleService.
func NewRuleService(c *canvas.Canvas, store domain.RuleStore, emitter EventEmitter, logger *zap.Logger) *RuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleService{canvas: c, store: store, emitter: emitter, logger: logger}
}

// ── Canvas ─────────────────────────────────────────────────

// Palette returns the block templates that can be added.
func (s *RuleService) Palette() []domain.Template {
	return palette.Templates()
}

// AddBlock places a new block of the given kind on the canvas.
func (s *RuleService) AddBlock(ctx context.Context, kind domain.BlockKind) (domain.Block, error) {
	t, ok := palette.Lookup(kind)
	if !ok {
		return domain.Block{}, fmt.Errorf("add block: %w: %q", palette.ErrUnknownKind, kind)
	}
	b := s.canvas.Add(t)
	s.logger.Debug("block added", zap.Int64("id", b.ID), zap.String("kind", string(kind)))
	s.emitBlocksChanged(ctx)
	return b, nil
}

// MoveBlock sets the position of a block.
func (s *RuleService) MoveBlock(ctx context.Context, id int64, x, y float64) (domain.Block, error) {
	pos := domain.Position{X: x, Y: y}
	b, ok := s.canvas.Update(id, canvas.Patch{Position: &pos})
	if !ok {
		return domain.Block{}, fmt.Errorf("move block %d: %w", id, ErrBlockNotFound)
	}
	s.emitBlocksChanged(ctx)
	return b, nil
}

// ConfigureBlock replaces the whole config of a block after validating it
// against the block's palette template.
func (s *RuleService) ConfigureBlock(ctx context.Context, id int64, cfg domain.Config) (domain.Block, error) {
	current, ok := s.canvas.Get(id)
	if !ok {
		return domain.Block{}, fmt.Errorf("configure block %d: %w", id, ErrBlockNotFound)
	}
	if err := palette.Validate(current.Kind, cfg); err != nil {
		return domain.Block{}, fmt.Errorf("configure block %d: %w", id, err)
	}
	b, ok := s.canvas.Update(id, canvas.Patch{Config: &cfg})
	if !ok {
		// removed between Get and Update
		return domain.Block{}, fmt.Errorf("configure block %d: %w", id, ErrBlockNotFound)
	}
	s.emitBlocksChanged(ctx)
	return b, nil
}

// RemoveBlock deletes a block from the canvas.
func (s *RuleService) RemoveBlock(ctx context.Context, id int64) error {
	if !s.canvas.Remove(id) {
		return fmt.Errorf("remove block %d: %w", id, ErrBlockNotFound)
	}
	s.emitBlocksChanged(ctx)
	return nil
}

// ClearCanvas removes every block.
func (s *RuleService) ClearCanvas(ctx context.Context) {
	s.canvas.Clear()
	s.emitBlocksChanged(ctx)
}

// Block returns one block from the canvas.
func (s *RuleService) Block(id int64) (domain.Block, error) {
	b, ok := s.canvas.Get(id)
	if !ok {
		return domain.Block{}, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}
	return b, nil
}

// Blocks returns the blocks on the canvas in insertion order.
func (s *RuleService) Blocks() []domain.Block {
	return s.canvas.Blocks()
}

// Preview describes the rule currently on the canvas.
func (s *RuleService) Preview() domain.Preview {
	return preview.Generate(s.canvas.Blocks())
}

// TestRule logs the current rule. Rules are never executed.
func (s *RuleService) TestRule(_ context.Context) domain.Preview {
	p := s.Preview()
	s.logger.Info("testing rule",
		zap.Int("blocks", p.Total),
		zap.String("complexity", string(p.Complexity)),
		zap.String("description", p.Description),
	)
	return p
}

// ── Saved rules ────────────────────────────────────────────

// SaveRule stores the blocks on the canvas as a named rule.
func (s *RuleService) SaveRule(ctx context.Context, name, category string) (*domain.SavedRule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRuleNameRequired
	}
	blocks := s.canvas.Blocks()
	if len(blocks) == 0 {
		return nil, fmt.Errorf("save rule: %w", ErrEmptyCanvas)
	}
	r := &domain.SavedRule{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    strings.TrimSpace(category),
		Description: preview.Describe(blocks),
		Active:      true,
		Blocks:      blocks,
	}
	if err := s.store.CreateRule(r); err != nil {
		return nil, fmt.Errorf("save rule: %w", err)
	}
	s.logger.Info("rule saved", zap.String("id", r.ID), zap.String("name", r.Name), zap.Int("blocks", len(blocks)))
	s.emitter.Emit(ctx, EventRuleSaved, r.ID)
	return r, nil
}

// ListRules returns all saved rules, newest first.
func (s *RuleService) ListRules() ([]domain.SavedRule, error) {
	return s.store.ListRules()
}

// GetRule returns a saved rule by ID.
func (s *RuleService) GetRule(id string) (*domain.SavedRule, error) {
	return s.store.GetRule(id)
}

// LoadRule replaces the canvas with the blocks of a saved rule.
func (s *RuleService) LoadRule(ctx context.Context, id string) (*domain.SavedRule, error) {
	r, err := s.store.GetRule(id)
	if err != nil {
		return nil, err
	}
	s.canvas.Replace(r.Blocks)
	s.emitBlocksChanged(ctx)
	return r, nil
}

// SetRuleActive toggles the active flag of a saved rule.
func (s *RuleService) SetRuleActive(ctx context.Context, id string, active bool) (*domain.SavedRule, error) {
	r, err := s.store.GetRule(id)
	if err != nil {
		return nil, err
	}
	r.Active = active
	if err := s.store.UpdateRule(r); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, EventRuleChanged, r.ID)
	return r, nil
}

// DuplicateRule copies a saved rule under a new ID.
func (s *RuleService) DuplicateRule(ctx context.Context, id string) (*domain.SavedRule, error) {
	src, err := s.store.GetRule(id)
	if err != nil {
		return nil, err
	}
	dup := &domain.SavedRule{
		ID:          uuid.New().String(),
		Name:        src.Name + " (copy)",
		Category:    src.Category,
		Description: src.Description,
		Active:      src.Active,
		Blocks:      src.Blocks,
	}
	if err := s.store.CreateRule(dup); err != nil {
		return nil, fmt.Errorf("duplicate rule: %w", err)
	}
	s.emitter.Emit(ctx, EventRuleSaved, dup.ID)
	return dup, nil
}

// DeleteRule removes a saved rule.
func (s *RuleService) DeleteRule(ctx context.Context, id string) error {
	if err := s.store.DeleteRule(id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, EventRuleDeleted, id)
	return nil
}

// ── Rule files ─────────────────────────────────────────────

// ExportRule writes a saved rule to path as JSON or YAML.
func (s *RuleService) ExportRule(_ context.Context, id, path string) error {
	r, err := s.store.GetRule(id)
	if err != nil {
		return err
	}
	return rulefile.Write(path, rulefile.File{
		Version:  rulefile.Version,
		Name:     r.Name,
		Category: r.Category,
		Blocks:   r.Blocks,
	})
}

// ImportRuleFile reads a rule file and stores it as a new saved rule. A file
// without a name is named after its base file name.
func (s *RuleService) ImportRuleFile(ctx context.Context, path string) (*domain.SavedRule, error) {
	r, err := readRuleFile(path)
	if err != nil {
		return nil, fmt.Errorf("import rule: %w", err)
	}
	r.ID = uuid.New().String()
	r.Active = true
	if err := s.store.CreateRule(r); err != nil {
		return nil, fmt.Errorf("import rule: %w", err)
	}
	s.logger.Info("rule imported", zap.String("id", r.ID), zap.String("name", r.Name), zap.String("source", r.Source))
	s.emitter.Emit(ctx, EventRuleImported, r.ID)
	return r, nil
}

// SyncRuleFile imports a rule file like ImportRuleFile, except that a rule
// already imported from the same path is updated in place. The updated rule
// keeps its ID and active flag.
func (s *RuleService) SyncRuleFile(ctx context.Context, path string) (*domain.SavedRule, error) {
	r, err := readRuleFile(path)
	if err != nil {
		return nil, fmt.Errorf("sync rule: %w", err)
	}
	existing, err := s.store.GetRuleBySource(r.Source)
	if errors.Is(err, domain.ErrRuleNotFound) {
		return s.ImportRuleFile(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("sync rule: %w", err)
	}

	existing.Name = r.Name
	existing.Category = r.Category
	existing.Description = r.Description
	existing.Blocks = r.Blocks
	if err := s.store.UpdateRule(existing); err != nil {
		return nil, fmt.Errorf("sync rule: %w", err)
	}
	s.logger.Info("rule updated from file", zap.String("id", existing.ID), zap.String("source", existing.Source))
	s.emitter.Emit(ctx, EventRuleChanged, existing.ID)
	return existing, nil
}

// readRuleFile decodes path into an unsaved rule whose Source is the
// absolute path of the file.
func readRuleFile(path string) (*domain.SavedRule, error) {
	f, err := rulefile.Read(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &domain.SavedRule{
		Name:        name,
		Category:    f.Category,
		Description: preview.Describe(f.Blocks),
		Blocks:      f.Blocks,
		Source:      abs,
	}, nil
}

// ── helpers ────────────────────────────────────────────────

func (s *RuleService) emitBlocksChanged(ctx context.Context) {
	s.emitter.Emit(ctx, EventBlocksChanged, map[string]int{"count": s.canvas.Len()})
}
