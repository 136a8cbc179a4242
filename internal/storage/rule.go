package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rulecanvas/internal/domain"
)

const ruleColumns = `id, name, category, description, active, blocks_json, source, created_at, updated_at`

// RuleStore implements domain.RuleStore using SQLite.
type RuleStore struct {
	db *DB
}

func NewRuleStore(db *DB) *RuleStore {
	return &RuleStore{db: db}
}

func (s *RuleStore) CreateRule(r *domain.SavedRule) error {
	blocksJSON, err := marshalBlocks(r.Blocks)
	if err != nil {
		return err
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	_, err = s.db.Conn().Exec(
		`INSERT INTO rules (`+ruleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Category, r.Description, r.Active, blocksJSON, r.Source, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("create rule: %w", err)
	}
	return nil
}

func (s *RuleStore) GetRule(id string) (*domain.SavedRule, error) {
	row := s.db.Conn().QueryRow(`SELECT `+ruleColumns+` FROM rules WHERE id = ?`, id)
	r, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rule %s: %w", id, domain.ErrRuleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return r, nil
}

// GetRuleBySource returns the most recently created rule imported from source.
func (s *RuleStore) GetRuleBySource(source string) (*domain.SavedRule, error) {
	row := s.db.Conn().QueryRow(`SELECT `+ruleColumns+` FROM rules WHERE source = ? ORDER BY created_at DESC LIMIT 1`, source)
	r, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule from %s: %w", source, domain.ErrRuleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rule by source: %w", err)
	}
	return r, nil
}

// ListRules returns every saved rule, newest first.
func (s *RuleStore) ListRules() ([]domain.SavedRule, error) {
	rows, err := s.db.Conn().Query(`SELECT ` + ruleColumns + ` FROM rules ORDER BY created_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.SavedRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

func (s *RuleStore) UpdateRule(r *domain.SavedRule) error {
	blocksJSON, err := marshalBlocks(r.Blocks)
	if err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	res, err := s.db.Conn().Exec(
		`UPDATE rules SET name = ?, category = ?, description = ?, active = ?, blocks_json = ?, source = ?, updated_at = ? WHERE id = ?`,
		r.Name, r.Category, r.Description, r.Active, blocksJSON, r.Source, r.UpdatedAt.UnixNano(), r.ID,
	)
	if err != nil {
		return fmt.Errorf("update rule: %w", err)
	}
	return requireRow(res, r.ID)
}

func (s *RuleStore) DeleteRule(id string) error {
	res, err := s.db.Conn().Exec(`DELETE FROM rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	return requireRow(res, id)
}

// ── helpers ────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanRule(sc scanner) (*domain.SavedRule, error) {
	var (
		r          domain.SavedRule
		blocksJSON string
		created    int64
		updated    int64
	)
	if err := sc.Scan(&r.ID, &r.Name, &r.Category, &r.Description, &r.Active, &blocksJSON, &r.Source, &created, &updated); err != nil {
		return nil, err
	}
	r.CreatedAt = time.Unix(0, created)
	r.UpdatedAt = time.Unix(0, updated)
	if err := json.Unmarshal([]byte(blocksJSON), &r.Blocks); err != nil {
		return nil, fmt.Errorf("decode blocks of rule %s: %w", r.ID, err)
	}
	return &r, nil
}

func marshalBlocks(blocks []domain.Block) (string, error) {
	if blocks == nil {
		blocks = []domain.Block{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("encode blocks: %w", err)
	}
	return string(data), nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rule %s: %w", id, domain.ErrRuleNotFound)
	}
	return nil
}
