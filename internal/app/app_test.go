package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulecanvas/internal/domain"
	"rulecanvas/internal/rulefile"
	"rulecanvas/internal/storage"
)

// testEnv points the CLI at a temp database and a config file that does not exist.
type testEnv struct {
	dir    string
	dbPath string
	cfg    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		dbPath: filepath.Join(dir, "rules.db"),
		cfg:    filepath.Join(dir, "config.yaml"),
	}
	t.Setenv("RULECANVAS_DB", env.dbPath)
	t.Setenv("RULECANVAS_INBOX", filepath.Join(dir, "inbox"))
	t.Setenv("RULECANVAS_LOG_LEVEL", "error")
	t.Setenv("RULECANVAS_SEED", "1")
	return env
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e testEnv) writeRule(t *testing.T, name string, f rulefile.File) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, rulefile.Write(path, f))
	return path
}

func (e testEnv) savedRules(t *testing.T) []domain.SavedRule {
	t.Helper()
	db, err := storage.New(e.dbPath)
	require.NoError(t, err)
	defer db.Close()
	rules, err := storage.NewRuleStore(db).ListRules()
	require.NoError(t, err)
	return rules
}

var invoiceRule = rulefile.File{
	Name:     "Invoice Processing",
	Category: "Financial",
	Blocks: []domain.Block{
		{ID: 1, Kind: domain.KindEmailReceived, Config: domain.Config{EmailType: "invoice"}},
		{ID: 2, Kind: domain.KindAmountGreater, Config: domain.Config{Amount: 5000}},
		{ID: 3, Kind: domain.KindSendNotification, Config: domain.Config{Recipient: "sales@x.com", Template: "urgent"}},
	},
}

const invoiceSentence = "When when new invoice email received, and if if amount greater than $5000, then send email notification to sales@x.com using urgent template."

func TestPaletteCmd(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "palette")
	require.NoError(t, err)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "email_received")
	assert.Contains(t, out, "recipient=owner template=default")
	assert.Contains(t, out, "If document contains")

	out, err = env.run(t, "palette", "--category", "condition")
	require.NoError(t, err)
	assert.Contains(t, out, "amount_greater")
	assert.NotContains(t, out, "email_received")

	_, err = env.run(t, "palette", "-c", "loop")
	assert.Error(t, err)
}

func TestPreviewCmd(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeRule(t, "invoice.yaml", invoiceRule)

	out, err := env.run(t, "preview", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice Processing")
	assert.Contains(t, out, invoiceSentence)
	assert.Contains(t, out, "Medium")
	assert.Contains(t, out, "1. Trigger")
	assert.Contains(t, out, "3. Execute Actions")

	out, err = env.run(t, "preview", "--json", path)
	require.NoError(t, err)
	var p domain.Preview
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, invoiceSentence, p.Description)
	assert.Equal(t, domain.Counts{Triggers: 1, Conditions: 1, Actions: 1}, p.Counts)

	_, err = env.run(t, "preview", filepath.Join(env.dir, "missing.json"))
	assert.Error(t, err)
}

func TestRulesCmd_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "rules", "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved rules.\n", out)

	path := env.writeRule(t, "invoice.json", invoiceRule)
	out, err = env.run(t, "rules", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Imported "Invoice Processing"`)

	rules := env.savedRules(t)
	require.Len(t, rules, 1)
	id := rules[0].ID
	assert.Equal(t, invoiceSentence, rules[0].Description)

	out, err = env.run(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Financial")
	assert.Contains(t, out, "active")

	out, err = env.run(t, "rules", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, invoiceSentence)

	out, err = env.run(t, "rules", "activate", "--off", id)
	require.NoError(t, err)
	assert.Equal(t, "Invoice Processing is now paused\n", out)
	assert.False(t, env.savedRules(t)[0].Active)

	_, err = env.run(t, "rules", "duplicate", id)
	require.NoError(t, err)
	assert.Len(t, env.savedRules(t), 2)

	exported := filepath.Join(env.dir, "out", "invoice.yaml")
	_, err = env.run(t, "rules", "export", id, exported)
	require.NoError(t, err)
	f, err := rulefile.Read(exported)
	require.NoError(t, err)
	assert.Equal(t, "Invoice Processing", f.Name)
	assert.Len(t, f.Blocks, 3)

	_, err = env.run(t, "rules", "delete", id)
	require.NoError(t, err)
	_, err = env.run(t, "rules", "delete", id)
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
	assert.Len(t, env.savedRules(t), 1)
}

func TestRulesCmd_ImportRejectsInvalidFile(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeRule(t, "bad.json", rulefile.File{Blocks: []domain.Block{
		{ID: 1, Kind: domain.KindCustomerPriority, Config: domain.Config{Priority: "urgent"}},
	}})

	_, err := env.run(t, "rules", "import", path)
	assert.ErrorIs(t, err, rulefile.ErrInvalidBlock)
	assert.Empty(t, env.savedRules(t))
}

func TestConfigCmd(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, env.dbPath)
	assert.Contains(t, out, "seed: 1")

	out, err = env.run(t, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+env.cfg+"\n", out)
	assert.FileExists(t, env.cfg)
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestFormatConfig(t *testing.T) {
	assert.Equal(t, "-", formatConfig(domain.Config{}))
	assert.Equal(t, "duration=30 reminder=true", formatConfig(domain.Config{Duration: 30, Reminder: true}))
	assert.Equal(t, "amount=1000 comparison=greater", formatConfig(domain.Config{Amount: 1000, Comparison: "greater"}))
	assert.True(t, strings.HasPrefix(formatConfig(domain.Config{EmailType: "any"}), "emailType="))
}
