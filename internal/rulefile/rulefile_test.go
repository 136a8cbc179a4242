package rulefile_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulecanvas/internal/domain"
	"rulecanvas/internal/palette"
	"rulecanvas/internal/rulefile"
)

func sampleFile() rulefile.File {
	return rulefile.File{
		Version:  rulefile.Version,
		Name:     "Invoice Processing",
		Category: "Financial",
		Blocks: []domain.Block{
			{ID: 1, Kind: domain.KindEmailReceived, Category: domain.CategoryTrigger, Label: "When new email received",
				Config: domain.Config{EmailType: "invoice"}, Position: domain.Position{X: 12.5, Y: 40}},
			{ID: 2, Kind: domain.KindAmountGreater, Category: domain.CategoryCondition, Label: "If amount greater than",
				Config: domain.Config{Amount: 1000, Comparison: "greater"}, Position: domain.Position{X: 200, Y: 40}},
			{ID: 3, Kind: domain.KindSendNotification, Category: domain.CategoryAction, Label: "Send email notification",
				Config: domain.Config{Recipient: "sales@x.com", Template: "urgent"}, Position: domain.Position{X: 320, Y: 250}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []rulefile.Format{rulefile.FormatJSON, rulefile.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, rulefile.Encode(&buf, format, sampleFile()))

			got, err := rulefile.Decode(&buf, format)
			require.NoError(t, err)
			if diff := cmp.Diff(sampleFile(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadWrite(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"rule.json", "rule.yaml", "nested/rule.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, rulefile.Write(path, sampleFile()))

			got, err := rulefile.Read(path)
			require.NoError(t, err)
			assert.Equal(t, sampleFile(), got)
		})
	}
}

func TestDecode_FillsCategoryAndLabel(t *testing.T) {
	src := `
version: 1
blocks:
  - id: 7
    kind: stock_below
    config:
      quantity: 5
`
	f, err := rulefile.Decode(strings.NewReader(src), rulefile.FormatYAML)
	require.NoError(t, err)
	require.Len(t, f.Blocks, 1)
	assert.Equal(t, domain.CategoryCondition, f.Blocks[0].Category)
	assert.Equal(t, "If stock level below", f.Blocks[0].Label)
	assert.Equal(t, float64(5), f.Blocks[0].Config.Quantity)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"wrong version", `{"version": 2, "blocks": []}`, rulefile.ErrUnsupportedVersion},
		{"missing version", `{"blocks": []}`, rulefile.ErrUnsupportedVersion},
		{"duplicate ids", `{"version": 1, "blocks": [
			{"id": 1, "kind": "email_received"},
			{"id": 1, "kind": "send_notification"}]}`, rulefile.ErrInvalidBlock},
		{"missing id", `{"version": 1, "blocks": [{"kind": "email_received"}]}`, rulefile.ErrInvalidBlock},
		{"unknown kind", `{"version": 1, "blocks": [{"id": 1, "kind": "launch_rocket"}]}`, palette.ErrUnknownKind},
		{"category mismatch", `{"version": 1, "blocks": [{"id": 1, "kind": "email_received", "category": "action"}]}`, rulefile.ErrInvalidBlock},
		{"foreign config key", `{"version": 1, "blocks": [{"id": 1, "kind": "email_received", "config": {"amount": 3}}]}`, palette.ErrUnexpectedKey},
		{"bad config value", `{"version": 1, "blocks": [{"id": 1, "kind": "send_notification", "config": {"template": "loud"}}]}`, palette.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rulefile.Decode(strings.NewReader(tt.src), rulefile.FormatJSON)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_UnknownJSONField(t *testing.T) {
	_, err := rulefile.Decode(strings.NewReader(`{"version": 1, "blocks": [], "owner": "me"}`), rulefile.FormatJSON)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	f, err := rulefile.FormatFromPath("a/b/rule.JSON")
	require.NoError(t, err)
	assert.Equal(t, rulefile.FormatJSON, f)

	f, err = rulefile.FormatFromPath("rule.yml")
	require.NoError(t, err)
	assert.Equal(t, rulefile.FormatYAML, f)

	_, err = rulefile.FormatFromPath("rule.toml")
	assert.ErrorIs(t, err, rulefile.ErrUnsupportedFormat)

	assert.True(t, rulefile.Supported("x.yaml"))
	assert.False(t, rulefile.Supported("x.txt"))
}
