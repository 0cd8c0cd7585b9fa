package output

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Writer = &buf
	SetupLogging(cfg)
	t.Cleanup(func() { SetupLogging(LogConfig{}) })
	return &buf
}

func TestSetupLogging_TimestampDefaultOn(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Info("hello")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(t, LogConfig{Timestamps: BoolPtr(false)})
	Info("hello")
	out := strings.TrimSpace(buf.String())
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, out)
	assert.Contains(t, out, "hello")
}

func TestSetupLogging_VerboseForcesTimestampsAndDebug(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	Debug("verbose-msg", "key", "value")

	out := strings.TrimSpace(buf.String())
	assert.Contains(t, out, "verbose-msg")
	assert.Contains(t, out, "key=value")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, out)
	assert.Equal(t, log.DebugLevel, Logger().GetLevel())
}

func TestSetupLogging_DefaultInfoLevel(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Debug("hidden")
	assert.Empty(t, buf.String())
	assert.Equal(t, log.InfoLevel, Logger().GetLevel())
}

func TestScopedLoggers(t *testing.T) {
	captureLog(t, LogConfig{Verbose: true})

	target := TargetLogger("cursor-rules")
	assert.Contains(t, target.GetPrefix(), "cursor-rules")
	assert.Equal(t, log.DebugLevel, target.GetLevel())

	tool := ToolLogger("codex-cli")
	assert.Contains(t, tool.GetPrefix(), "codex-cli")
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "text, json, yaml")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderPathTree(t *testing.T) {
	out := RenderPathTree("repo", []string{"src/AGENTS.md", "AGENTS.md", ".cursor/rules/global.mdc"})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "repo/")
	assert.Equal(t, "├── .cursor/", lines[1])
	assert.Equal(t, "│   └── rules/", lines[2])
	assert.Equal(t, "│       └── global.mdc", lines[3])
	assert.Equal(t, "├── src/", lines[4])
	assert.Equal(t, "│   └── AGENTS.md", lines[5])
	assert.Equal(t, "└── AGENTS.md", lines[6])

	assert.Empty(t, RenderPathTree("repo", nil))
}

func TestRenderFileTree_Descriptions(t *testing.T) {
	out := RenderFileTree("out", map[string]string{"AGENTS.md": "12 B"})
	assert.Contains(t, out, "└── AGENTS.md")
	assert.Contains(t, out, "12 B")
}

func TestTable(t *testing.T) {
	tbl := NewTable("ID", "NAME").Row("agents-md", "AGENTS.md").Row("cursor-rules", "Cursor")
	assert.Equal(t, 2, tbl.Len())

	out := tbl.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "agents-md")
	assert.Contains(t, out, "Cursor")
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatFileLine("AGENTS.md", StatusAdded), "AGENTS.md")
	assert.Contains(t, FormatFileLine("AGENTS.md", StatusAdded), StatusAdded)
	assert.Equal(t, "1 file", FormatCount(1, "file"))
	assert.Equal(t, "3 files", FormatCount(3, "file"))
}

func TestRenderDrift(t *testing.T) {
	styles := GetStyles()

	assert.Equal(t, "No drift: 2 files up to date.\n", RenderDrift(nil, nil, 2, styles))

	out := RenderDrift(
		[]string{"lib/AGENTS.md"},
		[]ModifiedItem{{Path: "AGENTS.md", Diff: "body\n  - old\n  + new"}, {Path: "x.mdc"}},
		1, styles)
	assert.Contains(t, out, "lib/AGENTS.md")
	assert.Contains(t, out, "    body\n")
	assert.Contains(t, out, "(formatting only)")
	assert.Contains(t, out, "Summary: 1 added, 2 modified, 1 unchanged")
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\n\nb", "  "))
}

func TestRunWithSpinner_NoTTY(t *testing.T) {
	// Tests run without a terminal on stdout, so the action runs inline.
	called := false
	err := RunWithSpinner(context.Background(), func(context.Context) error {
		called = true
		return errors.New("boom")
	}, WithTitle("Scanning"))
	assert.True(t, called)
	assert.EqualError(t, err, "boom")
}
