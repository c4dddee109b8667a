package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dupscan/dupscan/internal/detector"
	"github.com/dupscan/dupscan/internal/report"
	"github.com/dupscan/dupscan/pkg/method"
)

func sampleGroups() []detector.Group {
	rep := method.NewRecord(method.Info{
		Name:      "Add",
		FilePath:  "a.go",
		StartLine: 1,
		EndLine:   10,
	}, nil)

	dup := method.NewRecord(method.Info{
		Name:      "Sum",
		FilePath:  "b.go",
		StartLine: 5,
		EndLine:   14,
	}, nil)

	return []detector.Group{
		{
			Representative: rep,
			Entries: []detector.Entry{
				{Method: dup, Similarity: 0.95, Impact: 19},
			},
			TotalImpact: 19,
		},
	}
}

func TestRender_TextFormatIncludesMethodNamesAndSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.Render(&buf, sampleGroups(), report.Options{Format: report.FormatText}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Add")
	assert.Contains(t, out, "Sum")
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "b.go")
	assert.Contains(t, out, "methods")
}

func TestRender_JSONFormatIsValidAndRoundTrips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.Render(&buf, sampleGroups(), report.Options{Format: report.FormatJSON, RunID: "run-1"}, nil)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)

	rep := decoded[0]["representative"].(map[string]any)
	assert.Equal(t, "Add", rep["full_name"])

	dups := decoded[0]["duplicates"].([]any)
	require.Len(t, dups, 1)
	assert.Equal(t, "Sum", dups[0].(map[string]any)["full_name"])
}

func TestRender_YAMLFormatIsValid(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.Render(&buf, sampleGroups(), report.Options{Format: report.FormatYAML}, nil)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
}

func TestRender_EmptyGroupsProducesNoError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.Render(&buf, nil, report.Options{Format: report.FormatText}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0 groups")
}

func TestRender_PrintIncludesCodeSlicesViaSourceLoader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	loader := func(path string, startLine, endLine int) ([]string, error) {
		return []string{"func X() {}"}, nil
	}

	err := report.Render(&buf, sampleGroups(), report.Options{Format: report.FormatText, PrintAll: true}, loader)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "func X() {}")
}

func TestRender_GroupIDsAreStableForSameRunAndRepresentative(t *testing.T) {
	t.Parallel()

	var buf1, buf2 bytes.Buffer

	groups := sampleGroups()

	require.NoError(t, report.Render(&buf1, groups, report.Options{Format: report.FormatJSON, RunID: "r"}, nil))
	require.NoError(t, report.Render(&buf2, groups, report.Options{Format: report.FormatJSON, RunID: "r"}, nil))

	assert.Equal(t, buf1.String(), buf2.String())
}
