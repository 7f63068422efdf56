package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is the well-formed ten-rule document used across tests.
const fixture = "../../testdata/powerof10.md"

// execute runs the CLI with args and returns stdout+stderr and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// brokenFixture writes a copy of the fixture with rule 5's rationale
// heading removed and returns its path.
func brokenFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	segments := strings.Split(string(data), "----------------------------------------------------------------------")
	require.Greater(t, len(segments), 5)
	segments[5] = strings.Replace(segments[5], "Rationale:\n", "", 1)

	path := filepath.Join(t.TempDir(), "broken.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(segments, "----------------------------------------------------------------------")), 0o644))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	require.ErrorAs(t, err, &ee)
	return ee.code
}

func TestCheck_WellFormed(t *testing.T) {
	out, err := execute(t, "check", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "10 rules OK")
	assert.Contains(t, out, "sha256:")
}

func TestCheck_MissingRationale(t *testing.T) {
	out, err := execute(t, "check", brokenFixture(t))
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "MISSING_SECTION")
	assert.Contains(t, err.Error(), "segment 5")
	assert.NotContains(t, out, "rules OK")
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := execute(t, "check", "/nonexistent/rules.md")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(t, err))
}

func TestList_Table(t *testing.T) {
	out, err := execute(t, "list", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "simple control flow")
	assert.Contains(t, out, "zero warnings")
}

func TestShow_Rule3(t *testing.T) {
	out, err := execute(t, "show", fixture, "3")
	require.NoError(t, err)
	assert.Contains(t, out, "dynamic memory allocation")
	assert.Contains(t, out, "Rationale:")
	assert.Contains(t, out, "sample_buf")
}

func TestShow_IndexOutOfRange(t *testing.T) {
	for _, index := range []string{"0", "11"} {
		_, err := execute(t, "show", fixture, index)
		require.Error(t, err, "show %s", index)
		assert.Equal(t, 2, exitCode(t, err))
		assert.Contains(t, err.Error(), "INDEX_OUT_OF_RANGE")
	}
}

func TestShow_NonNumericIndex(t *testing.T) {
	_, err := execute(t, "show", fixture, "three")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(t, err))
}

func TestDiff_Pretty(t *testing.T) {
	out, err := execute(t, "diff", fixture, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "result *= i;")
}

func TestDiff_PatchFormat(t *testing.T) {
	out, err := execute(t, "diff", fixture, "1", "--patch")
	require.NoError(t, err)
	assert.Contains(t, out, "@@")
}

func TestExport_JSON(t *testing.T) {
	out, err := execute(t, "export", fixture)
	require.NoError(t, err)

	var listing struct {
		Hash  string `json:"hash"`
		Rules []struct {
			Index int    `json:"index"`
			Title string `json:"title"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.True(t, strings.HasPrefix(listing.Hash, "sha256:"))
	require.Len(t, listing.Rules, 10)
	assert.Equal(t, 1, listing.Rules[0].Index)
}

func TestExport_MarkdownToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "rules.md")
	_, err := execute(t, "export", fixture, "--format", "md", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Coding Rules")
}

func TestExport_InvalidFormat(t *testing.T) {
	_, err := execute(t, "export", fixture, "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(t, err))
}

func TestCheck_CustomMarkersViaFlags(t *testing.T) {
	// A document using alternate headings parses once the convention is
	// overridden on the command line.
	var sb strings.Builder
	sb.WriteString("Header\n")
	for i := 1; i <= 10; i++ {
		sb.WriteString("==========\n")
		sb.WriteString("Rule " + string(rune('0'+i%10)) + "\n\nWhy:\nReason.\n\nGood:\n```\nok();\n```\n")
	}
	sb.WriteString("==========\n")

	path := filepath.Join(t.TempDir(), "alt.md")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	out, err := execute(t, "check", path,
		"--separator", "=",
		"--explanation-marker", "Why:",
		"--compliant-marker", "Good:",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "10 rules OK")
}

func TestCheck_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rulebook.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("explanation_marker: \"Why:\"\n"), 0o644))

	// The fixture uses "Rationale:", so overriding the marker breaks it.
	_, err := execute(t, "check", fixture, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "MISSING_SECTION")
}

func TestRootCmd_HasAllSubcommands(t *testing.T) {
	root := newRootCmd()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"check", "list", "show", "diff", "export", "watch"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestExitErr_RoundTrip(t *testing.T) {
	err := codeError(2, "bad document: %s", "detail")
	var ee *exitErr
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.code)
	assert.Equal(t, "bad document: detail", ee.Error())
}
