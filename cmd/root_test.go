package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	chdir(t, t.TempDir())
	in := filepath.Join(t.TempDir(), "lab")
	out := filepath.Join(t.TempDir(), "tg")
	require.NoError(t, os.MkdirAll(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.lab"), []byte("0 0.5 silB\n0.5 0.6 a\n0.6 0.7 n\n0.7 1 silE\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.lab"), []byte("0 0.5\n"), 0o644))

	stdout, err := execute(t, "convert", "--in", in, "--out", out, "--mora")
	require.NoError(t, err)
	assert.Equal(t, "processed=1 skipped=1\n", stdout)

	data, err := os.ReadFile(filepath.Join(out, "a.TextGrid"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "mora" `)
	assert.Contains(t, string(data), `text = "an" `)
}

func TestConvertCommandFromConfigAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	in := filepath.Join(dir, "lab")
	require.NoError(t, os.MkdirAll(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.lab"), []byte("0 1 a\n"), 0o644))
	require.NoError(t, os.WriteFile("labgrid.yaml", []byte("paths:\n  input: lab\n  output: ignored\n"), 0o644))
	t.Setenv("LABGRID_PATHS_OUTPUT", filepath.Join(dir, "from-env"))

	stdout, err := execute(t, "convert")
	require.NoError(t, err)
	assert.Equal(t, "processed=1 skipped=0\n", stdout)
	assert.FileExists(t, filepath.Join(dir, "from-env", "a.TextGrid"))
	assert.NoDirExists(t, filepath.Join(dir, "ignored"))
}

func TestConvertCommandMissingPaths(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paths.input")
}

func TestTierKeywordsCommand(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	grid := "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n0\n1\n<exists>\n1\n\"IntervalTier\"\n\"words\"\n0\n1\n2\n0\n0.5\n\"green\"\n0.5\n1\n\"tea\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.TextGrid"), []byte(grid), 0o644))

	stdout, err := execute(t, "tier", "keywords", "-i", dir, "-o", dir, "-k", "green,go", "--tier", "Target")
	require.NoError(t, err)
	assert.Equal(t, "processed=1 skipped=0\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, "x.TextGrid"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"Target\"\n0\n1\n2\n0\n0.5\n\"green\"\n0.5\n1\n\"\"\n")
}

func TestTierKeywordsFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	grid := "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n0\n1\n<exists>\n1\n\"IntervalTier\"\n\"words\"\n0\n1\n1\n0\n1\n\"green\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.TextGrid"), []byte(grid), 0o644))
	t.Setenv("LABGRID_TIERS_KEYWORDS", "green,go")

	stdout, err := execute(t, "tier", "keywords", "-i", dir, "-o", dir)
	require.NoError(t, err)
	assert.Equal(t, "processed=1 skipped=0\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, "x.TextGrid"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"TargetWord\"\n0\n1\n1\n0\n1\n\"green\"\n")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "labgrid dev\n", stdout)
}
