package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractFixture = `
name: contract
namespaces:
  - name: Acme
    types:
      - name: Widget
        members:
          - kind: method
            name: Render
            parameters: [System.Int32]
          - kind: method
            name: Reset
`

const implementationFixture = `
name: implementation
namespaces:
  - name: Acme
    types:
      - name: Widget
        members:
          - kind: method
            name: Render
            parameters: [System.Int32]
`

type fixture struct {
	dir      string
	contract string
	impl     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		contract: filepath.Join(dir, "contract.yaml"),
		impl:     filepath.Join(dir, "implementation.yaml"),
	}

	require.NoError(t, os.WriteFile(f.contract, []byte(contractFixture), 0o600))
	require.NoError(t, os.WriteFile(f.impl, []byte(implementationFixture), 0o600))

	return f
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), append([]string{"--color", "never"}, args...), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

const removedReset = "MemberMustExist : Member 'Acme.Widget.Reset()' does not exist in the implementation " +
	"but it does exist in the contract.\n"

func TestDiff_Incompatible(t *testing.T) {
	f := newFixture(t)

	code, out, _ := run(t, "diff", f.contract, f.impl)

	assert.Equal(t, exitIncompatible, code)
	assert.Equal(t, "Compat issues with contract:\n"+removedReset+"Total Issues: 1\n", out)
}

func TestDiff_Identical(t *testing.T) {
	f := newFixture(t)

	code, out, _ := run(t, "diff", f.contract, f.contract)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Compat issues with contract:\nTotal Issues: 0\n", out)
}

func TestDiff_Baseline(t *testing.T) {
	f := newFixture(t)
	bl := filepath.Join(f.dir, "baseline.yaml")

	code, out, _ := run(t, "diff", "--write-baseline", bl, f.contract, f.impl)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Wrote 1 suppressions")

	code, out, _ = run(t, "diff", "-b", bl, f.contract, f.impl)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Compat issues with contract:\nTotal Issues: 0 (1 suppressed by baseline)\n", out)
}

func TestDiff_StaleBaseline(t *testing.T) {
	f := newFixture(t)
	bl := filepath.Join(f.dir, "baseline.yaml")
	require.NoError(t, os.WriteFile(bl, []byte("suppressions:\n  - rule: TypeMustExist\n    key: T:Acme.Gone\n"), 0o600))

	cfg := filepath.Join(f.dir, "apicompat.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("validateBaseline: true\n"), 0o600))

	code, out, _ := run(t, "-c", cfg, "diff", "-b", bl, f.contract, f.contract)

	assert.Equal(t, exitOK, code, "stale entries warn but do not fail")
	assert.Contains(t, out, "warning: [T:Acme.Gone]: [stale_baseline]")
}

func TestDiff_JSON(t *testing.T) {
	f := newFixture(t)

	code, out, _ := run(t, "--format", "json", "diff", f.contract, f.impl)
	require.Equal(t, exitIncompatible, code)

	var got struct {
		Differences []struct {
			Rule string `json:"rule"`
			Key  string `json:"key"`
			Type string `json:"type"`
		} `json:"differences"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Differences, 1)
	assert.Equal(t, "MemberMustExist", got.Differences[0].Rule)
	assert.Equal(t, "M:Acme.Widget.Reset()", got.Differences[0].Key)
	assert.Equal(t, "Removed", got.Differences[0].Type)
}

func TestDiff_Errors(t *testing.T) {
	f := newFixture(t)

	code, _, stderr := run(t, "diff", filepath.Join(f.dir, "missing.yaml"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "error:")

	code, _, _ = run(t, "--format", "xml", "diff", f.contract)
	assert.Equal(t, exitError, code)

	code, _, _ = run(t, "diff")
	assert.Equal(t, exitError, code)
}

func TestBatch(t *testing.T) {
	f := newFixture(t)
	manifest := filepath.Join(f.dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
jobs:
  - name: same
    sides: [contract.yaml, contract.yaml]
  - name: broken
    sides: [contract.yaml, implementation.yaml]
`), 0o600))

	code, out, _ := run(t, "batch", "-j", "2", manifest)

	assert.Equal(t, exitIncompatible, code)
	assert.Equal(t,
		"Compat issues with same:\nTotal Issues: 0\n"+
			"Compat issues with broken:\n"+removedReset+"Total Issues: 1\n",
		out)
}

func TestRules(t *testing.T) {
	code, out, _ := run(t, "rules")
	require.Equal(t, exitOK, code)

	assert.Contains(t, out, "TypeMustExist")
	assert.Regexp(t, `ParameterTypeCannotChange\s+advisory\s+on`, out)
	assert.Regexp(t, `ElementAdded\s+strict\s+off`, out)
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	snap := filepath.Join(f.dir, "result.msgpack")

	code, _, _ := run(t, "snapshot", "write", snap, f.contract, f.impl)
	require.Equal(t, exitOK, code)

	code, out, _ := run(t, "snapshot", "verify", snap, f.contract, f.impl)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Result matches snapshot\n", out)

	code, _, stderr := run(t, "snapshot", "verify", snap, f.contract, f.contract)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "does not match snapshot")

	code, out, _ = run(t, "snapshot", "show", snap)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, removedReset)
}
