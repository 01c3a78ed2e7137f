package locals_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/byte4ever/tmplview/locals"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content []byte,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, content, 0o600))

	return pa
}

var wantNested = map[string]any{
	"name": "World",
	"user": map[string]any{"role": "admin"},
}

func assertNested(tb testing.TB, got map[string]any) {
	tb.Helper()

	assert.Equal(tb, wantNested["name"], got["name"])
	assert.Equal(tb, wantNested["user"], got["user"])
}

func TestMerge_extra_overrides_base(t *testing.T) {
	t.Parallel()

	base := map[string]any{"name": "John", "age": 3}
	extra := map[string]any{"name": "Jane"}

	got := locals.Merge(base, extra)

	assert.Equal(t, map[string]any{"name": "Jane", "age": 3}, got)
	assert.Equal(t, "John", base["name"])
	assert.Len(t, extra, 1)
}

func TestMerge_nil_inputs(t *testing.T) {
	t.Parallel()

	got := locals.Merge(nil, nil)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseAssignment(t *testing.T) {
	t.Parallel()

	name, val, err := locals.ParseAssignment("K=a=b")
	require.NoError(t, err)
	assert.Equal(t, "K", name)
	assert.Equal(t, "a=b", val)

	name, val, err = locals.ParseAssignment("EMPTY=")
	require.NoError(t, err)
	assert.Equal(t, "EMPTY", name)
	assert.Empty(t, val)
}

func TestParseAssignment_bad_format(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"NOEQUALS", "=value", ""} {
		_, _, err := locals.ParseAssignment(in)
		require.Error(t, err, in)
		assert.Contains(t, err.Error(), "NAME=value", in)
	}
}

func TestLoad_json(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "vars.json",
		[]byte(`{"name":"World","user":{"role":"admin"}}`),
	)

	got, err := locals.Load(pa)
	require.NoError(t, err)
	assertNested(t, got)
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".yaml", ".yml", ".YAML"} {
		pa := writeTemp(
			t, t.TempDir(), "vars"+ext,
			[]byte("name: World\nuser:\n  role: admin\n"),
		)

		got, err := locals.Load(pa)
		require.NoError(t, err, ext)
		assertNested(t, got)
	}
}

func TestLoad_toml(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "vars.toml",
		[]byte("name = \"World\"\n\n[user]\nrole = \"admin\"\n"),
	)

	got, err := locals.Load(pa)
	require.NoError(t, err)
	assertNested(t, got)
}

func TestLoad_msgpack(t *testing.T) {
	t.Parallel()

	data, err := msgpack.Marshal(wantNested)
	require.NoError(t, err)

	pa := writeTemp(t, t.TempDir(), "vars.msgpack", data)

	got, err := locals.Load(pa)
	require.NoError(t, err)
	assertNested(t, got)
}

func TestLoad_cbor(t *testing.T) {
	t.Parallel()

	data, err := cbor.Marshal(wantNested)
	require.NoError(t, err)

	pa := writeTemp(t, t.TempDir(), "vars.cbor", data)

	got, err := locals.Load(pa)
	require.NoError(t, err)
	assertNested(t, got)
}

func TestLoad_stamp_file(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "stable-status.txt",
		[]byte("GOOD value\r\nBADLINE\n\nMSG hello world from CI\n"),
	)

	got, err := locals.Load(pa)
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]any{
			"GOOD": "value",
			"MSG":  "hello world from CI",
		},
		got,
	)
}

func TestLoad_empty_yaml(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "vars.yaml", nil)

	got, err := locals.Load(pa)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoad_malformed(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "vars.json", []byte(`{"name":`),
	)

	_, err := locals.Load(pa)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading locals")
	assert.Contains(t, err.Error(), pa)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := locals.Load("/nonexistent/vars.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAll_later_files_override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first := writeTemp(
		t, dir, "a.json", []byte(`{"v":"1.0","a":"x"}`),
	)
	second := writeTemp(t, dir, "b.txt", []byte("v 2.0\n"))

	got, err := locals.LoadAll([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"v": "2.0", "a": "x"}, got)
}

func TestLoadAll_stops_on_error(t *testing.T) {
	t.Parallel()

	_, err := locals.LoadAll([]string{"/nonexistent/a.yaml"})
	require.Error(t, err)
}
