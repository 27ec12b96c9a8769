package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/site"
)

func TestNative(t *testing.T) {
	out, err := exec(t, &Native{Source: stdinSource}, "events{worker_connections 512;}")
	require.NoError(t, err)
	assert.Equal(t, "events {\n    worker_connections 512;\n}\n", out)
}

func TestNative_Diff(t *testing.T) {
	out, err := exec(t, &Native{Diff: true, Source: stdinSource}, "a;\nb  c;\n")
	require.NoError(t, err)
	assert.Equal(t, " a;\n-b  c;\n+b c;\n", out)

	out, err = exec(t, &Native{Diff: true, Source: stdinSource}, sample)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNative_Write(t *testing.T) {
	path := tempFile(t, "a{b;}")

	out, err := exec(t, &Native{Write: true, Source: path}, "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "a {\n    b;\n}\n", readFile(t, path))

	_, err = exec(t, &Native{Write: true, Diff: true, Source: path}, "")
	require.ErrorIs(t, err, ErrDiffAndWrite)

	_, err = exec(t, &Native{Write: true, Source: stdinSource}, "a{b;}")
	require.ErrorIs(t, err, ErrWriteStdin)
}

func TestJSON(t *testing.T) {
	out, err := exec(t, &JSON{Indent: 0, Source: stdinSource}, "# hi\nlisten 80;\n")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, " hi", got[0]["comment"])
	assert.Equal(t, "listen", got[1]["name"])
	assert.Equal(t, []any{"80"}, got[1]["args"])
}

func TestYAML(t *testing.T) {
	out, err := exec(t, &YAML{Indent: 2, Source: stdinSource}, "server { listen 80; }")
	require.NoError(t, err)
	assert.Contains(t, out, "name: server")
	assert.Contains(t, out, "name: listen")
}

func TestTree(t *testing.T) {
	out, err := exec(t, &Tree{Source: stdinSource}, "server { listen 80; }")
	require.NoError(t, err)
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "listen")
}

func TestLineDiff(t *testing.T) {
	assert.Empty(t, lineDiff("x\n", "x\n"))
	assert.Equal(t, "-x\n\\ No newline at end of file\n+x\n", lineDiff("x", "x\n"))
}

func TestNative_WriteRefusesLossyOutput(t *testing.T) {
	src := "server {\n    add_header X \"a#b\";\n}\n"
	path := tempFile(t, src)

	_, err := exec(t, &Native{Write: true, Source: path}, "")
	require.ErrorIs(t, err, ErrNotCanonical)
	assert.Equal(t, src, readFile(t, path))
}

func TestEdit_WriteRefusesLossyOutput(t *testing.T) {
	src := "set $x \"\\\"q\";\nlisten 80;\n"
	path := tempFile(t, src)

	_, err := exec(t, &Set{Output: Output{Write: true}, Source: path, Path: "listen", Args: []string{"81"}}, "")
	require.ErrorIs(t, err, ErrNotCanonical)
	assert.Equal(t, src, readFile(t, path))
}

func TestApply_RefusesLossyOutput(t *testing.T) {
	src := "return 200 \"a\nb\";\n"
	path := tempFile(t, src)

	var calls int

	count := site.RunnerFunc(func(context.Context, string, ...string) ([]byte, []byte, error) {
		calls++

		return nil, nil, nil
	})

	_, err := exec(t, &Set{Output: Output{Apply: true}, Create: true, Source: path, Path: "gzip", Args: []string{"on"}},
		"", site.WithRunner(count))
	require.ErrorIs(t, err, ErrNotCanonical)
	assert.Equal(t, src, readFile(t, path))
	assert.Zero(t, calls)
}

func TestCanonical(t *testing.T) {
	cfg, err := conf.ParseString(t.Context(), "a { b \"c d\"; }")
	require.NoError(t, err)

	text, cerr := canonical(cfg)
	require.Nil(t, cerr)
	assert.Equal(t, "a {\n    b \"c d\";\n}\n", text)

	cfg, err = conf.ParseString(t.Context(), `b "x#y";`)
	require.NoError(t, err)

	_, cerr = canonical(cfg)
	require.ErrorIs(t, cerr, ErrNotCanonical)
}
