package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/ngxconf/conf"
)

func TestSet(t *testing.T) {
	out, err := exec(t, &Set{Source: stdinSource, Path: "http:server[1]:listen", Args: []string{"8443", "ssl"}}, sample)
	require.NoError(t, err)
	assert.Contains(t, out, "listen 8443 ssl;")
	assert.Contains(t, out, "listen 80;")
}

func TestSet_Create(t *testing.T) {
	_, err := exec(t, &Set{Source: stdinSource, Path: "http:gzip", Args: []string{"on"}}, sample)
	require.ErrorIs(t, err, conf.ErrNotFound)

	out, err := exec(t, &Set{Create: true, Source: stdinSource, Path: "http:gzip", Args: []string{"on"}}, sample)
	require.NoError(t, err)
	assert.Contains(t, out, "    gzip on;\n}\n")

	out, err = exec(t, &Set{Create: true, Source: stdinSource, Path: "worker_processes", Args: []string{"auto"}}, "events {}\n")
	require.NoError(t, err)
	assert.Equal(t, "events {\n}\nworker_processes auto;\n", out)

	_, err = exec(t, &Set{Create: true, Source: stdinSource, Path: "nope:gzip", Args: []string{"on"}}, sample)
	require.ErrorIs(t, err, ErrUnknownParent)

	_, err = exec(t, &Set{Create: true, Source: stdinSource, Path: "http:gzip[2]", Args: []string{"on"}}, sample)
	require.ErrorIs(t, err, conf.ErrNotFound)
}

func TestSet_Write(t *testing.T) {
	path := tempFile(t, "listen 80;\n")

	out, err := exec(t, &Set{Output: Output{Write: true}, Source: path, Path: "listen", Args: []string{"81"}}, "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "listen 81;\n", readFile(t, path))
}

func TestDel(t *testing.T) {
	out, err := exec(t, &Del{Path: "http:server[0]", Source: stdinSource}, sample)
	require.NoError(t, err)
	assert.NotContains(t, out, "listen 80;")
	assert.Contains(t, out, "listen 443 ssl;")

	_, err = exec(t, &Del{Path: "http:server[5]", Source: stdinSource}, sample)
	require.ErrorIs(t, err, conf.ErrNotFound)
}

func TestDisableEnable(t *testing.T) {
	path := tempFile(t, "server {\n    listen 80;\n    gzip on;\n}\n")

	_, err := exec(t, &Disable{Output: Output{Write: true}, Path: "server:gzip", Source: path}, "")
	require.NoError(t, err)
	assert.Equal(t, "server {\n    listen 80;\n    # gzip on;\n}\n", readFile(t, path))

	_, err = exec(t, &Enable{Output: Output{Write: true}, Path: "server:gzip", Source: path}, "")
	require.NoError(t, err)
	assert.Equal(t, "server {\n    listen 80;\n    gzip on;\n}\n", readFile(t, path))

	_, err = exec(t, &Enable{Path: "server:gzip", Source: path}, "")
	require.ErrorIs(t, err, conf.ErrNotFound)

	_, err = exec(t, &Disable{Path: "server:nope", Source: path}, "")
	require.ErrorIs(t, err, conf.ErrNotFound)
}
