package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProducts(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	path = filepath.Join(dir, "products.json")
	body := `[{"code":"PP-100","name":"Rope","colour":"Red","type":"PP"},
	          {"code":"PU-300","name":"Belt","colour":"Black","type":"PU","pdf":"https://example.com/pu.pdf"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return dir, path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	dir, products := writeProducts(t)
	config := filepath.Join(dir, "none.toml")

	out, err := execute(t, "--config", config, "--source", products, "list", "--category", "pu")
	require.NoError(t, err)
	assert.Contains(t, out, "PU-300")
	assert.Contains(t, out, "https://example.com/pu.pdf")
	assert.NotContains(t, out, "PP-100")
}

func TestExportCommandWritesFile(t *testing.T) {
	dir, products := writeProducts(t)
	target := filepath.Join(dir, "out.html")

	_, err := execute(t, "--config", filepath.Join(dir, "none.toml"), "--source", products,
		"export", "-q", "rope", "-o", target)
	require.NoError(t, err)

	page, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(page), "PP-100")
	assert.NotContains(t, string(page), "PU-300")
}

func TestListCommandFailsOnBadSource(t *testing.T) {
	dir, _ := writeProducts(t)

	_, err := execute(t, "--config", filepath.Join(dir, "none.toml"),
		"--source", filepath.Join(dir, "missing.json"), "list")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "(fetch)"), "err = %v", err)
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "unexpected")
	require.Error(t, err)
}
