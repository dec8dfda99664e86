package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path.Join(dir, name), []byte(content), 0o644))
}

func TestMustLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "public.yaml", `
http_port: 8080
jwt_ttl: 24h
max_board_width: 1000
max_board_height: 1000
log_level: debug
`)
	writeFile(t, dir, "private.yaml", `
pg:
  host: localhost
  port: 5432
  user: gridplace
  password: secret
  dbname: gridplace
jwt_key: testkey
`)

	cfg := MustLoad(dir)

	assert.Equal(t, 8080, cfg.Public.HttpPort)
	assert.Equal(t, 1000, cfg.Public.MaxBoardWidth)
	assert.Equal(t, "debug", cfg.Public.LogLevel)
	assert.Equal(t, "localhost", cfg.Private.Pg.Host)
	assert.Equal(t, "testkey", cfg.JwtKey())
}

func TestMustLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "public.yaml", "http_port: 8080")

	assert.Panics(t, func() { MustLoad(dir) })
}

func TestMustLoadInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "public.yaml", "http_port: [not an int")
	writeFile(t, dir, "private.yaml", "jwt_key: k")

	assert.Panics(t, func() { MustLoad(dir) })
}
