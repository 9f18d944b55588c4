package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  apiKeys:
    clinic-a: key-a
database:
  driver: postgres
  host: db
  port: 5432
  user: app
  password: secret
  name: reelcheck
resolver:
  endpoint: https://resolver.example.com/resolve
  apiKey: rk
  apiHost: resolver.example.com
literature:
  dedupe: true
groq:
  model: llama-3.3-70b-versatile
  apiKeys:
    - key-a
    - key-b
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, map[string]string{"clinic-a": "key-a"}, cfg.Server.APIKeys)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Literature.Dedupe)
	assert.Equal(t, []string{"key-a", "key-b"}, cfg.Groq.APIKeys)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", cfg.Literature.PubMedBaseURL)
	assert.Equal(t, "https://api.semanticscholar.org/graph/v1", cfg.Literature.SemanticScholarBaseURL)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)
	assert.False(t, cfg.Literature.Dedupe)
}

func TestLoadAppendsKeysFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY_1", "env-1")
	t.Setenv("GROQ_API_KEY_2", "env-2")

	path := writeConfig(t, "groq:\n  apiKeys:\n    - file-key\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"file-key", "env-1", "env-2"}, cfg.Groq.APIKeys)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSNHelpers(t *testing.T) {
	var cfg Config
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.User = "root"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "reelcheck"

	assert.Equal(t,
		"root:pw@tcp(localhost:3306)/reelcheck?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())
	assert.Equal(t,
		"host=localhost port=3306 user=root password=pw dbname=reelcheck sslmode=disable",
		cfg.PostgresDSN())
}
