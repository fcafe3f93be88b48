package std

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const konfigYaml = `
mode: development
app:
  name: toolkit
query:
  default-page-size: 25
numbers:
  duration: 5s
slices:
  strings: [a, b, c]
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewKonfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", konfigYaml)
	t.Setenv("APP_APP_NAME", "from-env")

	cfg, err := NewKonfig(WithFilePath(path), WithEnvPrefix("APP"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GetString("mode"))
	assert.Equal(t, "from-env", cfg.GetString("app.name"), "环境变量应覆盖配置文件")
	assert.Equal(t, 25, cfg.GetInt("query.default-page-size"))
	assert.Equal(t, 5*time.Second, cfg.GetDuration("numbers.duration"))
	assert.Equal(t, []string{"a", "b", "c"}, cfg.GetStringSlice("slices.strings"))
	assert.True(t, cfg.IsSet("app.root"))
}

func TestKonfigProfiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "profiles:\n  active: test, missing\nquery:\n  default-page-size: 25\n")
	writeConfig(t, dir, "config-test.yaml", "query:\n  default-page-size: 50\n")

	cfg, err := NewKonfig(WithFilePath(path))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.GetInt("query.default-page-size"))
}

func TestKonfigUnsupportedType(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", "mode = 'dev'")
	_, err := NewKonfig(WithFilePath(path))
	assert.Error(t, err)
}

func TestKonfigDefaults(t *testing.T) {
	cfg, err := NewKonfig()
	require.NoError(t, err)
	require.NoError(t, cfg.LoadBytes([]byte(konfigYaml)))

	cfg.SetDefault("query.default-page-size", 10)
	cfg.SetDefault("query.default-page", 1)
	assert.Equal(t, 25, cfg.GetInt("query.default-page-size"), "已存在的值不应被默认值覆盖")
	assert.Equal(t, 1, cfg.GetInt("query.default-page"))

	require.NoError(t, cfg.SetDefaults(map[string]interface{}{
		"app.name":  "default-name",
		"log.level": "warn",
	}))
	assert.Equal(t, "toolkit", cfg.GetString("app.name"))
	assert.Equal(t, "warn", cfg.GetString("log.level"))
}

func TestKonfigUnmarshalKey(t *testing.T) {
	cfg, err := NewKonfig()
	require.NoError(t, err)
	require.NoError(t, cfg.LoadBytes([]byte(konfigYaml)))

	var q QueryConfig
	require.NoError(t, cfg.UnmarshalKey("query", &q))
	assert.Equal(t, 25, q.DefaultPageSize)
	assert.Zero(t, q.DefaultPage)
}
