package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf := MustLoad(path)

		// Then: the remaining fields fall back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "board:events", conf.Journal.Key)
		assert.Equal(t, int64(100), conf.Journal.Limit)
		assert.Equal(t, "cookiemilk", conf.Metrics.Namespace)
	})

	t.Run("Reads nested sections", func(t *testing.T) {
		// Given: a config file with every section set
		path := writeConfig(t, `
http-port: "8000"
redis:
  host: redis
  port: "6380"
journal:
  key: events
  limit: 5
metrics:
  namespace: board
`)

		// When: loading it
		conf := MustLoad(path)

		// Then: the file values are used
		assert.Equal(t, "8000", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "events", conf.Journal.Key)
		assert.Equal(t, int64(5), conf.Journal.Limit)
		assert.Equal(t, "board", conf.Metrics.Namespace)
	})

	t.Run("Panics on a journal limit below one", func(t *testing.T) {
		for _, limit := range []string{"0", "-3"} {
			// Given: a config file with a journal limit that cannot cap the list
			path := writeConfig(t, "journal:\n  limit: "+limit+"\n")

			// When / Then: loading it panics
			assert.Panics(t, func() { MustLoad(path) }, limit)
		}
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	assert.Empty(t, (&Redis{Host: "", Port: "6379"}).GetRedisAddr())
	assert.Equal(t, "cache:6379", (&Redis{Host: "cache", Port: "6379"}).GetRedisAddr())
}
