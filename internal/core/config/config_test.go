package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	p := writeYAML(t, `
app:
  http:
    port: 9090
jwt:
  secret: from-file
  accesstokenttlmin: 15
db:
  driver: postgres
  dsn: postgres://u:p@localhost/blog
cors:
  alloworigins: ["https://blog.example"]
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "/api/v1", c.App.APIPrefix)
	assert.Equal(t, "from-file", c.JWT.Secret)
	assert.Equal(t, 15, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, []string{"https://blog.example"}, c.CORS.AllowOrigins)
	assert.Equal(t, 400, c.Limits.Burst)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_REDIS_ADDR", "localhost:6379")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
}

func TestLoadMissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "only-env")

	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, 60*24*90, c.JWT.AccessTokenTTLMin)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	_, err := Load(writeYAML(t, "app:\n  name: x\n"))
	assert.Error(t, err)
}

func TestValidateDriver(t *testing.T) {
	c := Default()
	c.JWT.Secret = "s"
	require.NoError(t, c.Validate())

	c.DB.Driver = "oracle"
	assert.Error(t, c.Validate())
}
