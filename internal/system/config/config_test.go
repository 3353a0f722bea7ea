package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ExpandsEnvAndAppliesDefaults(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "conf", "deployment.yaml"), []byte(`
auth:
  jwt_secret: "${PHONEBOOK_TEST_SECRET}"
datasource:
  type: sqlite
  path: /tmp/phonebook.db
phonebook:
  phone_prefix: "+49(0)851/509-"
  max_limit: 250
  leadership_cache_ttl: 90s
`), 0o600))
	t.Setenv("PHONEBOOK_TEST_SECRET", "s3cret")

	conf, err := LoadConfig(home, "conf/deployment.yaml")
	require.NoError(t, err)
	conf.ApplyDefaults()

	assert.Equal(t, "s3cret", conf.Auth.JWTSecret)
	assert.Equal(t, "sqlite", conf.DataSource.Type)
	assert.Equal(t, "INFO", conf.Log.LogLevel)
	assert.Equal(t, "root", conf.Auth.AdminPerm)
	assert.Equal(t, "Telefonbuch-Admin", conf.Auth.AdminRole)
	assert.Equal(t, 100, conf.Phonebook.DefaultLimit)
	assert.Equal(t, 250, conf.Phonebook.MaxLimit)
	assert.Equal(t, 500, conf.Phonebook.AllDefaultLimit)
	assert.Equal(t, []string{"yes", "always"}, conf.Phonebook.VisibleStates)
	assert.Equal(t, "Europe/Berlin", conf.Phonebook.Timezone)
	assert.Equal(t, 90*time.Second, conf.Phonebook.LeadershipTTL())
}

func TestLeadershipTTL_Fallback(t *testing.T) {
	assert.Equal(t, 5*time.Minute, PhonebookConfig{}.LeadershipTTL())
	assert.Equal(t, 5*time.Minute, PhonebookConfig{LeadershipCacheTTL: "soon"}.LeadershipTTL())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), "nope.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "deployment.yaml"), []byte("phonebook:\n  colour: red\n"), 0o600))

	_, err := LoadConfig(home, "deployment.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		conf := Config{
			Auth:       AuthConfig{JWTSecret: "s3cret"},
			DataSource: DataSourceConfig{Type: "sqlite", Path: "phonebook.db"},
		}
		conf.ApplyDefaults()
		return conf
	}

	conf := valid()
	assert.NoError(t, conf.Validate())

	cases := map[string]func(*Config){
		"unsupported type":    func(c *Config) { c.DataSource.Type = "oracle" },
		"sqlite without path": func(c *Config) { c.DataSource.Path = "" },
		"postgres without host": func(c *Config) {
			c.DataSource = DataSourceConfig{Type: "postgres", Name: "phonebook"}
		},
		"missing secret":    func(c *Config) { c.Auth.JWTSecret = "" },
		"max below default": func(c *Config) { c.Phonebook.MaxLimit = 10 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			conf := valid()
			mutate(&conf)
			assert.Error(t, conf.Validate())
		})
	}
}
