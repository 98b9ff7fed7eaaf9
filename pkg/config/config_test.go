package config

import (
	"os"
	"testing"

	"github.com/matryer/is"
)

func TestParseEnvOverrides(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	is.NoErr(os.Setenv("LENSKEEP_NAME", "Test studio hub"))
	is.NoErr(os.Setenv("LENSKEEP_DATA_PATH", td))
	is.NoErr(os.Setenv("LENSKEEP_DB_DRIVER", "postgres"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("LENSKEEP_NAME"))
		is.NoErr(os.Unsetenv("LENSKEEP_DATA_PATH"))
		is.NoErr(os.Unsetenv("LENSKEEP_DB_DRIVER"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.Name, "Test studio hub")
	is.Equal(cfg.DB.Driver, "postgres")
}

func TestWriteAndParseConfig(t *testing.T) {
	is := is.New(t)
	cfg := &Config{
		DataPath: t.TempDir(),
		Name:     "Roundtrip",
		DB: DBConfig{
			Driver:     "sqlite",
			DataSource: "test.db",
		},
	}
	is.NoErr(cfg.WriteConfig())
	is.True(cfg.Exist())
	is.NoErr(cfg.Parse())
	is.Equal(cfg.Name, "Roundtrip")
}

func TestValidateSqlitePath(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	cfg := &Config{
		DataPath: td,
		DB: DBConfig{
			Driver:     "sqlite",
			DataSource: "lenskeep.db",
		},
	}
	is.NoErr(cfg.Validate())
	is.Equal(cfg.DB.DataSource[:len(td)], td)
}
