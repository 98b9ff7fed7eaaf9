package config

import (
	"fmt"
	"strings"
)

// newConfigFile returns the YAML contents written to a fresh config file.
func newConfigFile(cfg *Config) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return strings.TrimSpace(fmt.Sprintf(`# Lenskeep server configuration.

# The name of the server.
name: %q

# The HTTP server configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: %q

  # The public URL of the HTTP server.
  public_url: %q

# The stats server configuration.
stats:
  # The address on which the stats server will listen.
  listen_addr: %q

# The logger configuration.
log:
  # The format of the logs. Valid values are "json", "logfmt", and "text".
  format: %q

  # The time format for the log "ts" field.
  time_format: %q

# The database configuration.
db:
  # The database driver to use. Valid values are "sqlite" and "postgres".
  driver: %q

  # The database data source name.
  data_source: %q

# The cron jobs configuration.
jobs:
  # The cron spec for expiring stale invitations.
  invitation_sweep: %q

# The studio invitations configuration.
invitations:
  # The HMAC key used to sign invitation tokens.
  token_signing_key: %q
`,
		cfg.Name,
		cfg.HTTP.ListenAddr,
		cfg.HTTP.PublicURL,
		cfg.Stats.ListenAddr,
		cfg.Log.Format,
		cfg.Log.TimeFormat,
		cfg.DB.Driver,
		cfg.DB.DataSource,
		cfg.Jobs.InvitationSweep,
		cfg.Invitations.TokenSigningKey,
	)) + "\n"
}
