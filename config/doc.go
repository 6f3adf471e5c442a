// Package config loads the catalog service configuration from the
// environment. Secret-bearing values (DB_DSN, JWT_SECRET, API_KEYS) pass
// through a secret.Resolver, so they may be ${VAR} expansions or
// secretref:file:/path references to mounted files.
package config
