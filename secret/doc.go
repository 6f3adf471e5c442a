// Package secret resolves configuration values that may hold secrets.
//
// Values are first expanded against the environment with ExpandEnvStrict.
// A value of the form "secretref:<provider>:<ref>", whole or inline, is
// then replaced by what the named Provider returns. FileProvider reads
// mounted secret files, so a DSN can be configured as
//
//	DB_DSN=secretref:file:/run/secrets/catalog-dsn
package secret
