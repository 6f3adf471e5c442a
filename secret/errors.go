package secret

import "errors"

var (
	// ErrMissingEnv reports ${VAR} references to unset variables.
	ErrMissingEnv = errors.New("secret: missing environment variables")

	// ErrUnknownProvider reports a secretref naming an unregistered provider.
	ErrUnknownProvider = errors.New("secret: provider not registered")

	// ErrEmptySecret reports an empty value from a strict resolver.
	ErrEmptySecret = errors.New("secret: resolved value is empty")
)
