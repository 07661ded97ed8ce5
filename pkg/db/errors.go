package db

import (
	"fmt"
	"strings"
)

// ConfigError reports a caller-fixable configuration problem: conflicting
// include/ignore lists or requested tables that do not exist. Runtime query
// failures are never a ConfigError; those are converted to strings at the
// guarded boundary instead.
type ConfigError struct {
	Message string
	Missing []string // table names absent from the relevant set, if any
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Missing, ", "))
	}
	return e.Message
}

func missingTablesError(context string, missing []string) *ConfigError {
	return &ConfigError{
		Message: fmt.Sprintf("%s not found in database", context),
		Missing: missing,
	}
}
