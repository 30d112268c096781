package sqlite

import (
	"database/sql/driver"
	"strings"

	msqlite "modernc.org/sqlite"
)

// LowerFunc is a Unicode-aware LOWER registered on every connection.
// SQLite's built-in LOWER folds ASCII letters only.
const LowerFunc = "unicode_lower"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(LowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
