package catalog

import "errors"

// Sentinel errors for Catalog operations (spec §7 Schema/DDL kinds).
// Plain stdlib errors with fmt.Errorf wrapping is the teacher's own
// approach (parser.ParseError is a plain struct built with fmt only,
// no third-party errors library).
var (
	ErrTableExists     = errors.New("table already exists")
	ErrTableNotFound   = errors.New("table not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrTableLimit      = errors.New("table limit reached")
	ErrIndexNotFound   = errors.New("index not found")
	ErrNotNull         = errors.New("NOT NULL constraint violated")
	ErrUnique          = errors.New("UNIQUE constraint violated")
	ErrForeignKey      = errors.New("FOREIGN KEY constraint violated")
	ErrColumnMismatch  = errors.New("value count does not match column count")
)
