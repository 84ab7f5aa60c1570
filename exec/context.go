package exec

import (
	"github.com/freeeve/machdb/catalog"
	"github.com/freeeve/machdb/dblog"
)

// Context is the per-process execution environment: the shared
// Catalog (the only mutable shared state, per spec §5) and the
// Logger collaborator. Unlike the design this replaces, nothing here
// is statement-scoped global state — every statement's intermediate
// results (filtered indices, aggregate results, the pipeline's
// current table) live as local variables inside Executor.Exec, passed
// explicitly from one pipeline step to the next.
type Context struct {
	Catalog *catalog.Catalog
	Logger  dblog.Logger
}

// NewContext builds a Context around an existing catalog and logger.
func NewContext(cat *catalog.Catalog, logger dblog.Logger) *Context {
	if logger == nil {
		logger = dblog.Nop
	}
	return &Context{Catalog: cat, Logger: logger}
}
