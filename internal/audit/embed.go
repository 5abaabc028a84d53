package audit

import "embed"

// MigrationFS embeds the audit log's schema migrations into the compiled
// binary. At runtime, no migration files need to exist on disk.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
