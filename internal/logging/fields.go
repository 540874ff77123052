package logging

// Structured log field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run settings.
	FieldJobs     = "jobs"
	FieldFormat   = "format"
	FieldEmbedded = "embedded"
	FieldRunID    = "run_id"

	// Document shape.
	FieldRegions = "regions"
	FieldRows    = "rows"
	FieldColumns = "columns"
	FieldOffset  = "offset"
	FieldDigest  = "digest"

	// Run statistics.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Query and export.
	FieldExpression = "expression"
	FieldMatched    = "matched"
	FieldTable      = "table"
	FieldDatabase   = "database"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule listings.
	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldEnabled     = "enabled"
	FieldTags        = "tags"
	FieldDescription = "description"
	FieldPack        = "pack"
)
