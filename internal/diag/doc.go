// Package diag defines the diagnostic model shared by every compiler phase.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX/SYN/SEM/IO/PRJ ranges, see codes.go), a short Message, the
// Primary source.Pos and optional Notes pointing at related positions (for
// example the first declaration of a duplicated name).
//
// Phases emit through a Reporter so they never depend on storage. BagReporter
// collects into a Bag which supports limits, sorting and deduplication.
// ReportBuilder chains notes before Emit.
//
// Rendering lives in internal/diagfmt. FormatShort here is the stable
// single-line form used by tests and the --format short CLI output.
package diag
