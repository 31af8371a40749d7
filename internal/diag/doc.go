// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer / parser / type-checking passes and by document
//     scanning.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag performs no formatting, IO, or CLI integration. Rendering
// responsibilities live in internal/diagfmt; orchestration lives in the
// engine and CLI layers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional suggested edits; data only, never applied here.
//
// Notes should be used sparingly: each note must add new context (e.g. "name
// declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The parser
// constructs a ReportBuilder via NewReportBuilder (or the ReportError /
// ReportWarning / ReportInfo helpers) and chains WithNote / WithFix before
// calling Emit. When no extra metadata is needed, phases call
// Reporter.Report directly. BagReporter aggregates into a Bag, which supports
// sorting and deduplication.
//
// Keep the data model deterministic: diagnostics are compared byte-for-byte
// in golden tests.
package diag
