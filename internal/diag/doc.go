// Package diag defines the diagnostic model shared by the decoder, the module
// builder and the renderer.
//
// # Purpose
//
//   - Give every recoverable finding (an unhandled opcode, a dropped function
//     parameter, a degraded resolution error) one deterministic record instead
//     of mixing inline comments with process aborts.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format for terminals or perform IO. Rendering lives in
// internal/diagfmt; the driver decides which bags reach the user.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the Span of the instruction the finding is about.
//   - Notes – optional secondary spans/messages for additional context.
//
// Spans point into the instruction stream, not into text: the instruction
// ordinal, its word offset in the binary (zero for assembled input) and the id
// the finding concerns.
//
// # Emitting diagnostics
//
// Producers hold a Reporter. ReportError/ReportWarning/ReportInfo return a
// ReportBuilder that accepts WithNote before Emit. BagReporter collects into a
// Bag, which supports sorting, deduplication and merging.
//
// Keep the data model deterministic: renderers may run per function in
// parallel, and each of them owns its own Bag.
package diag
