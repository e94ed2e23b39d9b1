// Package diag implements the diagnostic reporting pipeline of the ion
// front-end.
//
// # Purpose
//
//   - Normalize raw lexer/parser error fragments into presentable messages
//     before anything is raised or printed (parse_error.go). The rule table
//     there is ordered and first-match-wins.
//   - Abort compilation with a typed *Diagnostic carried by panic
//     (raise.go); Catch is the only sanctioned recovery boundary and
//     re-panics anything that is not a diagnostic.
//   - Print warnings immediately and notify the per-compilation Session
//     collaborator without ever blocking on it (warn.go, session.go).
//
// # Scope
//
// Package diag performs no source parsing and no terminal layout beyond the
// fixed warning format. Rendering of caught diagnostics lives in
// internal/diagfmt; replay orchestration lives in internal/driver.
//
// # Emitting
//
// Producers construct a Reporter once per compilation unit and treat it as
// read-only afterwards, so no locking happens on the reporting path.
// Raising entry points (Raise, ParseError, CompileError, FormError) never
// return. Warning entry points (Warn, WarnPlain) never fail: IO errors are
// dropped and an absent session is the common case.
//
// # Session collaborators
//
// A Session receives located warnings (Warning) and counter bumps
// (RegisterWarning). Implementations here: ChannelSession (non-blocking
// fan-in for UIs), Collector (bounded in-memory ledger), Dedup (suppresses
// repeats), Multi (fan-out). Sessions may be shared between compilation
// units and guard their own state.
package diag
