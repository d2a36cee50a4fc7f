// Package cli implements the pkglint command-line interface.
//
// # Commands
//
// check: Check the workspace, optionally fixing what the rules can fix
//
//	pkglint check --dir . --fix
//	pkglint check --fix --dry-run --format json
//
// graph: Print the installed dependency graph of a package
//
//	pkglint graph packages/api/package.json --format dot
//
// why: Show every import path that pulls in a package
//
//	pkglint why packages/api/package.json left-pad
//
// watch: Re-run check when a package.json or pkglint.yaml changes
//
//	pkglint watch --fix
//
// rules, version: Informational
//
// # Exit Status
//
// A check that leaves violations unfixed returns ErrViolations; cmd/pkglint exits 1 for it
// and for every other error.
//
// # Environment Variables
//
// PKGLINT_CONFIG, PKGLINT_LOG_LEVEL, PKGLINT_LOG_FORMAT, PKGLINT_METRICS_FILE and
// PKGLINT_NO_COLOR override defaults; see pkg/config.
package cli
