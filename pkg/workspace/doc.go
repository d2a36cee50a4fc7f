// Package workspace discovers the packages of a monorepo from the root manifest's
// workspaces globs.
package workspace
