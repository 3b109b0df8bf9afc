// Package cli implements the studytrack command line: flag parsing,
// interactive prompts and confirmations, table rendering and the mapping
// of service failures to exit codes.
package cli
