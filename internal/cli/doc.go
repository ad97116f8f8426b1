// Package cli implements the command-line interface: the root command runs
// the full scrape pipeline once and exits, and the pins subcommand is a
// read-only diagnostic over the stored aggregates.
package cli
