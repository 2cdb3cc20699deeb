// Package main hosts the Tally CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// reconciliation operations: ingesting raw revenue batches, proposing and
// committing joins, rendering revenue reports, and maintaining confirmed
// content links. It centralizes configuration resolution, registry snapshot
// handling, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
