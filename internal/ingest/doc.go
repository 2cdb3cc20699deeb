// Package ingest decodes raw revenue record batches from JSON files on
// behalf of the CLI host. The reconciliation engine itself only consumes
// decoded collections and never touches the filesystem.
package ingest
