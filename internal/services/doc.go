// Package services holds the error taxonomy shared across the engine and its
// CLI host: sentinel markers plus a Wrap helper that tags failures with
// enough scope context to classify them at the boundary.
package services
