// Package config loads and validates Tally's TOML configuration: data and
// log directories, matching policy parameters, and logging options. Loading
// merges the file over repository defaults and expands all path fields.
package config
