// Package locals builds the variable maps templates are rendered with.
// Merge layers maps, Load reads them from JSON, YAML, TOML, MessagePack,
// CBOR or workspace status ("KEY VALUE" per line) files, and
// ParseAssignment reads NAME=VALUE pairs given on a command line.
package locals
