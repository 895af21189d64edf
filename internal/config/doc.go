// Package config loads, validates, and normalizes moviematch configuration.
//
// Configuration is a single TOML file. Load applies defaults first, then
// overlays the file when present, expands all path fields, and validates
// the result. A missing config file is not an error; the defaults describe
// a working local setup.
package config
