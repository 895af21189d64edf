// Package logging constructs the application's slog loggers.
//
// Two output formats are supported: a human-oriented console format
// (timestamp, level, component, message, key=value attributes) and
// standard JSON. Components attach themselves with NewComponentLogger
// so every record carries a component attribute.
package logging
