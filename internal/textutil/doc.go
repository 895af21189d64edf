// Package textutil provides shared text helpers for case-insensitive
// matching and comma-list handling.
//
// Titles, genres, and emotion labels are compared after Unicode case
// folding so that catalog rows, persisted state, and user input match
// regardless of casing.
package textutil
