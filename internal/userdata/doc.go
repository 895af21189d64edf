// Package userdata persists the per-user state: preferences, the watched
// list, and the watch-later list, as flat text files in a data directory.
//
// Every operation follows the same read-whole-file, mutate, write-whole-file
// pattern, wrapped in a file lock so overlapping invocations serialize
// instead of interleaving. Writes are atomic (temp file + rename).
//
// Two on-disk formats exist for the list files. Files written by this
// implementation start with a "#moviematch:v2" marker line and use
// tab-separated records that carry the catalog identifier alongside the
// title. Files without the marker parse with the legacy rules:
// "<n>.<title>:<review>:<sentiment>" lines for watched, one comma-joined
// line for watch-later. Malformed lines are silently dropped on read in
// both formats.
package userdata
