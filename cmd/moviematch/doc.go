// Command moviematch is the interactive movie recommendation CLI. Run
// without arguments it opens the numeric menu; each menu action is also
// exposed as a subcommand for direct invocation.
package main
