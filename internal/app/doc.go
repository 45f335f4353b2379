// Package app contains the application lifecycle: it loads a program, compiles
// and evaluates its functions, and reports the results. It is decoupled from
// any specific entrypoint such as the CLI.
package app
