// Package main hosts the recamazon CLI.
//
// "analyze" runs the four-stage pipeline once and prints the result as text,
// Markdown, or JSON; "serve" exposes the same pipeline through a browser form
// and a JSON API. Configuration resolution, dotenv loading, and logger setup
// live in commandContext so subcommands only wire internal packages together.
package main
