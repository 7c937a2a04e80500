// Package preflight provides readiness checks for the configuration and the
// completion endpoint. The CLI "recamazon llm check" command prints them.
package preflight
