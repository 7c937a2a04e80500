// Package config loads, normalizes, and validates recamazon configuration data.
//
// It supplies repository defaults, reads TOML files, loads optional .env files,
// and honours environment fallbacks such as OPENROUTER_API_KEY. The Config type
// centralizes every knob the CLI and web server need so the completion client
// receives its credential once, at construction.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
