// Package services defines shared utilities consumed by the pipeline stages
// and the LLM provider clients.
//
// Key responsibilities:
//   - Context helpers that stamp stage names, queries, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper, so provider failures keep
//     their class (network, unauthorized, malformed response) as they travel
//     to the stage boundary where they are downgraded to empty results.
//
// Use these helpers when wiring new provider or stage logic so failure
// classification stays uniform across the pipeline.
package services
