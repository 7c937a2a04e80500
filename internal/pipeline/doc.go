// Package pipeline runs the four-stage analysis for one query: Discover
// related item URLs, fetch their Details, fetch their Reviews, and Recommend
// from the details.
//
// All search and extraction work is delegated to a CompletionProvider through
// prompt strings. Every stage failure is absorbed at the stage boundary and
// turned into an empty slice or the NoRecommendations sentinel; the only
// terminal failure is an empty discovery result, which halts the run before
// any other stage is invoked. Stages log stage_start and stage_complete events
// and record Prometheus metrics; nothing about a run is returned except the
// Result value.
package pipeline
