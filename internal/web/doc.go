// Package web serves the browser form and a small JSON API around the
// analysis pipeline. Every request runs its own pipeline; the server keeps no
// state between requests.
package web
