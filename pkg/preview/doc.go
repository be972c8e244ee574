// Package preview serves a single field over HTTP: the rendered markup, a
// JSON action endpoint that feeds user interactions back into the controls,
// the current value, and optionally the catalogue search endpoint.
package preview
