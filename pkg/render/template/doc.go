// Package template defines the renderer-agnostic template seam used by the
// HTML renderers. Engines live in subpackages.
package template
