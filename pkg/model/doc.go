// Package model defines the field descriptors, catalog options and selections
// shared by the association control, the single-choice adapter and the
// renderers. Descriptors are supplied by the host and treated as immutable;
// selections are ordered slices whose only ordering is insertion order.
// Options are identified by Key (type, optional subtype and id), which is the
// equality used for duplicate detection, removal and the Selected flag.
package model
