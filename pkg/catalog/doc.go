// Package catalog is a host-side, in-memory option catalogue. It provides the
// filtering the association control deliberately leaves to its host, a
// fields.DataSource backed by the catalogue, and a JSON search handler for
// browser runtimes.
package catalog
