// Package association implements the multi-select association control: a
// bounded, optionally duplicate-free selection list edited through add and
// remove operations. Append and Remove are pure transforms over a selection;
// Control binds them to a fields.DataSource, emitting exactly one change per
// accepted operation and returning a typed Outcome for rejected ones so hosts
// can surface feedback such as "maximum reached".
package association
