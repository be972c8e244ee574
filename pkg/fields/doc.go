// Package fields is the extension seam between a host that owns field state
// and the renderers that turn it into markup. A host implements DataSource;
// renderers receive Props, which forward the source snapshot unchanged plus
// handlers bound to the source. Renderers are looked up by field type in an
// explicit Registry whose precedence is a priority number, with the latest
// registration winning ties. Third parties wrap renderers with Middleware
// instead of patching them at runtime.
package fields
