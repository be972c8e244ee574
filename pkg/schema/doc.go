// Package schema loads field descriptors from YAML/JSON documents and from
// OpenAPI component schemas. The loader mirrors the UI schema loader layout:
// it walks an fs.FS, accepts .json/.yaml/.yml files and rejects duplicate or
// malformed field definitions with file-scoped errors.
package schema
