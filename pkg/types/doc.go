// Package types defines the product library data model: pad positions,
// product variants, product types, the Library that maps them, the PadSpec
// input form used to author custom pads, backend configuration, and the
// standard errors shared by the store, codecs, and CLI.
package types
