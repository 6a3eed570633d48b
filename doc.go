// Package weft links weft schema files: it registers every entity declared
// by a set of files into per-file symbol registries and binds every type
// reference to a concrete descriptor, failing fast on name conflicts,
// duplicate field numbers, and unresolvable references.
//
// The Linker in this package orchestrates linking across many files at once,
// scheduling each file after the files it imports and bounding parallelism.
// The actual registration and resolution semantics live in the linker
// subpackage; the descriptor model lives in desc.
package weft
