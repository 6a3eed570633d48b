// Package desc defines the descriptor model for weft schema files: the named
// entities a file declares (records, fields, enums, enum values, services,
// methods) and the files themselves, grouped into a FileSet.
//
// Descriptors are plain data. They are constructed by the parsing
// collaborator (or by hand, in tests), fully populated before linking starts,
// and never mutated afterwards, which makes them safe for unsynchronized
// concurrent reads. Relationships that cross ownership boundaries, such as a
// descriptor's back-reference to its declaring file, are modeled as light
// handles into the FileSet rather than pointers, so the
// dependencies-built-first construction order is enforced by the arena
// instead of by convention.
package desc
