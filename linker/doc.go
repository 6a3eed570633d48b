// Package linker contains the symbol-resolution core of the weft schema
// compiler. Linking a file means registering every entity it declares into a
// per-file registry (the Symbols type) and then binding every textual type
// reference to a concrete descriptor.
//
// # Symbols
//
// Each file gets exactly one Symbols registry, created alongside the file's
// construction from the ordered list of its dependencies' registries. The
// registry maps fully-qualified names to descriptors, tracks which field
// numbers and enum value numbers are taken, and enforces reserved number
// ranges. Registration is strictly sequential and must complete before any
// resolution is attempted; afterwards the registry is immutable and safe for
// unsynchronized concurrent reads.
//
// # Resolution
//
// LookupSymbol implements scoped name resolution: a reference is searched for
// starting at the innermost enclosing scope of the referencing declaration
// and climbing outward toward the file root, with fully-qualified (leading
// dot) references short-circuiting the climb. Once any scope level matches
// the first segment of a compound reference, that level is final: resolution
// of the remaining segments either succeeds there or fails outright. This is
// intentional, long-standing behavior; climbing past a first-segment match
// would silently change which declaration a reference binds to.
package linker
