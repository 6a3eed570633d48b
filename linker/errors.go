package linker

import (
	"fmt"

	"github.com/weftlang/weft/desc"
)

// NameConflictError indicates that a declaration's fully-qualified name is
// already taken within its file's registry, or that a package segment
// collides with a non-package declaration.
type NameConflictError struct {
	// Symbol is the descriptor whose registration failed. It is nil for
	// package registration failures; then File identifies the registering
	// file instead.
	Symbol desc.Descriptor
	// Existing is the descriptor already occupying the name.
	Existing desc.Descriptor
	// FullName is the contested fully-qualified name.
	FullName string

	sameFile     bool
	existingFile string
}

func (e *NameConflictError) Error() string {
	var note string
	if kindOf(e.Symbol) == desc.KindEnumValue || e.Existing.Kind() == desc.KindEnumValue {
		// Enum values use C-style scoping, so they live in the scope
		// enclosing the enum; spell that out since it surprises people.
		note = "; enum values share the scope enclosing the enum"
	}
	if !e.sameFile {
		return fmt.Sprintf("%q is already defined in file %q%s", e.FullName, e.existingFile, note)
	}
	if e.Symbol != nil && e.Symbol.Name() != e.FullName {
		scope := e.FullName[:len(e.FullName)-len(e.Symbol.Name())-1]
		return fmt.Sprintf("%q is already defined in %q%s", e.Symbol.Name(), scope, note)
	}
	return fmt.Sprintf("%q is already defined%s", e.FullName, note)
}

func kindOf(d desc.Descriptor) desc.Kind {
	if d == nil {
		return 0
	}
	return d.Kind()
}

// InvalidIdentifierError indicates that the unqualified name of a declaration
// is not a valid identifier.
type InvalidIdentifierError struct {
	Symbol desc.Descriptor
	Name   string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%q is not a valid identifier", e.Name)
}

// DuplicateNumberError indicates that two fields of one record claim the same
// field number.
type DuplicateNumberError struct {
	Field    *desc.Field
	Existing *desc.Field
}

func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("field number %d has already been used in %q by field %q",
		e.Field.Number(), e.Field.Record().FullName(), e.Existing.Name())
}

// ReservedNumberError indicates that a field claims a number inside one of
// its record's reserved ranges.
type ReservedNumberError struct {
	Field      *desc.Field
	Start, End int32
}

func (e *ReservedNumberError) Error() string {
	return fmt.Sprintf("field %q uses reserved number %d", e.Field.Name(), e.Field.Number())
}

// ReservedRangeOverlapError indicates that two reserved ranges of one record
// overlap.
type ReservedRangeOverlapError struct {
	Record     *desc.Record
	Start, End int32
	// The previously registered range that [Start, End] overlaps.
	OtherStart, OtherEnd int32
}

func (e *ReservedRangeOverlapError) Error() string {
	return fmt.Sprintf("reserved range %d to %d overlaps already-defined range %d to %d",
		e.Start, e.End, e.OtherStart, e.OtherEnd)
}

// UnresolvedSymbolError indicates that a type reference could not be bound to
// any descriptor.
type UnresolvedSymbolError struct {
	// Name is the reference as written in source.
	Name string
	// RelativeTo is the full name of the scope the search started from.
	RelativeTo string
	// ResolvedTo is non-empty when the first segment of a compound reference
	// matched at some scope but the whole reference did not exist there.
	ResolvedTo string
}

func (e *UnresolvedSymbolError) Error() string {
	if e.ResolvedTo != "" {
		return fmt.Sprintf("%q is resolved to %q, which is not defined; consider using a leading dot", e.Name, e.ResolvedTo)
	}
	return fmt.Sprintf("%q is not defined", e.Name)
}
