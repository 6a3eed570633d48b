package linker

import (
	"strings"

	"github.com/weftlang/weft/desc"
	"github.com/weftlang/weft/internal/interval"
)

// Symbols is the registry for one file: the symbol table mapping every
// fully-qualified name declared by the file to its descriptor, the field
// number and enum value number registries, and the reserved number ranges.
// Lookups that miss the local table fall through to the registries of the
// file's dependencies, in the order the dependencies were declared.
//
// A Symbols is populated single-threaded, by exactly one Link call, before
// any lookup is issued against it. After that it is never mutated, so it is
// safe for unsynchronized concurrent reads.
type Symbols struct {
	set  *desc.FileSet
	file *desc.File
	deps []*Symbols

	symbols    map[string]desc.Descriptor
	fields     map[fieldKey]*desc.Field
	enumValues map[enumValueKey]*desc.EnumValue
	reserved   map[*desc.Record]*interval.Map[int32, desc.SourcePos]
}

// The number registries key on the identity of the owning descriptor, not its
// name: during error handling two distinct records can transiently share a
// qualified name, and their numbers must not be conflated.
type fieldKey struct {
	owner  *desc.Record
	number int32
}

type enumValueKey struct {
	owner  *desc.Enum
	number int32
}

// NewSymbols creates the registry for the given file. The dependency
// registries must already be fully populated; their order determines search
// precedence for names not defined locally.
func NewSymbols(set *desc.FileSet, file *desc.File, deps ...*Symbols) *Symbols {
	return &Symbols{
		set:        set,
		file:       file,
		deps:       deps,
		symbols:    map[string]desc.Descriptor{},
		fields:     map[fieldKey]*desc.Field{},
		enumValues: map[enumValueKey]*desc.EnumValue{},
		reserved:   map[*desc.Record]*interval.Map[int32, desc.SourcePos]{},
	}
}

// File returns the file this registry was built for.
func (s *Symbols) File() *desc.File {
	return s.file
}

// AddSymbol registers d under its fully-qualified name. The unqualified name
// must be a valid identifier; the full name must not already be taken by any
// entity registered in this file's table. Dependency tables are not consulted
// for this check.
func (s *Symbols) AddSymbol(d desc.Descriptor) error {
	if !validIdentifier(d.Name()) {
		return &InvalidIdentifierError{Symbol: d, Name: d.Name()}
	}
	if existing, ok := s.symbols[d.FullName()]; ok {
		return s.nameConflict(d, existing)
	}
	s.symbols[d.FullName()] = d
	return nil
}

func (s *Symbols) nameConflict(d, existing desc.Descriptor) error {
	existingFile := s.set.File(existing.FileRef())
	return &NameConflictError{
		Symbol:       d,
		Existing:     existing,
		FullName:     d.FullName(),
		sameFile:     existingFile == s.file,
		existingFile: existingFile.Path(),
	}
}

// AddPackage registers the package and, recursively, every ancestor package
// implied by its dot-separated segments, so that registering "a.b.c" also
// registers "a.b" and "a". Re-registering an existing package segment is a
// no-op: the same package may be declared by many files. A segment already
// taken by a non-package entity is a name conflict.
func (s *Symbols) AddPackage(pkg string, file *desc.File) error {
	if pkg == "" {
		return nil
	}
	if existing, ok := s.symbols[pkg]; ok {
		if existing.Kind() == desc.KindPackage {
			// Already registered, and so are all its ancestors.
			return nil
		}
		return &NameConflictError{
			Existing:     existing,
			FullName:     pkg,
			existingFile: s.set.File(existing.FileRef()).Path(),
		}
	}
	name := pkg
	if dot := strings.LastIndexByte(pkg, '.'); dot >= 0 {
		name = pkg[dot+1:]
	}
	s.symbols[pkg] = desc.NewPackage(name, pkg, file)

	if dot := strings.LastIndexByte(pkg, '.'); dot > 0 {
		return s.AddPackage(pkg[:dot], file)
	}
	return nil
}

// AddReservedRange registers the inclusive field number range [start, end] as
// reserved within rec. Overlapping reserved ranges are an error.
func (s *Symbols) AddReservedRange(rec *desc.Record, start, end int32, pos desc.SourcePos) error {
	rm := s.reserved[rec]
	if rm == nil {
		rm = &interval.Map[int32, desc.SourcePos]{}
		s.reserved[rec] = rm
	}
	if overlap := rm.Insert(start, end, pos); overlap.Value != nil {
		return &ReservedRangeOverlapError{
			Record: rec,
			Start:  start, End: end,
			OtherStart: overlap.Start, OtherEnd: overlap.End,
		}
	}
	return nil
}

// AddFieldNumber registers the field's number within its record. A number
// already taken by another field, or falling inside a reserved range, is an
// error.
func (s *Symbols) AddFieldNumber(fld *desc.Field) error {
	rec := fld.Record()
	if rm := s.reserved[rec]; rm != nil {
		if iv := rm.Get(fld.Number()); iv.Value != nil {
			return &ReservedNumberError{Field: fld, Start: iv.Start, End: iv.End}
		}
	}
	key := fieldKey{owner: rec, number: fld.Number()}
	if existing, ok := s.fields[key]; ok {
		return &DuplicateNumberError{Field: fld, Existing: existing}
	}
	s.fields[key] = fld
	return nil
}

// AddEnumValueNumber registers the value's number within its enum, unless the
// number is already taken, in which case the first-registered value stays
// authoritative and the call is a no-op. Values aliasing one number is a
// supported pattern for enums, unlike for record fields.
func (s *Symbols) AddEnumValueNumber(val *desc.EnumValue) {
	key := enumValueKey{owner: val.Enum(), number: val.Number()}
	if _, ok := s.enumValues[key]; !ok {
		s.enumValues[key] = val
	}
}

// FindSymbol returns the descriptor registered under the given
// fully-qualified name, if it is of the given kind. The local table is
// searched first; on a miss, each dependency registry is probed in
// declaration order and the first hit wins. A name registered as a different
// kind behaves as not found.
func (s *Symbols) FindSymbol(name string, kind desc.Kind) desc.Descriptor {
	d := s.findSymbol(name)
	if d == nil || d.Kind() != kind {
		return nil
	}
	return d
}

// findSymbol is FindSymbol without the kind filter.
func (s *Symbols) findSymbol(name string) desc.Descriptor {
	if d, ok := s.symbols[name]; ok {
		return d
	}
	for _, dep := range s.deps {
		if d, ok := dep.symbols[name]; ok {
			return d
		}
	}
	return nil
}

// FindFieldByNumber returns the field of rec with the given number, or nil.
func (s *Symbols) FindFieldByNumber(rec *desc.Record, number int32) *desc.Field {
	return s.fields[fieldKey{owner: rec, number: number}]
}

// FindEnumValueByNumber returns the value of en with the given number, or
// nil. When several values alias one number, the first registered is
// returned.
func (s *Symbols) FindEnumValueByNumber(en *desc.Enum, number int32) *desc.EnumValue {
	return s.enumValues[enumValueKey{owner: en, number: number}]
}

// RangeSymbols calls fn for each symbol registered in this file's local
// table, in unspecified order, until fn returns false.
func (s *Symbols) RangeSymbols(fn func(desc.Descriptor) bool) {
	for _, d := range s.symbols {
		if !fn(d) {
			return
		}
	}
}

// validIdentifier reports whether name is a legal unqualified name: non-empty
// ASCII letters, digits, and underscores, not starting with a digit.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := range len(name) {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
