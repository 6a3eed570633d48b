package linker

import (
	"fmt"

	"github.com/weftlang/weft/desc"
	"github.com/weftlang/weft/reporter"
	"github.com/weftlang/weft/walk"
)

// Link builds the registry for the given file and binds its type references.
//
// Every import of the file must be present in deps, already linked. The
// handler receives every error encountered; with the default reporter the
// first error aborts the operation, and no partially linked result is ever
// returned. Registration proceeds in the fixed order the registry requires:
// the file's package namespaces first, then every declared entity, with field
// and enum value numbers registered as their declarations are visited; only
// after the registry is fully populated are type references resolved.
func Link(set *desc.FileSet, file *desc.File, deps Results, handler *reporter.Handler) (*Result, error) {
	depSyms := make([]*Symbols, len(file.Imports()))
	for i, imp := range file.Imports() {
		dep := deps.FindFileByPath(imp)
		if dep == nil {
			return nil, fmt.Errorf("dependencies are missing import %q", imp)
		}
		depSyms[i] = dep.Symbols()
	}

	r := &Result{
		file:        file,
		syms:        NewSymbols(set, file, depSyms...),
		fieldTypes:  map[*desc.Field]desc.Descriptor{},
		methodTypes: map[*desc.Method]methodTypes{},
	}

	// A nil error from either phase means the reporter chose to keep going;
	// resolution still runs after registration errors so that one pass
	// surfaces as many diagnostics as possible. The handler decides at the
	// end whether anything reported along the way fails the operation.
	if err := r.register(handler); err != nil {
		return nil, err
	}
	if err := r.resolveReferences(handler); err != nil {
		return nil, err
	}
	if err := handler.Error(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Result) register(handler *reporter.Handler) error {
	file, s := r.file, r.syms

	// Dependency packages are registered into the local table first, so a
	// local declaration that collides with an imported namespace is caught
	// here with a message naming the other file. Duplicate package segments
	// across dependencies are no-ops.
	for _, dep := range s.deps {
		if err := s.AddPackage(dep.file.Package(), dep.file); err != nil {
			if err := handler.HandleError(reporter.Error(desc.UnknownPos(file.Path()), err)); err != nil {
				return err
			}
		}
	}

	if pkg := file.Package(); pkg != "" {
		if err := s.AddPackage(pkg, file); err != nil {
			if err := handler.HandleError(reporter.Error(desc.UnknownPos(file.Path()), err)); err != nil {
				return err
			}
		}
	}

	return walk.Descriptors(file, func(d desc.Descriptor) error {
		if err := s.AddSymbol(d); err != nil {
			if err := handler.HandleError(reporter.Error(d.Pos(), err)); err != nil {
				return err
			}
			// The symbol did not make it into the table, but its numbers can
			// still be checked below.
		}
		switch d := d.(type) {
		case *desc.Record:
			for _, rr := range d.Reserved() {
				if err := s.AddReservedRange(d, rr.Start, rr.End, rr.Pos); err != nil {
					if err := handler.HandleError(reporter.Error(rr.Pos, err)); err != nil {
						return err
					}
				}
			}
		case *desc.Field:
			if err := s.AddFieldNumber(d); err != nil {
				if err := handler.HandleError(reporter.Error(d.Pos(), err)); err != nil {
					return err
				}
			}
		case *desc.EnumValue:
			s.AddEnumValueNumber(d)
		}
		return nil
	})
}

func (r *Result) resolveReferences(handler *reporter.Handler) error {
	s := r.syms
	return walk.Descriptors(r.file, func(d desc.Descriptor) error {
		switch d := d.(type) {
		case *desc.Field:
			if d.Type().Name == "" {
				// Scalar; nothing to bind.
				return nil
			}
			dsc, err := s.LookupSymbol(d.Type().Name, d.Record())
			if err != nil {
				return handler.HandleError(reporter.Error(d.Pos(), fmt.Errorf("field %s: %w", d.FullName(), err)))
			}
			if dsc.Kind() != desc.KindRecord && dsc.Kind() != desc.KindEnum {
				return handler.HandleErrorf(d.Pos(), "field %s: invalid type: %s is a %s, not a record or enum", d.FullName(), dsc.FullName(), dsc.Kind())
			}
			r.fieldTypes[d] = dsc
		case *desc.Method:
			input, err := r.resolveMethodType(handler, d, "request", d.InputType())
			if err != nil {
				return err
			}
			output, err := r.resolveMethodType(handler, d, "response", d.OutputType())
			if err != nil {
				return err
			}
			r.methodTypes[d] = methodTypes{input: input, output: output}
		}
		return nil
	})
}

func (r *Result) resolveMethodType(handler *reporter.Handler, mtd *desc.Method, which, name string) (*desc.Record, error) {
	dsc, err := r.syms.LookupSymbol(name, mtd.Service())
	if err != nil {
		return nil, handler.HandleError(reporter.Error(mtd.Pos(), fmt.Errorf("method %s: %s type: %w", mtd.FullName(), which, err)))
	}
	rec, ok := dsc.(*desc.Record)
	if !ok {
		return nil, handler.HandleErrorf(mtd.Pos(), "method %s: invalid %s type: %s is a %s, not a record", mtd.FullName(), which, dsc.FullName(), dsc.Kind())
	}
	return rec, nil
}

// Result is one linked file: its registry plus the bindings of every type
// reference the file declares.
type Result struct {
	file        *desc.File
	syms        *Symbols
	fieldTypes  map[*desc.Field]desc.Descriptor
	methodTypes map[*desc.Method]methodTypes
}

type methodTypes struct {
	input, output *desc.Record
}

// File returns the linked file.
func (r *Result) File() *desc.File {
	return r.file
}

// Symbols returns the file's registry, for reflective lookups.
func (r *Result) Symbols() *Symbols {
	return r.syms
}

// FieldType returns the record or enum that the given field's type reference
// was bound to, or nil for scalar-typed fields.
func (r *Result) FieldType(fld *desc.Field) desc.Descriptor {
	return r.fieldTypes[fld]
}

// MethodInputType returns the record bound as the method's request type.
func (r *Result) MethodInputType(mtd *desc.Method) *desc.Record {
	return r.methodTypes[mtd].input
}

// MethodOutputType returns the record bound as the method's response type.
func (r *Result) MethodOutputType(mtd *desc.Method) *desc.Record {
	return r.methodTypes[mtd].output
}

// Results is a set of linked files that can serve as the dependencies of
// another Link call.
type Results []*Result

// FindFileByPath returns the result for the file with the given path, or nil.
func (rs Results) FindFileByPath(path string) *Result {
	for _, r := range rs {
		if r.file.Path() == path {
			return r
		}
	}
	return nil
}
