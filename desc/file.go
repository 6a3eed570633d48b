package desc

import (
	"fmt"

	"github.com/weftlang/weft/internal/arena"
)

// FileRef is a light handle to a File inside a FileSet. Descriptors refer to
// their owning file through a FileRef rather than a pointer; the FileSet that
// allocated the file resolves the handle. The zero FileRef is nil.
type FileRef uint32

// Nil returns whether this handle refers to no file.
func (r FileRef) Nil() bool {
	return r == 0
}

// FileSet owns every File participating in one schema-compilation process.
// Files are allocated into the set in dependency order: a file's imports must
// already be present (and therefore fully constructed) before the file itself
// is created, so handles held by dependents never dangle and never observe a
// partially built file.
type FileSet struct {
	files  arena.Arena[File]
	byPath map[string]FileRef
}

// NewFile allocates a new, empty file in the set. The import paths name other
// files that must be added to the same set before the file is linked.
func (s *FileSet) NewFile(path, pkg string, imports ...string) (*File, error) {
	if s.byPath == nil {
		s.byPath = map[string]FileRef{}
	}
	if _, ok := s.byPath[path]; ok {
		return nil, fmt.Errorf("file %q is already in the set", path)
	}
	ref := FileRef(s.files.New(File{
		set:     s,
		path:    path,
		pkg:     pkg,
		imports: imports,
	}))
	f := s.File(ref)
	f.ref = ref
	s.byPath[path] = ref
	return f, nil
}

// File resolves a handle previously returned by NewFile. Panics if ref is nil
// or was allocated by a different set.
func (s *FileSet) File(ref FileRef) *File {
	return s.files.At(arena.Untyped(ref))
}

// FileByPath returns the file with the given path, or nil if the set has no
// such file.
func (s *FileSet) FileByPath(path string) *File {
	ref, ok := s.byPath[path]
	if !ok {
		return nil
	}
	return s.File(ref)
}

// File is one weft schema file: a package declaration, an ordered list of
// imports, and the top-level declarations. Files are populated by the parsing
// collaborator and are not mutated once linking begins.
type File struct {
	set *FileSet
	ref FileRef

	path    string
	pkg     string
	imports []string

	records  []*Record
	enums    []*Enum
	services []*Service
}

func (f *File) Path() string       { return f.path }
func (f *File) Package() string    { return f.pkg }
func (f *File) Imports() []string  { return f.imports }
func (f *File) Ref() FileRef       { return f.ref }

func (f *File) Records() []*Record   { return f.records }
func (f *File) Enums() []*Enum       { return f.enums }
func (f *File) Services() []*Service { return f.services }

// scope returns the namespace that top-level declarations of this file live
// in, which is the file's package.
func (f *File) scope() string {
	return f.pkg
}

// AddRecord declares a new top-level record in this file.
func (f *File) AddRecord(name string, pos SourcePos) *Record {
	r := &Record{base: base(f, nil, name, pos)}
	f.records = append(f.records, r)
	return r
}

// AddEnum declares a new top-level enum in this file.
func (f *File) AddEnum(name string, pos SourcePos) *Enum {
	e := &Enum{base: base(f, nil, name, pos)}
	f.enums = append(f.enums, e)
	return e
}

// AddService declares a new service in this file.
func (f *File) AddService(name string, pos SourcePos) *Service {
	s := &Service{base: base(f, nil, name, pos)}
	f.services = append(f.services, s)
	return s
}
