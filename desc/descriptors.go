package desc

// Descriptor is any named entity declared in a schema file: a package, a
// record, a field, an enum, an enum value, a service, or a method. All
// variants share an unqualified name, a dot-qualified full name, and a handle
// to the file that declared them.
type Descriptor interface {
	// Name returns the unqualified name of the entity.
	Name() string
	// FullName returns the dot-separated path from the schema root. Full
	// names are globally unique across a file and its transitive
	// dependencies, except that the same package may be declared by many
	// files.
	FullName() string
	// Kind returns the variant of this descriptor.
	Kind() Kind
	// FileRef returns a handle to the file that declared this entity.
	FileRef() FileRef
	// Parent returns the enclosing declaration, or nil for entities declared
	// at the top level of their file.
	Parent() Descriptor
	// Pos returns the position of the declaration in source.
	Pos() SourcePos
}

type baseDescriptor struct {
	name     string
	fullName string
	set      *FileSet
	file     FileRef
	parent   Descriptor
	pos      SourcePos
}

func (b *baseDescriptor) Name() string       { return b.name }
func (b *baseDescriptor) FullName() string   { return b.fullName }
func (b *baseDescriptor) FileRef() FileRef   { return b.file }
func (b *baseDescriptor) Parent() Descriptor { return b.parent }
func (b *baseDescriptor) Pos() SourcePos     { return b.pos }

// File resolves the owning-file handle. The declaring file outlives every
// descriptor, so resolving through the set is always safe.
func (b *baseDescriptor) File() *File {
	return b.set.File(b.file)
}

// base computes the common descriptor attributes for an entity named name
// declared inside parent (or at the top level of f when parent is nil).
func base(f *File, parent Descriptor, name string, pos SourcePos) baseDescriptor {
	scope := f.scope()
	if parent != nil {
		scope = parent.FullName()
	}
	return baseDescriptor{
		name:     name,
		fullName: qualify(scope, name),
		set:      f.set,
		file:     f.ref,
		parent:   parent,
		pos:      pos,
	}
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// Scalar is a built-in field type. The zero value means the field's type is
// not a scalar and is instead a named reference to a record or enum.
type Scalar int

const (
	ScalarBool Scalar = iota + 1
	ScalarInt32
	ScalarInt64
	ScalarUint32
	ScalarUint64
	ScalarFloat32
	ScalarFloat64
	ScalarString
	ScalarBytes
)

// Type is the declared type of a field: either a scalar, or a (possibly
// relative, possibly leading-dot qualified) textual reference to a record or
// enum that the linker binds to a concrete descriptor.
type Type struct {
	Scalar Scalar
	Name   string
}

// Record is a composite type: an ordered collection of fields, plus nested
// records and enums. Records nest arbitrarily deep.
type Record struct {
	base baseDescriptor

	fields   []*Field
	records  []*Record
	enums    []*Enum
	reserved []ReservedRange
}

func (r *Record) Name() string       { return r.base.Name() }
func (r *Record) FullName() string   { return r.base.FullName() }
func (r *Record) Kind() Kind         { return KindRecord }
func (r *Record) FileRef() FileRef   { return r.base.FileRef() }
func (r *Record) Parent() Descriptor { return r.base.Parent() }
func (r *Record) Pos() SourcePos     { return r.base.Pos() }

func (r *Record) Fields() []*Field          { return r.fields }
func (r *Record) Records() []*Record        { return r.records }
func (r *Record) Enums() []*Enum            { return r.enums }
func (r *Record) Reserved() []ReservedRange { return r.reserved }

// AddField declares a new field of this record.
func (r *Record) AddField(name string, number int32, typ Type, pos SourcePos) *Field {
	f := &Field{base: base(r.base.File(), r, name, pos), number: number, typ: typ}
	r.fields = append(r.fields, f)
	return f
}

// AddRecord declares a new record nested inside this one.
func (r *Record) AddRecord(name string, pos SourcePos) *Record {
	n := &Record{base: base(r.base.File(), r, name, pos)}
	r.records = append(r.records, n)
	return n
}

// AddEnum declares a new enum nested inside this record.
func (r *Record) AddEnum(name string, pos SourcePos) *Enum {
	e := &Enum{base: base(r.base.File(), r, name, pos)}
	r.enums = append(r.enums, e)
	return e
}

// AddReservedRange reserves the inclusive number range [start, end] so that
// no field of this record may use a number inside it.
func (r *Record) AddReservedRange(start, end int32, pos SourcePos) {
	r.reserved = append(r.reserved, ReservedRange{Start: start, End: end, Pos: pos})
}

// ReservedRange is an inclusive range of field numbers that fields of the
// enclosing record must not use.
type ReservedRange struct {
	Start, End int32
	Pos        SourcePos
}

// Field is a single member of a record, identified within its record by both
// its name and its number.
type Field struct {
	base   baseDescriptor
	number int32
	typ    Type
}

func (f *Field) Name() string       { return f.base.Name() }
func (f *Field) FullName() string   { return f.base.FullName() }
func (f *Field) Kind() Kind         { return KindField }
func (f *Field) FileRef() FileRef   { return f.base.FileRef() }
func (f *Field) Parent() Descriptor { return f.base.Parent() }
func (f *Field) Pos() SourcePos     { return f.base.Pos() }

func (f *Field) Number() int32 { return f.number }
func (f *Field) Type() Type    { return f.typ }

// Record returns the record that declared this field.
func (f *Field) Record() *Record {
	r, _ := f.base.Parent().(*Record)
	return r
}

// Enum is an enumeration type with named, numbered values.
type Enum struct {
	base   baseDescriptor
	values []*EnumValue
}

func (e *Enum) Name() string       { return e.base.Name() }
func (e *Enum) FullName() string   { return e.base.FullName() }
func (e *Enum) Kind() Kind         { return KindEnum }
func (e *Enum) FileRef() FileRef   { return e.base.FileRef() }
func (e *Enum) Parent() Descriptor { return e.base.Parent() }
func (e *Enum) Pos() SourcePos     { return e.base.Pos() }

func (e *Enum) Values() []*EnumValue { return e.values }

// AddValue declares a new value of this enum. Enum values use C-style
// scoping: the value's full name lives in the scope that encloses the enum,
// not inside the enum itself.
func (e *Enum) AddValue(name string, number int32, pos SourcePos) *EnumValue {
	v := &EnumValue{base: base(e.base.File(), e.Parent(), name, pos), number: number}
	// base() derived the full name from the enclosing scope; the structural
	// parent is still the enum.
	v.base.parent = e
	e.values = append(e.values, v)
	return v
}

// EnumValue is one named value of an enum. Multiple values of one enum may
// alias the same number; the first-registered value stays authoritative in
// the number registry.
type EnumValue struct {
	base   baseDescriptor
	number int32
}

func (v *EnumValue) Name() string       { return v.base.Name() }
func (v *EnumValue) FullName() string   { return v.base.FullName() }
func (v *EnumValue) Kind() Kind         { return KindEnumValue }
func (v *EnumValue) FileRef() FileRef   { return v.base.FileRef() }
func (v *EnumValue) Parent() Descriptor { return v.base.Parent() }
func (v *EnumValue) Pos() SourcePos     { return v.base.Pos() }

func (v *EnumValue) Number() int32 { return v.number }

// Enum returns the enum that declared this value.
func (v *EnumValue) Enum() *Enum {
	e, _ := v.base.Parent().(*Enum)
	return e
}

// Service is a named collection of methods.
type Service struct {
	base    baseDescriptor
	methods []*Method
}

func (s *Service) Name() string       { return s.base.Name() }
func (s *Service) FullName() string   { return s.base.FullName() }
func (s *Service) Kind() Kind         { return KindService }
func (s *Service) FileRef() FileRef   { return s.base.FileRef() }
func (s *Service) Parent() Descriptor { return s.base.Parent() }
func (s *Service) Pos() SourcePos     { return s.base.Pos() }

func (s *Service) Methods() []*Method { return s.methods }

// AddMethod declares a new method of this service. Input and output name
// records by textual reference, resolved during linking.
func (s *Service) AddMethod(name, inputType, outputType string, pos SourcePos) *Method {
	m := &Method{
		base:       base(s.base.File(), s, name, pos),
		inputType:  inputType,
		outputType: outputType,
	}
	s.methods = append(s.methods, m)
	return m
}

// Method is a single operation of a service.
type Method struct {
	base       baseDescriptor
	inputType  string
	outputType string
}

func (m *Method) Name() string       { return m.base.Name() }
func (m *Method) FullName() string   { return m.base.FullName() }
func (m *Method) Kind() Kind         { return KindMethod }
func (m *Method) FileRef() FileRef   { return m.base.FileRef() }
func (m *Method) Parent() Descriptor { return m.base.Parent() }
func (m *Method) Pos() SourcePos     { return m.base.Pos() }

func (m *Method) InputType() string  { return m.inputType }
func (m *Method) OutputType() string { return m.outputType }

// Service returns the service that declared this method.
func (m *Method) Service() *Service {
	s, _ := m.base.Parent().(*Service)
	return s
}

// Package is a placeholder descriptor for one segment of a hierarchical
// namespace. Packages are the only descriptors that may be registered under
// the same full name by multiple files.
type Package struct {
	base baseDescriptor
}

// NewPackage creates a placeholder package entry. The file is whichever file
// registered the package segment first.
func NewPackage(name, fullName string, file *File) *Package {
	return &Package{base: baseDescriptor{
		name:     name,
		fullName: fullName,
		set:      file.set,
		file:     file.Ref(),
		pos:      UnknownPos(file.Path()),
	}}
}

func (p *Package) Name() string       { return p.base.Name() }
func (p *Package) FullName() string   { return p.base.FullName() }
func (p *Package) Kind() Kind         { return KindPackage }
func (p *Package) FileRef() FileRef   { return p.base.FileRef() }
func (p *Package) Parent() Descriptor { return p.base.Parent() }
func (p *Package) Pos() SourcePos     { return p.base.Pos() }
