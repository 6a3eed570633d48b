package linker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlang/weft/desc"
	"github.com/weftlang/weft/linker"
	"github.com/weftlang/weft/reporter"
)

func TestLink(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}

	dep := newTestFile(t, set, "lib.weft", "lib")
	payload := dep.AddRecord("Payload", pos(dep, 1))
	depRes, err := linker.Link(set, dep, nil, reporter.NewHandler(nil))
	require.NoError(t, err)

	f := newTestFile(t, set, "main.weft", "p", "lib.weft")
	outer := f.AddRecord("Outer", pos(f, 1))
	inner := outer.AddRecord("Inner", pos(f, 2))
	fldInner := outer.AddField("inner", 1, desc.Type{Name: "Inner"}, pos(f, 3))
	fldRemote := outer.AddField("remote", 2, desc.Type{Name: ".lib.Payload"}, pos(f, 4))
	fldCount := outer.AddField("count", 3, desc.Type{Scalar: desc.ScalarUint64}, pos(f, 5))
	color := f.AddEnum("Color", pos(f, 10))
	color.AddValue("RED", 0, pos(f, 11))
	fldColor := outer.AddField("color", 4, desc.Type{Name: "Color"}, pos(f, 6))
	svc := f.AddService("Painter", pos(f, 20))
	paint := svc.AddMethod("Paint", "Outer", "lib.Payload", pos(f, 21))

	res, err := linker.Link(set, f, linker.Results{depRes}, reporter.NewHandler(nil))
	require.NoError(t, err)

	assert.Same(t, f, res.File())
	assert.Same(t, desc.Descriptor(inner), res.FieldType(fldInner))
	assert.Same(t, desc.Descriptor(payload), res.FieldType(fldRemote))
	assert.Nil(t, res.FieldType(fldCount))
	assert.Same(t, desc.Descriptor(color), res.FieldType(fldColor))
	assert.Same(t, inner, res.Symbols().FindSymbol("p.Outer.Inner", desc.KindRecord))
	assert.Same(t, outer, res.MethodInputType(paint))
	assert.Same(t, payload, res.MethodOutputType(paint))
}

func TestLinkMissingImport(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	f := newTestFile(t, set, "main.weft", "p", "lib.weft")
	_, err := linker.Link(set, f, nil, reporter.NewHandler(nil))
	assert.EqualError(t, err, `dependencies are missing import "lib.weft"`)
}

func TestLinkUnresolvedType(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	f := newTestFile(t, set, "main.weft", "p")
	rec := f.AddRecord("Outer", pos(f, 1))
	rec.AddField("ghost", 1, desc.Type{Name: "Ghost"}, pos(f, 2))

	_, err := linker.Link(set, f, nil, reporter.NewHandler(nil))
	require.Error(t, err)
	assert.EqualError(t, err, `main.weft:2:1: field p.Outer.ghost: "Ghost" is not defined`)

	var unresolved *linker.UnresolvedSymbolError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Ghost", unresolved.Name)
	assert.Equal(t, "p.Outer", unresolved.RelativeTo)

	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, pos(f, 2), ewp.GetPosition())
}

func TestLinkFieldTypeKind(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	f := newTestFile(t, set, "main.weft", "p")
	f.AddService("Svc", pos(f, 1))
	rec := f.AddRecord("Outer", pos(f, 2))
	rec.AddField("bad", 1, desc.Type{Name: "Svc"}, pos(f, 3))

	_, err := linker.Link(set, f, nil, reporter.NewHandler(nil))
	assert.EqualError(t, err, "main.weft:3:1: field p.Outer.bad: invalid type: p.Svc is a service, not a record or enum")
}

func TestLinkMethodTypeKind(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	f := newTestFile(t, set, "main.weft", "p")
	en := f.AddEnum("Mode", pos(f, 1))
	en.AddValue("MODE_A", 0, pos(f, 2))
	f.AddRecord("Req", pos(f, 3))
	svc := f.AddService("Svc", pos(f, 4))
	svc.AddMethod("Go", "Req", "Mode", pos(f, 5))

	_, err := linker.Link(set, f, nil, reporter.NewHandler(nil))
	assert.EqualError(t, err, "main.weft:5:1: method p.Svc.Go: invalid response type: p.Mode is a enum, not a record")
}

func TestLinkCrossFileConflict(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	dep := newTestFile(t, set, "lib.weft", "lib")
	depRes, err := linker.Link(set, dep, nil, reporter.NewHandler(nil))
	require.NoError(t, err)

	// A top-level declaration colliding with an imported package namespace.
	f := newTestFile(t, set, "main.weft", "", "lib.weft")
	f.AddRecord("lib", pos(f, 1))

	_, err = linker.Link(set, f, linker.Results{depRes}, reporter.NewHandler(nil))
	require.Error(t, err)
	var conflict *linker.NameConflictError
	require.ErrorAs(t, err, &conflict)
	assert.EqualError(t, err, `main.weft:1:1: "lib" is already defined in file "lib.weft"`)
}

func TestLinkCollectsErrors(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	f := newTestFile(t, set, "main.weft", "p")
	rec := f.AddRecord("Outer", pos(f, 1))
	rec.AddField("a", 1, desc.Type{Scalar: desc.ScalarBool}, pos(f, 2))
	rec.AddField("b", 1, desc.Type{Scalar: desc.ScalarBool}, pos(f, 3))
	f.AddRecord("Outer", pos(f, 4))

	var reported []reporter.ErrorWithPos
	rep := reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil)

	_, err := linker.Link(set, f, nil, reporter.NewHandler(rep))
	assert.ErrorIs(t, err, reporter.ErrInvalidSchema)
	require.Len(t, reported, 2)
	assert.EqualError(t, reported[0], `main.weft:3:1: field number 1 has already been used in "p.Outer" by field "a"`)
	assert.EqualError(t, reported[1], `main.weft:4:1: "Outer" is already defined in "p"`)
}
