package linker_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/weftlang/weft/desc"
	"github.com/weftlang/weft/linker"
)

type resolveCorpus struct {
	Files []struct {
		Path    string   `yaml:"path"`
		Package string   `yaml:"package"`
		Imports []string `yaml:"imports"`
		Records []string `yaml:"records"`
	} `yaml:"files"`
	Cases []struct {
		Name  string `yaml:"name"`
		Scope string `yaml:"scope"`
		Ref   string `yaml:"ref"`
		Want  string `yaml:"want"`
		Err   string `yaml:"err"`
	} `yaml:"cases"`
}

func TestLookupSymbol(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/resolve.yaml")
	require.NoError(t, err)
	var corpus resolveCorpus
	require.NoError(t, yaml.Unmarshal(data, &corpus))
	require.NotEmpty(t, corpus.Files)
	require.NotEmpty(t, corpus.Cases)

	// Build each file's registry the way Link does: dependency packages, the
	// file's own package, then every declared record.
	set := &desc.FileSet{}
	byPath := map[string]*linker.Symbols{}
	var syms *linker.Symbols
	for _, fd := range corpus.Files {
		f, err := set.NewFile(fd.Path, fd.Package, fd.Imports...)
		require.NoError(t, err)

		deps := make([]*linker.Symbols, len(fd.Imports))
		for i, imp := range fd.Imports {
			deps[i] = byPath[imp]
			require.NotNil(t, deps[i], "file %q imported before it was built", imp)
		}
		syms = linker.NewSymbols(set, f, deps...)
		byPath[fd.Path] = syms

		for _, dep := range deps {
			require.NoError(t, syms.AddPackage(dep.File().Package(), dep.File()))
		}
		require.NoError(t, syms.AddPackage(fd.Package, f))

		records := map[string]*desc.Record{}
		for _, path := range fd.Records {
			var rec *desc.Record
			if dot := strings.LastIndexByte(path, '.'); dot >= 0 {
				parent := records[path[:dot]]
				require.NotNil(t, parent, "record %q declared before its parent", path)
				rec = parent.AddRecord(path[dot+1:], desc.UnknownPos(fd.Path))
			} else {
				rec = f.AddRecord(path, desc.UnknownPos(fd.Path))
			}
			records[path] = rec
			require.NoError(t, syms.AddSymbol(rec))
		}
	}

	// Lookups run against the last file, which imports the others.
	for _, tc := range corpus.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			var relativeTo desc.Descriptor
			if tc.Scope != "" {
				relativeTo = syms.FindSymbol(tc.Scope, desc.KindRecord)
				require.NotNil(t, relativeTo, "scope %q not in corpus", tc.Scope)
			}

			d, err := syms.LookupSymbol(tc.Ref, relativeTo)
			if tc.Err != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tc.Err)
				var unresolved *linker.UnresolvedSymbolError
				assert.ErrorAs(t, err, &unresolved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Want, d.FullName())
		})
	}
}

func TestLookupSymbolLocalShadowsDependency(t *testing.T) {
	t.Parallel()

	set := &desc.FileSet{}
	dep, err := set.NewFile("dep.weft", "p")
	require.NoError(t, err)
	depSyms := linker.NewSymbols(set, dep)
	depRec := dep.AddRecord("Shadow", desc.UnknownPos("dep.weft"))
	require.NoError(t, depSyms.AddSymbol(depRec))

	f, err := set.NewFile("main.weft", "p", "dep.weft")
	require.NoError(t, err)
	syms := linker.NewSymbols(set, f, depSyms)
	local := f.AddRecord("Shadow", desc.UnknownPos("main.weft"))
	require.NoError(t, syms.AddSymbol(local))
	outer := f.AddRecord("Outer", desc.UnknownPos("main.weft"))
	require.NoError(t, syms.AddSymbol(outer))

	d, err := syms.LookupSymbol("Shadow", outer)
	require.NoError(t, err)
	assert.Same(t, desc.Descriptor(local), d)
}
