package linker

import (
	"strings"

	"github.com/weftlang/weft/desc"
)

// LookupSymbol resolves the textual reference name from the point of view of
// relativeTo, which is the scope (record, service, or any other descriptor)
// enclosing the reference.
//
// A reference starting with '.' is fully qualified and is resolved against
// the table directly, without any scope climbing. Any other reference is
// searched for scope by scope, innermost first: the first segment of the
// reference is appended to each enclosing scope of relativeTo in turn,
// walking from relativeTo itself up toward the file root, with a final
// unqualified probe once no enclosing scope remains. The first scope at which
// the first segment matches is final: if the reference is compound, the
// remaining segments must also resolve under that same scope, and resolution
// fails outright if they do not. Shallower scopes are never consulted after a
// first-segment match, even on such a failure; a reference meant for an outer
// scope must use a leading dot.
func (s *Symbols) LookupSymbol(name string, relativeTo desc.Descriptor) (desc.Descriptor, error) {
	if strings.HasPrefix(name, ".") {
		if d := s.findSymbol(name[1:]); d != nil {
			return d, nil
		}
		return nil, &UnresolvedSymbolError{Name: name}
	}

	first := name
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		first = name[:dot]
	}

	var scopeName string
	if relativeTo != nil {
		scopeName = relativeTo.FullName()
	}

	// The scope string carries a trailing dot so that the first iteration
	// probes inside relativeTo itself before any truncation happens.
	scope := scopeName + "."
	for {
		dot := strings.LastIndexByte(scope, '.')
		if dot < 0 {
			// No enclosing scope remains; the reference is either defined
			// unqualified at the root or not at all.
			if d := s.findSymbol(name); d != nil {
				return d, nil
			}
			return nil, &UnresolvedSymbolError{Name: name, RelativeTo: scopeName}
		}
		prefix := scope[:dot+1]

		if d := s.findSymbol(prefix + first); d != nil {
			if first == name {
				return d, nil
			}
			// The first segment pins this scope; the whole reference must
			// resolve here or nowhere.
			if d := s.findSymbol(prefix + name); d != nil {
				return d, nil
			}
			return nil, &UnresolvedSymbolError{
				Name:       name,
				RelativeTo: scopeName,
				ResolvedTo: prefix + name,
			}
		}

		// Drop the innermost scope segment, dot included, and climb.
		scope = scope[:dot]
	}
}
