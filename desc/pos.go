package desc

import "fmt"

// SourcePos identifies a location in a weft schema source file. Descriptors
// carry the position of their declaration so that diagnostics emitted during
// linking can point back at the offending source.
type SourcePos struct {
	Filename string
	Line     int
	Col      int
}

func (pos SourcePos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}

// UnknownPos is a placeholder position for declarations whose location in
// source is not known.
func UnknownPos(filename string) SourcePos {
	return SourcePos{Filename: filename}
}
