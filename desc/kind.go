package desc

// Kind discriminates the variants of Descriptor. Lookups in the symbol
// registry filter on kind, so a name that exists as one kind behaves as
// "not found" when queried expecting another.
type Kind int

const (
	KindPackage Kind = iota + 1
	KindRecord
	KindField
	KindEnum
	KindEnumValue
	KindService
	KindMethod
)

// String returns the kind as it should appear in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindRecord:
		return "record"
	case KindField:
		return "field"
	case KindEnum:
		return "enum"
	case KindEnumValue:
		return "enum value"
	case KindService:
		return "service"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}
