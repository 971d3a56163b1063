package types

// Conversion classifies a from→to pair.
type Conversion uint8

const (
	ConvIllegal Conversion = iota
	ConvIdentity
	ConvImplicit
	ConvExplicitOnly
)

func (c Conversion) String() string {
	switch c {
	case ConvIdentity:
		return "identity"
	case ConvImplicit:
		return "implicit"
	case ConvExplicitOnly:
		return "explicit-only"
	default:
		return "illegal"
	}
}

// Classify looks the pair up in the conversion table.
//
//	from \ to  int       double    bool
//	int        identity  implicit  illegal
//	double     explicit  identity  illegal
//	bool       explicit  illegal   identity
//
// String converts only to itself.
func Classify(from, to Type) Conversion {
	if from == to {
		if from.IsValue() {
			return ConvIdentity
		}
		return ConvIllegal
	}
	switch {
	case from == Integer && to == Double:
		return ConvImplicit
	case from == Double && to == Integer:
		return ConvExplicitOnly
	case from == Boolean && to == Integer:
		return ConvExplicitOnly
	default:
		return ConvIllegal
	}
}

// Allowed reports whether a wrapper converting from→to is legal given its
// explicit marker.
func Allowed(from, to Type, explicit bool) bool {
	switch Classify(from, to) {
	case ConvIdentity, ConvImplicit:
		return true
	case ConvExplicitOnly:
		return explicit
	default:
		return false
	}
}
