package model

// Kind identifies the variant of an extracted entity.
type Kind int

const (
	KindUnknown Kind = iota
	KindTable
	KindFigure
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindFigure:
		return "figure"
	default:
		return "unknown"
	}
}

// Label returns the word authors use when citing an entity of this kind,
// e.g. "Table" in "Table 3".
func (k Kind) Label() string {
	switch k {
	case KindTable:
		return "Table"
	case KindFigure:
		return "Figure"
	default:
		return ""
	}
}

// idToken is the kind segment used inside entity identifiers.
func (k Kind) idToken() string {
	switch k {
	case KindTable:
		return "table"
	case KindFigure:
		return "fig"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back into a Kind. Both "fig" and "figure"
// are accepted.
func ParseKind(s string) Kind {
	switch s {
	case "table":
		return KindTable
	case "figure", "fig":
		return KindFigure
	default:
		return KindUnknown
	}
}
