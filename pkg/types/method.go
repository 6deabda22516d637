package types

// SizeMethod classifies an input file by its byte size at processing start.
type SizeMethod int

const (
	// MethodSmall is used for files below the small-file threshold.
	MethodSmall SizeMethod = iota
	// MethodLarge is used for everything else.
	MethodLarge
)

// String returns "small" or "large".
func (m SizeMethod) String() string {
	switch m {
	case MethodSmall:
		return "small"
	case MethodLarge:
		return "large"
	default:
		return "unknown"
	}
}

// ParseSizeMethod is the inverse of String.
func ParseSizeMethod(s string) (SizeMethod, bool) {
	switch s {
	case "small":
		return MethodSmall, true
	case "large":
		return MethodLarge, true
	default:
		return MethodSmall, false
	}
}
