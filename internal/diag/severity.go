package diag

// Severity ranks a diagnostic. Errors fail a check run; warnings are shown
// unless --no-warnings is given.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks heuristic findings such as a possibly misused "may".
	SevWarning
	// SevError marks sniff violations and internal failures.
	SevError
)

// String gives the upper-case label, e.g. "WARNING".
func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}
