package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for suppressible limit and lint diagnostics.
	SevWarning Severity = iota
	// SevError is for syntax and semantic errors.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
