package dw

// Severity is the notification level attached to a run summary.
// The numeric values are the levels the QNAP Notification Center accepts
// on its --type option: 0 = Information, 1 = Warning, 2 = Error.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ResolveSeverity maps a finished run to its notification severity.
//
// Observed ERROR lines dominate everything, including a clean exit code.
// Otherwise the duplicacy exit-code convention applies:
//
//	0   success
//	1   interrupted
//	2   malformed command arguments
//	3   invalid value for a command argument
//	100 run-time error (failed connections included)
//	101 error in a dependency library
//
// A negative exitCode means the child never reported one (killed before
// wait status was available) and is treated as an error. Warnings only
// ever upgrade Info to Warning; they never downgrade a resolved severity.
func ResolveSeverity(exitCode, errors, warnings int) Severity {
	if errors > 0 {
		return SeverityError
	}

	var severity Severity
	switch exitCode {
	case 0:
		severity = SeverityInfo
	case 1:
		severity = SeverityWarning
	case 2, 3, 100, 101:
		severity = SeverityError
	default:
		severity = SeverityError
	}

	if warnings > 0 && severity == SeverityInfo {
		severity = SeverityWarning
	}
	return severity
}
