// Package exitcode provides the process exit codes used by iconeat
package exitcode

// Exit codes for the iconeat CLI. Check failures share code 1 with aborted
// runs so CI scripts only need to test for a non-zero status.
const (
	Success         = 0
	GeneralError    = 1
	ValidationError = GeneralError
	ConfigError     = 2
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "Validation failed or command aborted"
	case ConfigError:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}
