package exitcodes

import "errors"

// Exit codes returned by wifi-setup
const (
	// Success covers normal completion, including declining to add networks
	Success = 0

	// IOError indicates a file could not be read, written, chmodded or chowned
	IOError = 1

	// InvalidArgs indicates invalid command-line arguments, flags or settings
	InvalidArgs = 2

	// InvalidInput indicates bad network data in a profile file or an
	// unparseable wpa_supplicant.conf
	InvalidInput = 3

	// NoInput indicates prompts were required but input ended or no
	// terminal was available
	NoInput = 4
)

// CodeForError returns the exit code carried by err or by any error it
// wraps, and IOError for untyped failures.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}

	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Code
	}

	return IOError
}
