// errors.go holds the validation sentinels. Callers match them with
// errors.Is; the wrapped message names the offending value.

package validate

import "errors"

var (
	// ErrInvalidName covers plugin ids, themes and file types.
	ErrInvalidName = errors.New("invalid name")
	// ErrContentTooLarge is returned when input exceeds limits.max_content.
	ErrContentTooLarge = errors.New("content too large")
)
