// content.go implements input size validation.
//
// Design: Only size is validated. Renderers accept any bytes; the limit
// exists so a stray "lens view /dev/zero" or a huge log file fails fast
// instead of exhausting memory inside a renderer.

package validate

import "fmt"

// Content validates input size.
//
// Validation rules:
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Content(size, maxLen int64) error {
	if maxLen > 0 && size > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrContentTooLarge, size, maxLen)
	}
	return nil
}
