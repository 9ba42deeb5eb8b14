package arena

import "fmt"

// MaxRegion caps every region created without an explicit limit. Requests beyond it
// report ErrExhausted instead of exhausting the process.
const MaxRegion = 1 << 32

// capOf returns the effective byte cap for a configured limit (0 = MaxRegion).
func capOf(limit int) int {
	if limit <= 0 || limit > MaxRegion {
		return MaxRegion
	}
	return limit
}

// checkExtend reports ErrExhausted when growing a region of cur bytes by n would
// pass the cap.
func checkExtend(limit, cur, n int) error {
	c := capOf(limit)
	if n > c-cur {
		return fmt.Errorf("%w: limit=%d, current=%d, requested=%d", ErrExhausted, c, cur, n)
	}
	return nil
}
