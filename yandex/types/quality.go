package types

import (
	"fmt"
)

// ResolveQuality maps the 1..4 config value onto the API quality tier.
func ResolveQuality(n int) (string, error) {
	switch n {
	case 1:
		return "lq", nil
	case 2:
		return "nq", nil
	case 3:
		return "hq", nil
	case 4:
		return "lossless", nil
	default:
		return "", fmt.Errorf("quality must be between 1 and 4, got: %d", n)
	}
}
