package solver

import (
	"strconv"
	"strings"
)

// CompareVersions orders conda-style version strings. Dot-separated segments
// compare numerically when both sides are numeric, lexicographically
// otherwise; a version that is a prefix of a longer one orders first.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := atoi(as[i])
		bn, bNum := atoi(bs[i])

		switch {
		case aNum && bNum:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
