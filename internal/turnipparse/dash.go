package turnipparse

import "strings"

const (
	enDash = "–"
	emDash = "—"
)

// expandHyphens implements spec §4.6: a run of n hyphens expands to a
// single hyphen at n=1, an en-dash at n=2, an em-dash at n=3, and for
// n>=4 as many em-dashes as fit (n/3, the tie-break "toward em-dashes"
// that floor division already gives) followed by a single hyphen or
// en-dash remainder for whatever length is left over (n%3 is 0, 1, or 2;
// a remainder of 2 must render as one en-dash, not two hyphens, or the
// result would itself be a Hyphens(2) run and expansion would not be a
// fixed point).
func expandHyphens(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "-"
	case 2:
		return enDash
	case 3:
		return emDash
	default:
		ems := n / 3
		rem := n % 3

		var sb strings.Builder
		sb.WriteString(strings.Repeat(emDash, ems))
		switch rem {
		case 1:
			sb.WriteString("-")
		case 2:
			sb.WriteString(enDash)
		}

		return sb.String()
	}
}
