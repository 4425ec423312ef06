package model

import "strings"

// RowLabel converts a zero-based row index to an alphabetical label like A,
// B, ..., Z, AA.  Negative indices yield an empty label.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// MaxRowLabelLen bounds the labels RowIndex accepts so the index cannot
// overflow.
const MaxRowLabelLen = 6

// RowIndex converts a row label like "A" or "aa" into its zero-based index.
// It reports false for empty labels, labels containing non-letters and
// labels longer than MaxRowLabelLen.
func RowIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" || len(s) > MaxRowLabelLen {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}
