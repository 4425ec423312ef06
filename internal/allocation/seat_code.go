package allocation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ParseSeatCode reads a seat code such as "A1" or "c06".  The row is one or
// more letters (case-insensitive) and the seat number is a positive integer
// counted from 1.  Only syntax is checked here; bounds are checked against
// the hall by Validate.
func ParseSeatCode(code string) (model.SeatRef, error) {
	s := strings.TrimSpace(code)
	split := 0
	for split < len(s) && isLetter(s[split]) {
		split++
	}
	if split == 0 || split == len(s) {
		return model.SeatRef{}, fmt.Errorf("%w: %q", ErrMalformedCode, code)
	}
	digits := s[split:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return model.SeatRef{}, fmt.Errorf("%w: %q", ErrMalformedCode, code)
		}
	}
	num, err := strconv.Atoi(digits)
	if err != nil || num < 1 {
		return model.SeatRef{}, fmt.Errorf("%w: %q", ErrMalformedCode, code)
	}
	row, ok := model.RowIndex(s[:split])
	if !ok {
		return model.SeatRef{}, fmt.Errorf("%w: %q", ErrMalformedCode, code)
	}
	return model.SeatRef{Row: row, Col: num - 1}, nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
