package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCellRef parses a single-cell reference such as "D9", "$AA$12" or
// "'Planilha 1'!$J$9" into zero-based (row, col) coordinates. Multi-letter
// columns are supported.
func ParseCellRef(ref string) (row, col int, err error) {
	clean := ref
	if i := strings.LastIndex(clean, "!"); i >= 0 {
		clean = clean[i+1:]
	}
	clean = strings.NewReplacer("'", "", "$", "").Replace(clean)
	clean = strings.TrimSpace(strings.ToUpper(clean))
	if clean == "" {
		return 0, 0, fmt.Errorf("empty cell reference %q", ref)
	}

	i := 0
	for i < len(clean) && clean[i] >= 'A' && clean[i] <= 'Z' {
		col = col*26 + int(clean[i]-'A'+1)
		i++
	}
	if col == 0 || i == len(clean) {
		return 0, 0, fmt.Errorf("malformed cell reference %q", ref)
	}
	n, err := strconv.Atoi(clean[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("malformed row in cell reference %q", ref)
	}
	return n - 1, col - 1, nil
}
