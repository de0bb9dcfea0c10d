package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidRow is returned when the row number in a URL path is invalid.
var ErrInvalidRow = errors.New("invalid row number")

// ExtractRow parses a sheet row number from a URL path after removing the
// given prefix. Row numbers start at 2 (row 1 is the header), so anything
// below that is rejected.
//
//	row, err := ExtractRow("/subscribers/7", "/subscribers/")
//	// 7, nil
func ExtractRow(path, prefix string) (int64, error) {
	rowStr := strings.TrimPrefix(path, prefix)
	row, err := strconv.ParseInt(rowStr, 10, 64)
	if err != nil || row < 2 {
		return 0, ErrInvalidRow
	}
	return row, nil
}
