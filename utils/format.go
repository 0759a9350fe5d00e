package utils

import (
	"errors"
	"fmt"
	"path"
	"strconv"

	"github.com/google/uuid"
)

const AllDayLabel = "All day"

var ErrInvalidFilename = errors.New("attachment filename is empty or not a file name")

// FormatDuration renders a catalog duration code: -1 is the whole day,
// 1..47 are half-hour steps from 0h00 to 23h00. Unknown codes are printed
// as is.
func FormatDuration(code int) string {
	if code == -1 {
		return AllDayLabel
	}
	if code < 1 || code > 47 {
		return strconv.Itoa(code)
	}
	minutes := (code - 1) * 30
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

// AttachmentPath is where files attached to an order are stored. Only the
// last element of filename is kept and it must name a file.
func AttachmentPath(ownerID, orderID uuid.UUID, filename string) (string, error) {
	base := path.Base(filename)
	switch base {
	case ".", "..", "/":
		return "", ErrInvalidFilename
	}
	return path.Join(ownerID.String(), "booking", orderID.String(), base), nil
}
