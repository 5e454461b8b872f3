package service

import (
	"fmt"
	"strings"
)

// ValidationError rejects an import whose workbook lacks required columns.
// The import is all-or-nothing: nothing is applied when this is returned.
type ValidationError struct {
	MissingColumns []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}
