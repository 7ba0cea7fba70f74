package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ymori23/ranking-server/internal/server/models"
)

// expectedColumns is the spreadsheet layout: username, followers, store_name,
// popularity, region. Only the first two are required; the parser pads the
// rest with blanks because the reader drops trailing empty cells. A sheet
// whose header is narrower than the full layout has no such cells to drop,
// so its rows are rejected instead of padded.
const (
	expectedColumns = 5
	requiredColumns = 2
)

// RowError is a validation failure scoped to a single spreadsheet row. It is
// collected into the import report and never aborts the batch.
type RowError struct {
	Row      int
	Username string
	Reason   string
}

func (e *RowError) Error() string {
	username := e.Username
	if username == "" {
		username = "unknown"
	}
	return fmt.Sprintf("row %d (%s): %s", e.Row, username, e.Reason)
}

// intCell coerces a cell to an integer; a blank cell counts as zero.
func intCell(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// parseRow validates one data row. rowNum is the 1-indexed spreadsheet row
// number (the header is row 1), used in error messages; sheetWidth is the
// header row's cell count.
func parseRow(cells []string, rowNum, sheetWidth int) (*models.Influencer, *RowError) {

	if sheetWidth < expectedColumns || len(cells) < requiredColumns {
		return nil, &RowError{Row: rowNum, Reason: "not enough columns, check the spreadsheet format"}
	}
	for len(cells) < expectedColumns {
		cells = append(cells, "")
	}

	username := strings.TrimSpace(cells[0])
	if username == "" {
		return nil, &RowError{Row: rowNum, Reason: "missing required fields (username, followers)"}
	}

	followers, err := intCell(cells[1])
	if err != nil {
		return nil, &RowError{Row: rowNum, Username: username, Reason: "invalid number in followers column"}
	}

	popularity, err := intCell(cells[3])
	if err != nil {
		return nil, &RowError{Row: rowNum, Username: username, Reason: "invalid number in popularity column"}
	}

	return &models.Influencer{
		Username:   username,
		Followers:  followers,
		StoreName:  strings.TrimSpace(cells[2]),
		Popularity: popularity,
		Region:     strings.TrimSpace(cells[4]),
	}, nil
}
