package screeningsrv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Abraxas-365/sift/screening"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{"Candidate Name", "Total Experience", "Email", "Contact Number"}

// WriteCSV serializes the results as a comma-separated table with the fixed
// column order. Quoting follows standard CSV rules.
func WriteCSV(w io.Writer, results []screening.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, res := range results {
		record := []string{
			res.CandidateName,
			res.TotalExperience,
			res.Email,
			res.ContactNumber,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row for %s: %w", res.CandidateName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
