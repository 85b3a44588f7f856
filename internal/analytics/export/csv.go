// Package export renders analytics series to downloadable formats.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dashel-erp/dashel-erp/internal/analytics"
)

// WriteBucketsCSV serialises the bucketed sales series to CSV.
func WriteBucketsCSV(w io.Writer, buckets []analytics.Bucket) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Period", "Sales", "Cost", "Profit"}); err != nil {
		return err
	}
	for _, b := range buckets {
		if err := writer.Write([]string{
			b.Period,
			formatFloat(b.SalesTotal),
			formatFloat(b.CostTotal),
			formatFloat(b.Profit),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
