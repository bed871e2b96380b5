package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/workwell/schema"
)

// writeCSVHeatmap writes one row per sector in display order.
func writeCSVHeatmap(w io.Writer, h schema.Heatmap, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "sector", "total_records", "stress", "happiness", "anxiety", "motivation", "index", "tier", "metric"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, row := range h.Sectors {
			if err := cw.Write([]string{
				strconv.Itoa(i + 1),
				row.Sector,
				fmt.Sprintf(intFmt, row.TotalRecords),
				fmtFloat(row.Averages.Stress),
				fmtFloat(row.Averages.Happiness),
				fmtFloat(row.Averages.Anxiety),
				fmtFloat(row.Averages.Motivation),
				fmtFloat(row.Index),
				string(row.Tier),
				string(h.Metric),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSVStatistics writes a single summary row.
func writeCSVStatistics(w io.Writer, st schema.Statistics, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"company_id", "days", "total_records", "total_employees", "stress", "happiness", "anxiety", "motivation", "index", "tier"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			fmt.Sprintf(intFmt, st.CompanyID),
			strconv.Itoa(st.Days),
			fmt.Sprintf(intFmt, st.TotalRecords),
			fmt.Sprintf(intFmt, st.TotalEmployees),
			fmtFloat(st.Averages.Stress),
			fmtFloat(st.Averages.Happiness),
			fmtFloat(st.Averages.Anxiety),
			fmtFloat(st.Averages.Motivation),
			fmtFloat(st.Index),
			string(st.Tier),
		})
	})
}

func writeCSVSectors(w io.Writer, sectors []schema.Sector, intFmt string) error {
	header := []string{"id", "company_id", "name", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range sectors {
			if err := cw.Write([]string{
				fmt.Sprintf(intFmt, s.ID),
				fmt.Sprintf(intFmt, s.CompanyID),
				s.Name,
				s.Description,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
