package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHeatmap outputs the sector heatmap, dispatching based on the output format configured.
func PrintHeatmap(h schema.Heatmap, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, h)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHeatmap(w, h, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHeatmapTable(w, h, cfg, fmtFloat, intFmt, duration)
		}, "Wrote text"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeHeatmapTable prints one row per sector. The highlighted metric's header carries a "*".
func writeHeatmapTable(w io.Writer, h schema.Heatmap, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Sector", "Records"}
	for _, m := range schema.AllMetrics {
		name := metricTitle(m)
		if m == h.Metric {
			name += "*"
		}
		headers = append(headers, name)
	}
	headers = append(headers, "Index", "Tier")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(h.Sectors))
	for i, row := range h.Sectors {
		cells := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(row.Sector, GetMaxTableTextWidth(cfg)),
			fmt.Sprintf(intFmt, row.TotalRecords),
		}
		for _, m := range schema.AllMetrics {
			cells = append(cells, fmtFloat(row.Averages.Value(m)))
		}
		cells = append(cells, fmtFloat(row.Index), tierLabel(row.Tier, cfg))
		data = append(data, cells)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	total := 0
	for _, row := range h.Sectors {
		total += row.TotalRecords
	}
	_, _ = fmt.Fprintf(w, "Showing %d sectors for company %d over the last %d days (%d records, highlighted metric: %s)\n",
		len(h.Sectors), h.CompanyID, h.Days, total, h.Metric)
	_, err := fmt.Fprintf(w, "Report built in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// PrintStatistics outputs company-wide statistics.
func PrintStatistics(st schema.Statistics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, st)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVStatistics(w, st, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			rows := [][]string{
				{"Company", fmt.Sprintf(intFmt, st.CompanyID)},
				{"Period", fmt.Sprintf("last %d days", st.Days)},
				{"Records", fmt.Sprintf(intFmt, st.TotalRecords)},
				{"Employees", fmt.Sprintf(intFmt, st.TotalEmployees)},
			}
			for _, m := range schema.AllMetrics {
				rows = append(rows, []string{metricTitle(m), fmtFloat(st.Averages.Value(m))})
			}
			if st.TotalRecords > 0 {
				rows = append(rows,
					[]string{"Index", fmtFloat(st.Index)},
					[]string{"Tier", tierLabel(st.Tier, cfg)},
				)
			}
			if err := renderKeyValue(w, rows); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Report built in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
			return err
		}, "Wrote text")
	}
}

// PrintSectors outputs a list of sectors.
func PrintSectors(sectors []schema.Sector, cfg *contract.Config) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, sectors)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSectors(w, sectors, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"ID", "Name", "Description"})
			table.Configure(func(cfg *tablewriter.Config) {
				cfg.Row.Alignment.Global = tw.AlignLeft
			})
			width := GetMaxTableTextWidth(cfg)
			data := make([][]string, 0, len(sectors))
			for _, s := range sectors {
				data = append(data, []string{
					fmt.Sprintf(intFmt, s.ID),
					s.Name,
					contract.TruncateText(s.Description, width),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Showing %d sectors\n", len(sectors))
			return err
		}, "Wrote text")
	}
}

func metricTitle(m schema.Metric) string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
