package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Afrawles/contribstats/internal/contrib"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

func (e *CSVExporter) Export(m contrib.ContributionMap, summary Summary) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if err := e.exportDailyLog(m, timestamp); err != nil {
		return fmt.Errorf("failed to export daily log: %w", err)
	}

	if err := e.exportDashboard(m, summary, timestamp); err != nil {
		return fmt.Errorf("failed to export dashboard: %w", err)
	}

	return nil
}

func (e *CSVExporter) exportDailyLog(m contrib.ContributionMap, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("contributions_%s_daily.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"#", "Date", "Contributions", "Level"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, date := range m.Dates() {
		row := []string{
			strconv.Itoa(i + 1),
			date,
			strconv.Itoa(m[date]),
			strconv.Itoa(levelFor(m[date])),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (e *CSVExporter) exportDashboard(m contrib.ContributionMap, summary Summary, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("contributions_%s_dashboard.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Contributions", strconv.Itoa(summary.TotalContributions)},
		{"Active Days", strconv.Itoa(summary.ActiveDays)},
		{"Current Streak", strconv.Itoa(summary.CurrentStreak)},
		{"Max Streak", strconv.Itoa(summary.MaxStreak)},
	}
	if summary.BusiestDay != "" {
		rows = append(rows, []string{"Busiest Day", fmt.Sprintf("%s (%d)", summary.BusiestDay, summary.BusiestCount)})
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Month", "Active Days", "Contributions"}); err != nil {
		return err
	}

	for _, month := range monthlyTotals(m) {
		row := []string{
			month.Month,
			strconv.Itoa(month.ActiveDays),
			strconv.Itoa(month.Contributions),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

type monthTotal struct {
	Month         string
	ActiveDays    int
	Contributions int
}

// monthlyTotals groups the map by YYYY-MM, ascending.
func monthlyTotals(m contrib.ContributionMap) []monthTotal {
	var months []monthTotal
	index := make(map[string]int)

	for _, date := range m.Dates() {
		if len(date) < 7 {
			continue
		}
		month := date[:7]

		i, ok := index[month]
		if !ok {
			i = len(months)
			index[month] = i
			months = append(months, monthTotal{Month: month})
		}

		months[i].Contributions += m[date]
		if m[date] > 0 {
			months[i].ActiveDays++
		}
	}

	return months
}
