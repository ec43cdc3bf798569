package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Afrawles/contribstats/internal/contrib"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

func (e *ExcelExporter) Export(m contrib.ContributionMap, summary Summary) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("contributions_%s.xlsx", timestamp))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, "Dashboard", m, summary); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	if err := e.createDailyLogSheet(f, "Daily Log", m); err != nil {
		return fmt.Errorf("failed to create daily log: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		//NOTE:
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}

	return nil
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, sheetName string, m contrib.ContributionMap, summary Summary) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#40C463"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	totalStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#B4C7E7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, "A1", "Generated:")
	f.SetCellValue(sheetName, "B1", summary.GeneratedAt.Format("02-01-06 15:04"))

	metrics := []struct {
		name  string
		value int
	}{
		{"Total Contributions", summary.TotalContributions},
		{"Active Days", summary.ActiveDays},
		{"Current Streak", summary.CurrentStreak},
		{"Max Streak", summary.MaxStreak},
		{"Busiest Day Count", summary.BusiestCount},
	}

	row := 3
	f.SetCellValue(sheetName, cellName(1, row), "Metric")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), headerStyle)
	f.SetCellValue(sheetName, cellName(2, row), "Value")
	f.SetCellStyle(sheetName, cellName(2, row), cellName(2, row), headerStyle)
	row++

	for _, metric := range metrics {
		f.SetCellValue(sheetName, cellName(1, row), metric.name)
		f.SetCellValue(sheetName, cellName(2, row), metric.value)
		row++
	}

	row++
	f.SetCellValue(sheetName, cellName(1, row), "Source")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), headerStyle)
	f.SetCellValue(sheetName, cellName(2, row), "Contributions")
	f.SetCellStyle(sheetName, cellName(2, row), cellName(2, row), headerStyle)
	row++

	for name, count := range summary.BySource {
		f.SetCellValue(sheetName, cellName(1, row), name)
		f.SetCellValue(sheetName, cellName(2, row), count)
		row++
	}

	row++
	f.SetCellValue(sheetName, cellName(1, row), "Month")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), headerStyle)
	f.SetCellValue(sheetName, cellName(2, row), "Active Days")
	f.SetCellStyle(sheetName, cellName(2, row), cellName(2, row), headerStyle)
	f.SetCellValue(sheetName, cellName(3, row), "Contributions")
	f.SetCellStyle(sheetName, cellName(3, row), cellName(3, row), headerStyle)
	row++

	totalActive := 0
	totalContribs := 0
	for _, month := range monthlyTotals(m) {
		f.SetCellValue(sheetName, cellName(1, row), month.Month)
		f.SetCellValue(sheetName, cellName(2, row), month.ActiveDays)
		f.SetCellValue(sheetName, cellName(3, row), month.Contributions)
		totalActive += month.ActiveDays
		totalContribs += month.Contributions
		row++
	}

	f.SetCellValue(sheetName, cellName(1, row), "Total")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), totalStyle)
	f.SetCellValue(sheetName, cellName(2, row), totalActive)
	f.SetCellStyle(sheetName, cellName(2, row), cellName(2, row), totalStyle)
	f.SetCellValue(sheetName, cellName(3, row), totalContribs)
	f.SetCellStyle(sheetName, cellName(3, row), cellName(3, row), totalStyle)

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "C", 15)

	return nil
}

func (e *ExcelExporter) createDailyLogSheet(f *excelize.File, sheetName string, m contrib.ContributionMap) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#40C463"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	headers := []string{"#", "Date", "Contributions", "Level"}
	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, date := range m.Dates() {
		row := i + 2
		f.SetCellValue(sheetName, cellName(1, row), i+1)
		f.SetCellValue(sheetName, cellName(2, row), date)
		f.SetCellValue(sheetName, cellName(3, row), m[date])
		f.SetCellValue(sheetName, cellName(4, row), levelFor(m[date]))
	}

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "D", 14)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
