package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Afrawles/contribstats/internal/contrib"
)

const (
	heatmapWeeks = 53
	fontFamily   = "-apple-system, BlinkMacSystemFont, Segoe UI, Helvetica, Arial, sans-serif"
)

// heatmapColors is the GitHub palette, index 0 = no activity.
var heatmapColors = [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// levelFor buckets a day count into a palette index.
func levelFor(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}

// Heatmap renders a contribution map as a 53-week calendar grid SVG.
type Heatmap struct {
	Title    string
	CellSize int
	CellGap  int
}

func NewHeatmap(title string) *Heatmap {
	return &Heatmap{
		Title:    title,
		CellSize: 10,
		CellGap:  2,
	}
}

// Render produces the SVG document. The grid is dense: it covers the 365 days
// ending at today, backfilling zero-count days, starting on the Monday at or
// before the window's first day.
func (h *Heatmap) Render(m contrib.ContributionMap, today time.Time) string {
	start := today.AddDate(0, 0, -364)
	daysSinceMonday := (int(start.Weekday()) + 6) % 7
	start = start.AddDate(0, 0, -daysSinceMonday)

	step := h.CellSize + h.CellGap

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="828" height="140" xmlns="http://www.w3.org/2000/svg">`+"\n")
	fmt.Fprintf(&b, `<text x="10" y="20" font-family="%s" font-size="14" font-weight="600" fill="#24292f">%s</text>`+"\n", fontFamily, h.Title)
	b.WriteString(`<g transform="translate(10, 35)">` + "\n")

	// Month labels above the first week of each month.
	currentMonth := ""
	for week := 0; week < heatmapWeeks; week++ {
		month := start.AddDate(0, 0, week*7).Format("Jan")
		if month != currentMonth {
			fmt.Fprintf(&b, `<text x="%d" y="-6" font-family="%s" font-size="9" fill="#767676">%s</text>`+"\n", week*step, fontFamily, month)
			currentMonth = month
		}
	}

	for i, weekday := range []string{"Mon", "Wed", "Fri"} {
		y := float64((i*2+1)*step) + float64(h.CellSize)/2
		fmt.Fprintf(&b, `<text x="-25" y="%g" font-family="%s" font-size="9" fill="#767676">%s</text>`+"\n", y, fontFamily, weekday)
	}

	for week := 0; week < heatmapWeeks; week++ {
		for dow := 0; dow < 7; dow++ {
			date := start.AddDate(0, 0, week*7+dow).Format(contrib.DateFormat)
			count := m[date]
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="2"><title>%s: %d contributions</title></rect>`+"\n",
				week*step, dow*step, h.CellSize, h.CellSize, heatmapColors[levelFor(count)], date, count)
		}
	}

	legendY := 85
	legendX := 10
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="%s" font-size="10" fill="#767676">Less</text>`+"\n", legendX, legendY+10, fontFamily)
	for i, color := range heatmapColors {
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="2"/>`+"\n", legendX+35+i*15, legendY, h.CellSize, h.CellSize, color)
	}
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="%s" font-size="10" fill="#767676">More</text>`+"\n", legendX+115, legendY+10, fontFamily)

	b.WriteString("</g>\n</svg>\n")
	return b.String()
}
