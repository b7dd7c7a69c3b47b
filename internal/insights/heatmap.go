package insights

import (
	"time"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

// Day statuses for the heatmap calendar.
const (
	DayActive   = "active"
	DaySkipped  = "skipped"
	DayUpcoming = "upcoming"
)

// DayStatus describes one calendar cell.
type DayStatus struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Day    string `json:"day"`  // Monday, Tuesday, ...
	Status string `json:"status"`
}

// MonthlyHeatmap is the calendar payload for one month.
type MonthlyHeatmap struct {
	Month      int         `json:"month"`
	Year       int         `json:"year"`
	ActiveDays int         `json:"active_days"`
	Days       []DayStatus `json:"days"`
}

// Heatmap maps a month of calendar days against the user's entries.
// Days with an entry are active, past days without one are skipped and
// days after "now" are upcoming. All day math is UTC, matching the engine.
func Heatmap(entries []challenge.Entry, month int, year int, now time.Time) MonthlyHeatmap {
	active := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		active[e.Date.UTC().Format("2006-01-02")] = struct{}{}
	}

	today := now.UTC().Format("2006-01-02")
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	out := MonthlyHeatmap{Month: month, Year: year, Days: []DayStatus{}}
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		status := DaySkipped
		if _, ok := active[date]; ok {
			status = DayActive
			out.ActiveDays++
		} else if date > today {
			status = DayUpcoming
		}
		out.Days = append(out.Days, DayStatus{
			Date:   date,
			Day:    d.Weekday().String(),
			Status: status,
		})
	}
	return out
}
