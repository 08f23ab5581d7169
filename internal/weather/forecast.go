package weather

import (
	"math"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

// dayBucket accumulates the 3-hour slices of one calendar date.
type dayBucket struct {
	tempMin     float64
	tempMax     float64
	humiditySum int
	windSum     float64
	slices      int
	condCounts  map[string]int
	condOrder   []string // conditions in first-appearance order
}

// aggregateDaily buckets 3-hourly entries by their UTC calendar date and
// summarizes at most days dates, in first-appearance order. Entries arrive
// chronologically, so the first date may be a partial day (a late "today").
func aggregateDaily(fc domain.Forecast, days int) domain.ForecastSeries {
	buckets := make(map[string]*dayBucket)
	var dates []string

	for _, e := range fc.Entries {
		date := e.Time.UTC().Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &dayBucket{
				tempMin:    e.Temp,
				tempMax:    e.Temp,
				condCounts: make(map[string]int),
			}
			buckets[date] = b
			dates = append(dates, date)
		}

		if e.Temp < b.tempMin {
			b.tempMin = e.Temp
		}
		if e.Temp > b.tempMax {
			b.tempMax = e.Temp
		}
		b.humiditySum += e.Humidity
		b.windSum += e.WindSpeed
		b.slices++
		if e.Condition != "" {
			if _, seen := b.condCounts[e.Condition]; !seen {
				b.condOrder = append(b.condOrder, e.Condition)
			}
			b.condCounts[e.Condition]++
		}
	}

	if days > len(dates) {
		days = len(dates)
	}

	series := domain.ForecastSeries{
		Location: fc.Location,
		Units:    fc.Units,
		Days:     make([]domain.ForecastDay, 0, days),
	}
	for _, date := range dates[:days] {
		b := buckets[date]
		n := float64(b.slices)
		series.Days = append(series.Days, domain.ForecastDay{
			Date:      date,
			TempMin:   b.tempMin,
			TempMax:   b.tempMax,
			Condition: dominantCondition(b.condCounts, b.condOrder),
			Humidity:  int(math.Round(float64(b.humiditySum) / n)),
			WindSpeed: math.Round(b.windSum/n*10) / 10,
		})
	}
	return series
}

// dominantCondition returns the most frequent condition of a day. Ties
// resolve to the last condition, in first-appearance order, among the tied
// set.
func dominantCondition(counts map[string]int, order []string) string {
	best := ""
	bestCount := 0
	for _, cond := range order {
		if counts[cond] >= bestCount {
			best = cond
			bestCount = counts[cond]
		}
	}
	return best
}
