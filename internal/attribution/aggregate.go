package attribution

import (
	"sort"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// Comparison lines up per-model attributed revenue on a shared touchpoint
// axis, with zeros substituted for touchpoints a model did not credit.
// Percent holds each model's column as percentage-of-column-sum; a model
// that credited nothing keeps an all-zero column.
type Comparison struct {
	Touchpoints []domain.TouchpointType
	Revenue     map[string]map[domain.TouchpointType]float64
	Percent     map[string]map[domain.TouchpointType]float64
}

// Compare combines model results into one comparison table. The touchpoint
// axis is the union of every credited touchpoint and the canonical types,
// sorted for stable output.
func Compare(results []Result) Comparison {
	seen := map[domain.TouchpointType]bool{
		domain.TouchpointView:     true,
		domain.TouchpointCart:     true,
		domain.TouchpointPurchase: true,
	}
	for _, result := range results {
		for touchpoint := range result.Values {
			seen[touchpoint] = true
		}
	}

	touchpoints := make([]domain.TouchpointType, 0, len(seen))
	for touchpoint := range seen {
		touchpoints = append(touchpoints, touchpoint)
	}
	sort.Slice(touchpoints, func(i, j int) bool { return touchpoints[i] < touchpoints[j] })

	revenue := make(map[string]map[domain.TouchpointType]float64, len(results))
	percent := make(map[string]map[domain.TouchpointType]float64, len(results))

	for _, result := range results {
		column := make(map[domain.TouchpointType]float64, len(touchpoints))
		total := 0.0
		for _, touchpoint := range touchpoints {
			value := result.Values[touchpoint]
			column[touchpoint] = value
			total += value
		}
		revenue[result.Model] = column

		shares := make(map[domain.TouchpointType]float64, len(touchpoints))
		for _, touchpoint := range touchpoints {
			if total > 0 {
				shares[touchpoint] = column[touchpoint] / total * 100
			} else {
				shares[touchpoint] = 0
			}
		}
		percent[result.Model] = shares
	}

	return Comparison{Touchpoints: touchpoints, Revenue: revenue, Percent: percent}
}

// JourneyStats aggregates the analyzed journeys.
type JourneyStats struct {
	AvgTouchpoints float64
	AvgDays        float64
	TotalJourneys  int
	TotalRevenue   float64
}

func SummarizeJourneys(records []Record) JourneyStats {
	stats := JourneyStats{TotalJourneys: len(records)}
	if len(records) == 0 {
		return stats
	}

	touchpoints := 0
	days := 0
	for _, record := range records {
		touchpoints += record.JourneyLength
		days += record.JourneyDays
		stats.TotalRevenue += record.PurchaseValue
	}
	stats.AvgTouchpoints = float64(touchpoints) / float64(len(records))
	stats.AvgDays = float64(days) / float64(len(records))
	return stats
}

// ModelScore is an editorial 1-10 rating of a model, not a computed
// quantity.
type ModelScore struct {
	Accuracy      int
	Fairness      int
	BusinessValue int
}

// Scorecard returns the fixed qualitative comparison published alongside
// the numeric attribution table.
func Scorecard() map[string]ModelScore {
	return map[string]ModelScore{
		ModelFirstTouch: {Accuracy: 3, Fairness: 2, BusinessValue: 4},
		ModelLastTouch:  {Accuracy: 3, Fairness: 2, BusinessValue: 4},
		ModelLinear:     {Accuracy: 5, Fairness: 6, BusinessValue: 6},
		ModelShapley:    {Accuracy: 8, Fairness: 9, BusinessValue: 8},
		ModelMarkov:     {Accuracy: 9, Fairness: 8, BusinessValue: 9},
	}
}
