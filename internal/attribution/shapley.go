package attribution

import (
	"math"
	"math/bits"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// ConversionEstimator estimates the probability that a journey containing
// the given set of touchpoints converts. Implementations must return values
// in [0, 1] and 0 for the empty set.
type ConversionEstimator interface {
	Probability(touchpoints []domain.TouchpointType) float64
}

// HeuristicEstimator is a fixed stand-in for a conversion model that would
// otherwise be learned from data. Probability saturates with touchpoint
// diversity and is capped below certainty.
type HeuristicEstimator struct {
	Weights       map[domain.TouchpointType]float64
	DefaultWeight float64
	Cap           float64
}

func NewHeuristicEstimator() *HeuristicEstimator {
	return &HeuristicEstimator{
		Weights: map[domain.TouchpointType]float64{
			domain.TouchpointView:     0.3,
			domain.TouchpointCart:     0.6,
			domain.TouchpointPurchase: 1.0,
		},
		DefaultWeight: 0.1,
		Cap:           0.95,
	}
}

func (e *HeuristicEstimator) Probability(touchpoints []domain.TouchpointType) float64 {
	if len(touchpoints) == 0 {
		return 0
	}

	seen := make(map[domain.TouchpointType]bool, len(touchpoints))
	total := 0.0
	for _, touchpoint := range touchpoints {
		if seen[touchpoint] {
			continue
		}
		seen[touchpoint] = true

		weight, ok := e.Weights[touchpoint]
		if !ok {
			weight = e.DefaultWeight
		}
		total += weight
	}

	return math.Min(e.Cap, 1-math.Exp(-total/2))
}

type ShapleyConfig struct {
	// SampleJourneys caps how many records of a batch are analyzed.
	SampleJourneys int
	// MaxTouchpoints bounds the distinct-touchpoint set size; coalition
	// enumeration is O(2^n) per journey, so larger sets are skipped.
	MaxTouchpoints int
}

// ShapleyModel assigns each touchpoint its average marginal contribution to
// the journey's conversion probability across all coalitions of the
// journey's other touchpoints, scaled by the purchase value.
type ShapleyModel struct {
	estimator ConversionEstimator
	config    ShapleyConfig
}

// NewShapleyModel creates a Shapley model. A nil estimator falls back to
// the built-in heuristic.
func NewShapleyModel(estimator ConversionEstimator, config ShapleyConfig) *ShapleyModel {
	if estimator == nil {
		estimator = NewHeuristicEstimator()
	}
	if config.SampleJourneys == 0 {
		config.SampleJourneys = 100
	}
	if config.MaxTouchpoints == 0 {
		config.MaxTouchpoints = 12
	}
	return &ShapleyModel{estimator: estimator, config: config}
}

func (*ShapleyModel) Name() string { return ModelShapley }

func (m *ShapleyModel) Attribute(batch Batch) Result {
	records := batch.Records
	if len(records) > m.config.SampleJourneys {
		records = records[:m.config.SampleJourneys]
	}

	values := make(map[domain.TouchpointType]float64)
	analyzed := 0
	for _, record := range records {
		touchpoints := journeyTouchpoints(record)
		if len(touchpoints) > m.config.MaxTouchpoints {
			continue
		}
		for touchpoint, value := range m.JourneyValues(touchpoints, record.PurchaseValue) {
			values[touchpoint] += value
		}
		analyzed++
	}

	return Result{Model: ModelShapley, Values: values, Empty: analyzed == 0}
}

// JourneyValues computes the Shapley decomposition of value across one
// journey's distinct touchpoints. By efficiency the values sum to the full
// set's conversion probability times value; a single-touchpoint journey is
// special-cased to carry the entire value.
func (m *ShapleyModel) JourneyValues(touchpoints []domain.TouchpointType, value float64) map[domain.TouchpointType]float64 {
	distinct := distinctTouchpoints(touchpoints)
	n := len(distinct)

	out := make(map[domain.TouchpointType]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[distinct[0]] = value
		return out
	}

	for i, touchpoint := range distinct {
		others := make([]domain.TouchpointType, 0, n-1)
		others = append(others, distinct[:i]...)
		others = append(others, distinct[i+1:]...)

		sum := 0.0
		for mask := 0; mask < 1<<uint(n-1); mask++ {
			coalition := make([]domain.TouchpointType, 0, n)
			for j, other := range others {
				if mask&(1<<uint(j)) != 0 {
					coalition = append(coalition, other)
				}
			}

			without := m.estimator.Probability(coalition)
			with := m.estimator.Probability(append(coalition, touchpoint))

			// Probability that this coalition precedes the touchpoint under
			// a uniformly random arrival order.
			size := bits.OnesCount(uint(mask))
			weight := factorial(size) * factorial(n-size-1) / factorial(n)

			sum += weight * (with - without)
		}

		out[touchpoint] = sum * value
	}

	return out
}

// journeyTouchpoints reconstructs the touchpoint set a record's journey is
// summarized by: the first touch, plus the last touch for journeys with more
// than one touchpoint.
func journeyTouchpoints(record Record) []domain.TouchpointType {
	touchpoints := []domain.TouchpointType{record.FirstTouch}
	if record.JourneyLength > 1 {
		touchpoints = append(touchpoints, record.LastTouch)
	}
	return touchpoints
}

func distinctTouchpoints(touchpoints []domain.TouchpointType) []domain.TouchpointType {
	seen := make(map[domain.TouchpointType]bool, len(touchpoints))
	distinct := make([]domain.TouchpointType, 0, len(touchpoints))
	for _, touchpoint := range touchpoints {
		if seen[touchpoint] {
			continue
		}
		seen[touchpoint] = true
		distinct = append(distinct, touchpoint)
	}
	return distinct
}

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}
