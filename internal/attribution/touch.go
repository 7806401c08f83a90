package attribution

import "github.com/step6836/marketing-attribution/internal/domain"

// FirstTouchModel credits each journey's full purchase value to its first
// touchpoint.
type FirstTouchModel struct{}

func (FirstTouchModel) Name() string { return ModelFirstTouch }

func (FirstTouchModel) Attribute(batch Batch) Result {
	values := make(map[domain.TouchpointType]float64)
	for _, record := range batch.Records {
		values[record.FirstTouch] += record.PurchaseValue
	}
	return Result{Model: ModelFirstTouch, Values: values, Empty: len(batch.Records) == 0}
}

// LastTouchModel credits each journey's full purchase value to the
// touchpoint immediately preceding the purchase.
type LastTouchModel struct{}

func (LastTouchModel) Name() string { return ModelLastTouch }

func (LastTouchModel) Attribute(batch Batch) Result {
	values := make(map[domain.TouchpointType]float64)
	for _, record := range batch.Records {
		values[record.LastTouch] += record.PurchaseValue
	}
	return Result{Model: ModelLastTouch, Values: values, Empty: len(batch.Records) == 0}
}

// LinearModel splits a journey's value into equal per-touchpoint shares and
// credits one share to the first touch, plus another to the last touch when
// the journey has more than one touchpoint and the two differ. Note that a
// journey whose first and last touch differ is credited two shares in total,
// so per-journey credit does not always equal the purchase value. SumToOne
// switches to a corrected split where each journey's credit sums exactly to
// its purchase value.
type LinearModel struct {
	SumToOne bool
}

func (LinearModel) Name() string { return ModelLinear }

func (m LinearModel) Attribute(batch Batch) Result {
	values := make(map[domain.TouchpointType]float64)
	for _, record := range batch.Records {
		if record.JourneyLength == 0 {
			continue
		}

		split := record.JourneyLength > 1 && record.FirstTouch != record.LastTouch

		if m.SumToOne {
			if split {
				values[record.FirstTouch] += record.PurchaseValue / 2
				values[record.LastTouch] += record.PurchaseValue / 2
			} else {
				values[record.FirstTouch] += record.PurchaseValue
			}
			continue
		}

		share := record.PurchaseValue / float64(record.JourneyLength)
		values[record.FirstTouch] += share
		if split {
			values[record.LastTouch] += share
		}
	}
	return Result{Model: ModelLinear, Values: values, Empty: len(batch.Records) == 0}
}
