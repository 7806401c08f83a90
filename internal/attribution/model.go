package attribution

import "github.com/step6836/marketing-attribution/internal/domain"

const (
	ModelFirstTouch = "first_touch"
	ModelLastTouch  = "last_touch"
	ModelLinear     = "linear"
	ModelShapley    = "shapley"
	ModelMarkov     = "markov"
)

// Batch is the immutable input shared by every attribution model: the
// per-purchase journey records plus the users' full event histories the
// Markov model builds its chain from.
type Batch struct {
	Records   []Record
	Histories []UserHistory
}

// Result maps touchpoint types to the revenue a model credited to them.
// Empty reports that the model had no usable data, as opposed to having
// computed zero values; callers can tell the two apart without sentinel
// errors.
type Result struct {
	Model  string
	Values map[domain.TouchpointType]float64
	Empty  bool
}

// Model assigns a batch's conversion revenue to the touchpoints that
// contributed to it.
type Model interface {
	Name() string
	Attribute(batch Batch) Result
}
