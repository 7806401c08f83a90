package attribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// State is a node in the transition model: a touchpoint type, or the
// synthetic start state every user path is prefixed with.
type State string

const StateStart State = "START"

// StatePurchase is the absorbing terminal state of the chain.
const StatePurchase = State(domain.TouchpointPurchase)

const rowSumTolerance = 1e-9

// TransitionModel holds per-state probability distributions over next
// states. States without observed outgoing transitions are absent rather
// than zero-filled. Models are never mutated after construction; removal
// produces a new derived model.
type TransitionModel struct {
	probs map[State]map[State]float64
}

// BuildTransitionModel counts adjacent transitions over START-prefixed user
// event paths and normalizes each state's outgoing counts into
// probabilities. Only the first maxUsers histories are consumed (all of
// them when maxUsers <= 0), and users with fewer than two events contribute
// nothing. Transitions observed after a purchase are counted as-is;
// purchase only acts as absorbing during absorption estimation.
func BuildTransitionModel(histories []UserHistory, maxUsers int) *TransitionModel {
	counts := make(map[State]map[State]float64)

	users := 0
	for _, history := range histories {
		if maxUsers > 0 && users >= maxUsers {
			break
		}
		users++

		if len(history.Events) < 2 {
			continue
		}

		from := StateStart
		for _, event := range history.Events {
			to := State(event.EventType)
			row, ok := counts[from]
			if !ok {
				row = make(map[State]float64)
				counts[from] = row
			}
			row[to]++
			from = to
		}
	}

	probs := make(map[State]map[State]float64, len(counts))
	for from, row := range counts {
		total := 0.0
		for _, count := range row {
			total += count
		}
		normalized := make(map[State]float64, len(row))
		for to, count := range row {
			normalized[to] = count / total
		}
		probs[from] = normalized
	}

	return &TransitionModel{probs: probs}
}

// NewTransitionModel builds a model from explicit probability rows,
// validating that every row sums to one. Empty rows are rejected; states
// without outgoing transitions must simply be absent.
func NewTransitionModel(probs map[State]map[State]float64) (*TransitionModel, error) {
	copied := make(map[State]map[State]float64, len(probs))
	for from, row := range probs {
		if len(row) == 0 {
			return nil, fmt.Errorf("state %q has an empty transition row", from)
		}
		total := 0.0
		dst := make(map[State]float64, len(row))
		for to, p := range row {
			dst[to] = p
			total += p
		}
		if math.Abs(total-1) > rowSumTolerance {
			return nil, fmt.Errorf("outgoing probabilities of state %q sum to %v, want 1", from, total)
		}
		copied[from] = dst
	}
	return &TransitionModel{probs: copied}, nil
}

// Empty reports whether the model has no transitions at all.
func (m *TransitionModel) Empty() bool {
	return len(m.probs) == 0
}

// Probability returns the transition probability from one state to another,
// zero when the edge does not exist.
func (m *TransitionModel) Probability(from, to State) float64 {
	return m.probs[from][to]
}

// Row returns a copy of a state's outgoing distribution, nil when the state
// has no outgoing transitions.
func (m *TransitionModel) Row(from State) map[State]float64 {
	row, ok := m.probs[from]
	if !ok {
		return nil
	}
	copied := make(map[State]float64, len(row))
	for to, p := range row {
		copied[to] = p
	}
	return copied
}

// States returns every state observed as a source, sorted for deterministic
// iteration.
func (m *TransitionModel) States() []State {
	states := make([]State, 0, len(m.probs))
	for state := range m.probs {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Touchpoints returns every state that is a removal candidate: all states
// observed as a source or target except START and purchase, sorted.
func (m *TransitionModel) Touchpoints() []State {
	seen := make(map[State]bool)
	for from, row := range m.probs {
		seen[from] = true
		for to := range row {
			seen[to] = true
		}
	}
	delete(seen, StateStart)
	delete(seen, StatePurchase)

	states := make([]State, 0, len(seen))
	for state := range seen {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Without derives a new model with the given state excised: its outgoing
// row is dropped, edges into it are cut, and every remaining row is
// renormalized to sum to one. A state whose only edges pointed at the
// removed state loses its row entirely and becomes a dead end.
func (m *TransitionModel) Without(removed State) *TransitionModel {
	probs := make(map[State]map[State]float64, len(m.probs))

	for from, row := range m.probs {
		if from == removed {
			continue
		}

		remaining := 0.0
		for to, p := range row {
			if to != removed {
				remaining += p
			}
		}
		if remaining <= 0 {
			continue
		}

		normalized := make(map[State]float64, len(row))
		for to, p := range row {
			if to != removed {
				normalized[to] = p / remaining
			}
		}
		probs[from] = normalized
	}

	return &TransitionModel{probs: probs}
}

// ConversionProbability estimates P(reach purchase from START) with a
// truncated power iteration: each step absorbs the mass sitting on the
// purchase state and pushes the rest along outgoing edges. Iteration stops
// after maxSteps or once the unabsorbed mass falls below minResidualMass.
// Mass reaching a dead-end state disappears, which is exactly the intended
// zero contribution of a degenerate row.
func (m *TransitionModel) ConversionProbability(maxSteps int, minResidualMass float64) float64 {
	current := map[State]float64{StateStart: 1}
	absorbed := 0.0

	for step := 0; step < maxSteps; step++ {
		next := make(map[State]float64)

		for state, p := range current {
			if state == StatePurchase {
				absorbed += p
				continue
			}
			for to, transition := range m.probs[state] {
				next[to] += p * transition
			}
		}

		current = next

		remaining := 0.0
		for _, p := range current {
			remaining += p
		}
		if remaining < minResidualMass {
			break
		}
	}

	return absorbed
}

type MarkovConfig struct {
	// SampleUsers caps how many histories the chain is built from.
	SampleUsers int
	// PoolJourneys selects how many leading records form the revenue pool
	// that removal effects are converted into.
	PoolJourneys int
	// MaxSteps bounds the absorption power iteration.
	MaxSteps int
	// MinResidualMass stops the iteration early once this little mass is
	// still circulating.
	MinResidualMass float64
}

// MarkovModel attributes revenue via removal effects: the drop in modeled
// conversion probability when a touchpoint state is excised from the chain.
type MarkovModel struct {
	config MarkovConfig
}

func NewMarkovModel(config MarkovConfig) *MarkovModel {
	if config.SampleUsers == 0 {
		config.SampleUsers = 5000
	}
	if config.PoolJourneys == 0 {
		config.PoolJourneys = 100
	}
	if config.MaxSteps == 0 {
		config.MaxSteps = 10
	}
	if config.MinResidualMass == 0 {
		config.MinResidualMass = 0.001
	}
	return &MarkovModel{config: config}
}

func (*MarkovModel) Name() string { return ModelMarkov }

func (m *MarkovModel) Attribute(batch Batch) Result {
	model := BuildTransitionModel(batch.Histories, m.config.SampleUsers)
	if model.Empty() {
		return Result{Model: ModelMarkov, Values: make(map[domain.TouchpointType]float64), Empty: true}
	}

	effects := m.RemovalEffects(model)

	total := 0.0
	for _, effect := range effects {
		total += effect
	}

	pool := 0.0
	records := batch.Records
	if len(records) > m.config.PoolJourneys {
		records = records[:m.config.PoolJourneys]
	}
	for _, record := range records {
		pool += record.PurchaseValue
	}

	// Zero total removal effect yields all-zero shares by policy, not an
	// error: the chain was computed, it just credits nothing.
	values := make(map[domain.TouchpointType]float64, len(effects))
	if total > 0 {
		for touchpoint, effect := range effects {
			if effect > 0 {
				values[touchpoint] = effect / total * pool
			}
		}
	}

	return Result{Model: ModelMarkov, Values: values, Empty: false}
}

// RemovalEffects computes the conversion-probability loss caused by
// removing each candidate touchpoint state. A removal that would increase
// reachability is clamped to zero rather than credited negatively.
func (m *MarkovModel) RemovalEffects(model *TransitionModel) map[domain.TouchpointType]float64 {
	baseline := model.ConversionProbability(m.config.MaxSteps, m.config.MinResidualMass)

	effects := make(map[domain.TouchpointType]float64)
	for _, state := range model.Touchpoints() {
		modified := model.Without(state)
		effect := baseline - modified.ConversionProbability(m.config.MaxSteps, m.config.MinResidualMass)
		if effect < 0 {
			effect = 0
		}
		effects[domain.TouchpointType(state)] = effect
	}

	return effects
}
