package model

import "github.com/plankit/plankit/ir"

type MetricKind int

const (
	// MinimizeActionCosts sums per-action costs over the plan.
	MinimizeActionCosts MetricKind = iota
	// MinimizeMakespan minimizes total plan duration.
	MinimizeMakespan
	// MaximizeOversubscription maximizes the total weight of achieved
	// optional goals.
	MaximizeOversubscription
)

// ActionCost assigns a cost expression to an action.
type ActionCost struct {
	Action Action
	Cost   *ir.Expr
}

// WeightedGoal is an optional goal worth its weight when achieved.
type WeightedGoal struct {
	Goal   *ir.Expr
	Weight *ir.Expr
}

// Metric is a quality metric of a problem.
type Metric struct {
	Kind        MetricKind
	costs       []ActionCost
	DefaultCost *ir.Expr
	Goals       []WeightedGoal
}

func NewActionCostsMetric() *Metric {
	return &Metric{Kind: MinimizeActionCosts}
}

func NewOversubscriptionMetric(goals ...WeightedGoal) *Metric {
	return &Metric{Kind: MaximizeOversubscription, Goals: goals}
}

// SetCost records the cost of an action, replacing any previous entry.
func (m *Metric) SetCost(a Action, cost *ir.Expr) {
	for i := range m.costs {
		if m.costs[i].Action == a {
			m.costs[i].Cost = cost
			return
		}
	}
	m.costs = append(m.costs, ActionCost{Action: a, Cost: cost})
}

// Cost returns the recorded cost of a, or the default cost.
func (m *Metric) Cost(a Action) *ir.Expr {
	for _, c := range m.costs {
		if c.Action == a {
			return c.Cost
		}
	}
	return m.DefaultCost
}

// Costs returns the recorded per-action costs in insertion order.
func (m *Metric) Costs() []ActionCost {
	res := make([]ActionCost, len(m.costs))
	copy(res, m.costs)
	return res
}

func (m *Metric) Clone() *Metric {
	res := &Metric{Kind: m.Kind, DefaultCost: m.DefaultCost}
	res.costs = make([]ActionCost, len(m.costs))
	copy(res.costs, m.costs)
	res.Goals = make([]WeightedGoal, len(m.Goals))
	copy(res.Goals, m.Goals)
	return res
}
