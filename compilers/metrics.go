package compilers

import (
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// retargetCosts re-keys the action-cost metrics of a compiled problem
// whose actions were cloned or split: each output action inherits the
// explicit cost of the input action it was derived from, read off the
// trace. Synthetic actions (nil in the trace) cost zero so they cannot
// distort the metric. Metrics of other kinds are left as the compiler
// produced them.
func retargetCosts(orig, compiled *model.Problem, trace map[string]model.Action) {
	oms := orig.Metrics()
	metrics := compiled.Metrics()
	compiled.ClearMetrics()
	for i, m := range metrics {
		if m.Kind != model.MinimizeActionCosts || i >= len(oms) {
			compiled.AddMetric(m)
			continue
		}
		explicit := map[model.Action]*ir.Expr{}
		for _, ac := range oms[i].Costs() {
			explicit[ac.Action] = ac.Cost
		}
		nm := model.NewActionCostsMetric()
		nm.DefaultCost = m.DefaultCost
		for _, a := range compiled.Actions() {
			from, ok := trace[a.Name()]
			if !ok {
				continue
			}
			if from == nil {
				nm.SetCost(a, ir.Int(0))
				continue
			}
			if cost, ok := explicit[from]; ok {
				nm.SetCost(a, cost)
			}
		}
		compiled.AddMetric(nm)
	}
}
