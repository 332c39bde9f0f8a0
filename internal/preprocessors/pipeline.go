package preprocessors

import (
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.RepairPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Repairs and runs them in order.
type Pipeline struct {
	repairs []driven.Repair
}

// NewPipeline creates a new repair pipeline with the given repairs.
// Repairs are executed in the order provided.
func NewPipeline(repairs ...driven.Repair) *Pipeline {
	return &Pipeline{
		repairs: repairs,
	}
}

// Run applies every repair in order.
func (p *Pipeline) Run(markup string) string {
	for _, repair := range p.repairs {
		repaired := repair.Apply(markup)
		if repaired != markup {
			logger.Debug("repair %s changed markup (%d -> %d bytes)", repair.Name(), len(markup), len(repaired))
		}
		markup = repaired
	}
	return markup
}

// Add appends a repair to the pipeline.
func (p *Pipeline) Add(repair driven.Repair) {
	p.repairs = append(p.repairs, repair)
}

// Len returns the number of repairs in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.repairs)
}

// Names returns the repair names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.repairs))
	for i, repair := range p.repairs {
		names[i] = repair.Name()
	}
	return names
}
