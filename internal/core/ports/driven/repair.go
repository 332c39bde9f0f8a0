package driven

// Repair is a single text-level fix applied to raw markup before parsing.
// Repairs are pure and total: they never fail, and applying a repair
// to its own output changes nothing.
type Repair interface {
	// Name returns the repair name for logging and configuration.
	Name() string

	// Apply returns the repaired markup.
	Apply(markup string) string
}

// RepairPipeline chains Repairs in a fixed order.
type RepairPipeline interface {
	// Run applies every repair in order and returns the final text.
	Run(markup string) string
}
