package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Budgets are monthly and priced in the city's price book currency",
	"Every budget total includes a 10% contingency buffer",
	"Short-term housing adds the city's short-stay increase on top of the buffered total",
	"Items without a price count as zero and mark the budget as incomplete",
	"Tax forecasts rate each future year against the current gross income",
}
