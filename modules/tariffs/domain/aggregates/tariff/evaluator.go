package tariff

// FormulaEvaluator computes a derived charge from a custom expression once a
// tariff has been resolved. Implemented elsewhere; the resolved record's base
// and surcharge values are fed in as variables.
type FormulaEvaluator interface {
	Evaluate(expression string, variables map[string]float64) (float64, error)
}
