package builtins

import "github.com/arvidsson/powerfx-go/internal/evaluator"

// RegisterAll binds every built-in function's factory into eval's
// registry. The order mirrors the reference engine's own
// registration order: table operations, context/control flow, math,
// text, then aggregation.
func RegisterAll(eval *evaluator.Evaluator) {
	reg := eval.Registry
	reg.Register("Table", newTable(eval))
	reg.Register("First", newFirst(eval))
	reg.Register("Last", newLast(eval))
	reg.Register("Index", newIndex(eval))
	reg.Register("Filter", newFilter(eval))
	reg.Register("Set", newSet(eval))
	reg.Register("If", newIf(eval))
	reg.Register("And", newAnd(eval))
	reg.Register("Or", newOr(eval))
	reg.Register("Not", newNot(eval))
	reg.Register("IsBlank", newIsBlank(eval))
	reg.Register("IsNotBlank", newIsNotBlank(eval))
	reg.Register("Abs", newAbs(eval))
	reg.Register("Sqrt", newSqrt(eval))
	reg.Register("Left", newLeft(eval))
	reg.Register("Mid", newMid(eval))
	reg.Register("Right", newRight(eval))
	reg.Register("Upper", newUpper(eval))
	reg.Register("Lower", newLower(eval))
	reg.Register("Average", newAverage(eval))
	reg.Register("Sum", newSum(eval))
	reg.Register("Min", newMin(eval))
	reg.Register("Max", newMax(eval))
}
