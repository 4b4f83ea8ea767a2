// Package formula implements the safe expression language for
// organization-defined salary components. A formula is a single expression
// over uppercase component codes ("BASIC * 0.4"), validated against a
// closed node allow-list before any evaluation, so a formula can never
// reach beyond the values it is handed.
package formula

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateFormula parses the formula and reports whether every construct
// is on the allow-list. An empty or whitespace-only formula is invalid.
// The returned error is always a *ValidationError.
func ValidateFormula(input string) error {
	if strings.TrimSpace(input) == "" {
		return validationErrorf(input, "formula is empty")
	}
	if _, err := parse(input); err != nil {
		return validationErrorf(input, "%v", err)
	}
	return nil
}

// ExtractComponentReferences returns the sorted set of component codes the
// formula reads. It is used for dependency analysis and to check inputs
// before evaluation.
func ExtractComponentReferences(input string) ([]string, error) {
	root, err := parse(input)
	if err != nil {
		return nil, validationErrorf(input, "%v", err)
	}
	set := make(map[string]struct{})
	root.refs(set)
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out, nil
}

// EvaluateFormula validates the formula, checks that every referenced
// component has a value, then evaluates it. All failures surface as
// *ValidationError; by the time formulas are evaluated the dependency
// graph is known acyclic, so a failure here means bad input, not a cycle.
func EvaluateFormula(input string, values map[string]decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(input) == "" {
		return decimal.Zero, validationErrorf(input, "formula is empty")
	}
	root, err := parse(input)
	if err != nil {
		return decimal.Zero, validationErrorf(input, "%v", err)
	}
	set := make(map[string]struct{})
	root.refs(set)
	for code := range set {
		if _, ok := values[code]; !ok {
			return decimal.Zero, validationErrorf(input, "missing value for component %s", code)
		}
	}
	result, err := evalNode(root, values)
	if err != nil {
		return decimal.Zero, validationErrorf(input, "%v", err)
	}
	return result, nil
}

// ResolveComponents evaluates a whole set of formula components against
// assigned base values. Formula components may reference each other;
// evaluation order is discovered by repeatedly evaluating the formulas
// whose references are all satisfied. The caller guarantees the graph is
// acyclic (cycle detection runs at save time), so a stall means a formula
// references a component that does not exist.
func ResolveComponents(assigned map[string]decimal.Decimal, formulas map[string]string) (map[string]decimal.Decimal, error) {
	values := make(map[string]decimal.Decimal, len(assigned)+len(formulas))
	for code, v := range assigned {
		values[code] = v
	}

	pending := make(map[string]string, len(formulas))
	for code, f := range formulas {
		pending[code] = f
	}

	for len(pending) > 0 {
		progressed := false
		// Deterministic order keeps error messages stable.
		codes := make([]string, 0, len(pending))
		for code := range pending {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			refs, err := ExtractComponentReferences(pending[code])
			if err != nil {
				return nil, err
			}
			ready := true
			for _, ref := range refs {
				if _, ok := values[ref]; !ok {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			v, err := EvaluateFormula(pending[code], values)
			if err != nil {
				return nil, err
			}
			values[code] = v
			delete(pending, code)
			progressed = true
		}

		if !progressed {
			stuck := make([]string, 0, len(pending))
			for code := range pending {
				stuck = append(stuck, code)
			}
			sort.Strings(stuck)
			return nil, validationErrorf(pending[stuck[0]],
				"unresolvable component references in %s", strings.Join(stuck, ", "))
		}
	}
	return values, nil
}
