package formula

import (
	"sort"
)

// DetectCircularDependency checks whether saving formula for componentCode
// would close a cycle in the component dependency graph. allFormulas maps
// every sibling component code to its persisted formula; the candidate's
// entry is overridden by the formula under review. It returns the cycle
// path (ending back at componentCode) wrapped in a
// *CircularDependencyError, or nil if the graph stays acyclic.
//
// This runs before a formula is persisted, never during payout
// computation: evaluation assumes an acyclic graph.
func DetectCircularDependency(componentCode, formula string, allFormulas map[string]string) ([]string, error) {
	graph := make(map[string][]string, len(allFormulas)+1)

	add := func(code, f string) error {
		refs, err := ExtractComponentReferences(f)
		if err != nil {
			return err
		}
		graph[code] = refs
		return nil
	}

	codes := make([]string, 0, len(allFormulas))
	for code := range allFormulas {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if code == componentCode {
			continue
		}
		if err := add(code, allFormulas[code]); err != nil {
			return nil, err
		}
	}
	if err := add(componentCode, formula); err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	var path []string

	var visit func(code string) []string
	visit = func(code string) []string {
		if visited[code] {
			return nil
		}
		visited[code] = true
		path = append(path, code)
		for _, dep := range graph[code] {
			if dep == componentCode {
				return append(append([]string{}, path...), componentCode)
			}
			if cycle := visit(dep); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		return nil
	}

	if cycle := visit(componentCode); cycle != nil {
		return cycle, &CircularDependencyError{Path: cycle}
	}
	return nil, nil
}
