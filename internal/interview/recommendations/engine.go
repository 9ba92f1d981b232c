package recommendations

import "sort"

// Rebuild evaluates every rule against the answer snapshot and returns the
// rebuilt recommendation list. It is a deterministic, side-effect-free
// function of the answers: the list is built from scratch on every call,
// never patched incrementally.
//
// "Form 1040" is appended first, unconditionally, at priority 10. Each rule
// contributes at most one recommendation and duplicate form names are
// dropped, first occurrence wins. The final list is sorted descending by
// priority with a stable sort, so ties keep insertion order.
func Rebuild(answers map[string]any) []Recommendation {
	out := make([]Recommendation, 0, len(ruleTable)+1)
	out = append(out, build("Form 1040", 10, "Everyone files Form 1040."))

	seen := map[string]bool{"Form 1040": true}
	for _, r := range ruleTable {
		if seen[r.form] {
			continue
		}
		if !evaluate(r, answers) {
			continue
		}
		seen[r.form] = true
		out = append(out, build(r.form, r.priority, r.reason))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// evaluate runs a single rule predicate, absorbing panics from malformed
// answers. A rule that fails inspection contributes nothing; the remaining
// rules still run.
func evaluate(r rule, answers map[string]any) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return r.when(answers)
}
