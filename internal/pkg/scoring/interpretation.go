package scoring

// irlsThreshold maps an inclusive upper bound to its severity label. Bounds
// are evaluated in ascending order, first match wins; totals above the last
// bound get the terminal label.
type irlsThreshold struct {
	upper int
	label string
}

var irlsThresholds = []irlsThreshold{
	{upper: 0, label: "none"},
	{upper: 10, label: "mild"},
	{upper: 20, label: "moderate"},
	{upper: 30, label: "severe"},
}

const (
	irlsVerySevereLabel      = "very severe"
	rls6Interpretation       = "RLS-6 is evaluated per domain; no aggregate total applies."
	noInterpretationSentence = "no interpretation available"
)

// Interpret maps a computed result to its categorical label. Only families
// with a single total have threshold categories; the domain-based RLS-6
// family gets a fixed descriptive sentence, everything else a fixed
// no-interpretation sentence.
func Interpret(slug string, result *Result) string {
	key := SlugKey(slug)

	if key == "rls6" {
		return rls6Interpretation
	}

	if key == "irls" && result != nil && result.Total != nil {
		total := int(*result.Total)
		for _, t := range irlsThresholds {
			if total <= t.upper {
				return t.label
			}
		}
		return irlsVerySevereLabel
	}

	return noInterpretationSentence
}
