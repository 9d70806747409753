package scoring

import (
	"math"

	"somnolink-service/internal/pkg/fhir_dto"
)

type ResultKind string

const (
	KindTotalScore  ResultKind = "total_score"
	KindRLS6Domains ResultKind = "rls6_domains"
	KindMHI5        ResultKind = "mhi5"
)

// Result is the outcome of scoring one submission. Exactly one of Total or
// Domains is populated, depending on the instrument family.
type Result struct {
	Kind    ResultKind       `json:"type"`
	Total   *float64         `json:"total_score"`
	Domains *DomainBreakdown `json:"domains,omitempty"`
	Raw     map[string]int   `json:"raw,omitempty"`
	RawSum  *int             `json:"raw_sum,omitempty"`
}

// DomainBreakdown holds the RLS-6 per-domain sub-scores. A nil field means the
// answers required for that domain were not all present.
type DomainBreakdown struct {
	SleepQuality      *int `json:"sleep_quality_items_1_6"`
	Nighttime         *int `json:"nighttime_items_2_3"`
	DaytimeRelaxation *int `json:"daytime_relaxation_item_4"`
	ControlActivity   *int `json:"control_activity_item_5"`
}

type strategy func(items []fhir_dto.QuestionnaireResponseItem) *Result

// strategies is the closed set of scoring algorithms keyed by slug key.
// Slugs without an entry fall back to the total-sum strategy.
var strategies = map[string]strategy{
	"rls6": scoreRLS6,
	"mhi5": scoreMHI5,
}

// Score dispatches the submission to the scoring strategy selected by the
// normalized slug key.
func Score(slug string, items []fhir_dto.QuestionnaireResponseItem) *Result {
	if s, ok := strategies[SlugKey(slug)]; ok {
		return s(items)
	}
	return scoreTotalSum(items)
}

// HasSingleTotal reports whether the instrument family behind slug produces a
// single aggregate total (as opposed to a per-domain breakdown).
func HasSingleTotal(slug string) bool {
	return SlugKey(slug) != "rls6"
}

// scoreTotalSum sums every numeric answer; items without a usable value
// contribute nothing.
func scoreTotalSum(items []fhir_dto.QuestionnaireResponseItem) *Result {
	total := 0
	for _, item := range items {
		if v, ok := itemValue(item); ok {
			total += v
		}
	}
	f := float64(total)
	return &Result{Kind: KindTotalScore, Total: &f}
}

// scoreRLS6 computes the four RLS-6 domains. The instrument has no clinically
// meaningful overall sum, so no total is produced. Paired domains are only
// defined when both of their items are present; the two single-item domains
// are independent of each other.
func scoreRLS6(items []fhir_dto.QuestionnaireResponseItem) *Result {
	values := collectValues(items)

	breakdown := &DomainBreakdown{
		DaytimeRelaxation: lookup(values, "4"),
		ControlActivity:   lookup(values, "5"),
	}
	if v1, ok1 := values["1"]; ok1 {
		if v6, ok6 := values["6"]; ok6 {
			sum := v1 + v6
			breakdown.SleepQuality = &sum
		}
	}
	if v2, ok2 := values["2"]; ok2 {
		if v3, ok3 := values["3"]; ok3 {
			sum := v2 + v3
			breakdown.Nighttime = &sum
		}
	}

	return &Result{Kind: KindRLS6Domains, Domains: breakdown, Raw: values}
}

// scoreMHI5 computes the MHI-5 total on the 0-100 scale. Items c and e are
// reverse-coded (7 - value); the raw sum of all present items is then
// transformed with round(((raw - 5) / 20) * 100, 1). With no usable items at
// all there is nothing to score and Total stays nil.
func scoreMHI5(items []fhir_dto.QuestionnaireResponseItem) *Result {
	values := collectValues(items)

	inverted := map[string]bool{"c": true, "e": true}
	rawSum := 0
	present := 0
	for _, linkID := range []string{"a", "b", "c", "d", "e"} {
		v, ok := values[linkID]
		if !ok {
			continue
		}
		if inverted[linkID] {
			v = 7 - v
		}
		rawSum += v
		present++
	}

	result := &Result{Kind: KindMHI5, Raw: values}
	if present == 0 {
		return result
	}

	transformed := math.Round(((float64(rawSum)-5)/20)*100*10) / 10
	result.Total = &transformed
	result.RawSum = &rawSum
	return result
}

func collectValues(items []fhir_dto.QuestionnaireResponseItem) map[string]int {
	values := make(map[string]int)
	for _, item := range items {
		if item.LinkID == "" {
			continue
		}
		if v, ok := itemValue(item); ok {
			values[item.LinkID] = v
		}
	}
	return values
}

func lookup(values map[string]int, linkID string) *int {
	if v, ok := values[linkID]; ok {
		return &v
	}
	return nil
}
