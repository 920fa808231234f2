package stats

import "strings"

// Outcome is the canonical result of a plate appearance.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeHomeRun    Outcome = "home_run"
	OutcomeTriple     Outcome = "triple"
	OutcomeDouble     Outcome = "double"
	OutcomeSingle     Outcome = "single"
	OutcomeWalk       Outcome = "walk"
	OutcomeHitByPitch Outcome = "hit_by_pitch"
	OutcomeSacFly     Outcome = "sac_fly"
	OutcomeOut        Outcome = "out"
)

// IsHit reports whether the outcome is a base hit.
func (o Outcome) IsHit() bool {
	return o.Bases() > 0
}

// Bases returns the total bases credited for a hit.
func (o Outcome) Bases() int {
	switch o {
	case OutcomeSingle:
		return 1
	case OutcomeDouble:
		return 2
	case OutcomeTriple:
		return 3
	case OutcomeHomeRun:
		return 4
	}
	return 0
}

// IsAtBat reports whether the outcome counts as an official at-bat.
func (o Outcome) IsAtBat() bool {
	return o.IsHit() || o == OutcomeOut
}

// SprayLabel is the spray chart label of a hit, or "" for anything else.
func (o Outcome) SprayLabel() string {
	switch o {
	case OutcomeHomeRun:
		return "HOME RUN"
	case OutcomeTriple:
		return "TRIPLE"
	case OutcomeDouble:
		return "DOUBLE"
	case OutcomeSingle:
		return "SINGLE"
	}
	return ""
}

// ParseOutcome converts a stored outcome string back to an Outcome.
func ParseOutcome(s string) (Outcome, bool) {
	switch o := Outcome(s); o {
	case OutcomeHomeRun, OutcomeTriple, OutcomeDouble, OutcomeSingle,
		OutcomeWalk, OutcomeHitByPitch, OutcomeSacFly, OutcomeOut:
		return o, true
	}
	return OutcomeNone, false
}

type outcomeRule struct {
	outcome      Outcome
	events       []string
	descriptions []string
}

// outcomeRules are evaluated in order; the first match wins.
var outcomeRules = []outcomeRule{
	{OutcomeHomeRun, []string{"home_run", "home run"}, []string{"homers", "hits a home run"}},
	{OutcomeTriple, []string{"triple"}, []string{"triples"}},
	{OutcomeDouble, []string{"double"}, []string{"doubles"}},
	{OutcomeSingle, []string{"single"}, []string{"singles"}},
	{OutcomeWalk, []string{"walk"}, []string{"walks"}},
	{OutcomeHitByPitch, []string{"hit_by_pitch"}, []string{"hit by pitch"}},
	{OutcomeSacFly, []string{"sacrifice_fly", "sac_fly"}, []string{"sacrifice fly"}},
}

func (r outcomeRule) matches(event, desc string) bool {
	for _, k := range r.events {
		if event != "" && strings.Contains(event, k) {
			return true
		}
	}
	for _, k := range r.descriptions {
		if desc != "" && strings.Contains(desc, k) {
			return true
		}
	}
	return false
}

// Classify maps the free-text event type and description of a row to an
// Outcome. Rows with neither field populated are OutcomeNone; rows that
// match no rule are OutcomeOut.
func Classify(eventType, description string) Outcome {
	event := strings.ToLower(strings.TrimSpace(eventType))
	desc := strings.ToLower(strings.TrimSpace(description))
	if event == "" && desc == "" {
		return OutcomeNone
	}

	for _, r := range outcomeRules {
		if r.matches(event, desc) {
			return r.outcome
		}
	}
	return OutcomeOut
}
