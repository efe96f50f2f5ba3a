package competition

import (
	"strconv"
	"strings"
)

// MatchesAge evaluates an age rule against a participant age. The rule
// grammar, after stripping spaces and the "세" suffix, is:
//
//	""      any age
//	"무관"   any age
//	"N"     exactly N
//	"~N"    under N
//	"N~"    N and above
//	"A~B"   A inclusive to B exclusive
//
// A rule that fails to parse rejects the participant.
func MatchesAge(age int, rule string) bool {
	if rule == "" || rule == "무관" {
		return true
	}

	r := strings.ReplaceAll(rule, " ", "")
	r = strings.ReplaceAll(r, "세", "")

	switch {
	case !strings.Contains(r, "~"):
		exact, err := strconv.Atoi(r)
		if err != nil {
			return false
		}
		return age == exact
	case strings.HasPrefix(r, "~"):
		max, err := strconv.Atoi(r[1:])
		if err != nil {
			return false
		}
		return age < max
	case strings.HasSuffix(r, "~"):
		min, err := strconv.Atoi(r[:len(r)-1])
		if err != nil {
			return false
		}
		return age >= min
	default:
		parts := strings.SplitN(r, "~", 2)
		min, err := strconv.Atoi(parts[0])
		if err != nil {
			return false
		}
		max, err := strconv.Atoi(parts[1])
		if err != nil {
			return false
		}
		return min <= age && age < max
	}
}

// MatchesGender evaluates a gender rule. An empty or open rule admits
// everyone; otherwise the rule must equal the participant gender after
// trimming. Participants without a recorded gender fail restricted rules.
func MatchesGender(gender *string, rule string) bool {
	if rule == "" || rule == "무관" {
		return true
	}

	if gender == nil {
		return false
	}
	g := strings.TrimSpace(*gender)
	if g == "" {
		return false
	}

	return strings.TrimSpace(rule) == g
}
