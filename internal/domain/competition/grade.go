package competition

import "strings"

// SkillTier is the coarse skill level a competition grade maps to.
type SkillTier string

const (
	TierHigh SkillTier = "상"
	TierMid  SkillTier = "중"
	TierLow  SkillTier = "하"
	TierAny  SkillTier = "무관"
)

// Rank orders tiers for similarity arithmetic. Unknown tiers rank 0.
func (t SkillTier) Rank() int {
	switch t {
	case TierHigh:
		return 3
	case TierMid:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// tierOrder fixes lookup precedence: a grade listed under several tiers
// resolves to the strongest one.
var tierOrder = [...]SkillTier{TierHigh, TierMid, TierLow, TierAny}

var gradeTables = map[string]map[SkillTier][]string{
	"테니스": {
		TierHigh: {
			"챌린저부", "마스터스부", "지도자부", "개나리부", "국화부",
			"통합부", "마스터스", "챌린저",
		},
		TierMid: {
			"전국신인부", "남자오픈부", "여자퓨처스부", "남자퓨처스부", "세미오픈부",
			"베테랑부", "오픈부", "신인부", "썸머부", "무궁화부", "랭킹부", "퓨처스부",
		},
		TierLow: {
			"남자테린이부", "여자테린이부", "지역 신인부", "입문부", "테린이",
			"초심부", "루키부", "신인",
		},
		TierAny: {"무관", "", "전부"},
	},
	"보디빌딩": {
		TierHigh: {"마스터즈", "시니어", "오픈", "프로", "엘리트", "오버롤", "마스터"},
		TierMid:  {"주니어", "미들", "일반부", "학생부"},
		TierLow:  {"루키", "노비스", "비기너", "초심"},
		TierAny:  {"무관", ""},
	},
	"배드민턴": {
		TierHigh: {"S급", "A급", "B급", "S조", "A조", "B조", "자강"},
		TierMid:  {"C급", "D급", "C조", "D조"},
		TierLow:  {"E급", "초심", "왕초", "신인", "F급", "E조"},
		TierAny:  {"무관", ""},
	},
	"마라톤": {
		TierHigh: {
			"풀", "하프", "42.195km", "21.0975km", "100km", "50km", "48km", "40km",
			"35km", "32km", "32.195km", "25km", "16km", "15km", "Full", "Half", "마니아",
		},
		TierMid: {
			"13km", "12km", "11.19km", "10km", "7.5km", "7km", "10k",
		},
		TierLow: {
			"5km", "3km", "5km 걷기", "7인1조 단체전", "5k", "3k", "걷기",
		},
		TierAny: {"무관", "", "전부"},
	},
}

// gradeIndex maps sport -> normalized grade -> tier, built once at init.
// The fixed tier order makes the first listing win on duplicates.
var gradeIndex = func() map[string]map[string]SkillTier {
	index := make(map[string]map[string]SkillTier, len(gradeTables))
	for sport, table := range gradeTables {
		byGrade := make(map[string]SkillTier)
		for _, tier := range tierOrder {
			for _, grade := range table[tier] {
				key := normalizeGrade(grade)
				if _, ok := byGrade[key]; !ok {
					byGrade[key] = tier
				}
			}
		}
		index[sport] = byGrade
	}
	return index
}()

// ClassifyGrade maps a raw grade label to its skill tier for the given
// sport. Unknown sports, unknown grades, and empty grades all resolve to
// the open tier.
func ClassifyGrade(sport, grade string) SkillTier {
	normalized := normalizeGrade(grade)
	if normalized == "" {
		return TierAny
	}

	byGrade, ok := gradeIndex[strings.TrimSpace(sport)]
	if !ok {
		return TierAny
	}
	if tier, ok := byGrade[normalized]; ok {
		return tier
	}

	return TierAny
}

// ParseSkill maps a stored interest skill label to a tier. Labels
// outside the known set rank as the open tier.
func ParseSkill(skill string) SkillTier {
	switch SkillTier(strings.TrimSpace(skill)) {
	case TierHigh:
		return TierHigh
	case TierMid:
		return TierMid
	case TierLow:
		return TierLow
	default:
		return TierAny
	}
}

func normalizeGrade(grade string) string {
	trimmed := strings.ReplaceAll(strings.TrimSpace(grade), " ", "")
	return strings.ToUpper(trimmed)
}
