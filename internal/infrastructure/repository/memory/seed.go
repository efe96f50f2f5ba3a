package memory

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/ImCuriosity/competition-recommendation/internal/domain/competition"
	"github.com/ImCuriosity/competition-recommendation/internal/domain/profile"
)

// Fixed user ids so the dev backend is easy to poke at by hand.
const (
	UserIDSeoulBadminton = "11111111-1111-1111-1111-111111111111"
	UserIDBusanRunner    = "22222222-2222-2222-2222-222222222222"
	UserIDNoInterests    = "33333333-3333-3333-3333-333333333333"
)

func SeedProfiles() []profile.Profile {
	male := "남"
	female := "여"
	return []profile.Profile{
		{
			ID:        UserIDSeoulBadminton,
			Age:       30,
			Gender:    &male,
			Latitude:  ptr(37.5665),
			Longitude: ptr(126.9780),
			Interests: []profile.Interest{
				{SportName: "배드민턴", Skill: "중"},
				{SportName: "테니스", Skill: "하"},
			},
		},
		{
			ID:        UserIDBusanRunner,
			Age:       26,
			Gender:    &female,
			Latitude:  ptr(35.1796),
			Longitude: ptr(129.0756),
			Interests: []profile.Interest{
				{SportName: "마라톤", Skill: "상"},
			},
		},
		{
			ID:  UserIDNoInterests,
			Age: 41,
		},
	}
}

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:            1,
			Title:         "서울시장배 배드민턴 대회",
			SportCategory: "배드민턴",
			Grade:         "C급",
			AgeRule:       "무관",
			GenderRule:    "무관",
			EventPeriod:   "[2026-10-17,2026-10-18)",
			RawLocation:   PointWKBHex(126.9723, 37.5552),
			Province:      "서울",
			CityCounty:    "중구",
			Host:          "서울특별시배드민턴협회",
		},
		{
			ID:            2,
			Title:         "전국 동호인 배드민턴 선수권",
			SportCategory: "배드민턴",
			Grade:         "A급",
			AgeRule:       "18~",
			GenderRule:    "무관",
			EventPeriod:   "[2026-11-07,2026-11-08)",
			RawLocation:   PointWKBHex(127.3845, 36.3504),
			Province:      "대전",
			CityCounty:    "유성구",
			Host:          "대한배드민턴협회",
		},
		{
			ID:            3,
			Title:         "청춘 배드민턴 리그",
			SportCategory: "배드민턴",
			Grade:         "초심",
			AgeRule:       "18~29",
			GenderRule:    "무관",
			EventPeriod:   "[2026-09-26,2026-09-27)",
			RawLocation:   PointWKBHex(126.7052, 37.4563),
			Province:      "인천",
			CityCounty:    "남동구",
		},
		{
			ID:            4,
			Title:         "부산 바다 마라톤",
			SportCategory: "마라톤",
			Grade:         "하프",
			AgeRule:       "무관",
			GenderRule:    "무관",
			EventPeriod:   "[2026-10-03,2026-10-04)",
			RawLocation:   PointWKBHex(129.0756, 35.1796),
			Province:      "부산",
			CityCounty:    "연제구",
			Host:          "부산마라톤조직위원회",
		},
		{
			ID:            5,
			Title:         "한강 나이트 런",
			SportCategory: "마라톤",
			Grade:         "10km",
			AgeRule:       "무관",
			GenderRule:    "무관",
			EventPeriod:   "[2026-09-12,2026-09-13)",
			RawLocation:   PointWKBHex(126.9368, 37.5219),
			Province:      "서울",
			CityCounty:    "영등포구",
		},
		{
			ID:            6,
			Title:         "여성 테니스 오픈",
			SportCategory: "테니스",
			Grade:         "오픈부",
			AgeRule:       "무관",
			GenderRule:    "여",
			EventPeriod:   "[2026-10-24,2026-10-25)",
			RawLocation:   PointWKBHex(127.0286, 37.2636),
			Province:      "경기",
			CityCounty:    "수원시",
		},
		{
			ID:            7,
			Title:         "전국 보디빌딩 그랑프리",
			SportCategory: "보디빌딩",
			Grade:         "주니어",
			AgeRule:       "~30",
			GenderRule:    "무관",
			EventPeriod:   "[2026-11-21,2026-11-22)",
			Province:      "대구",
			CityCounty:    "수성구",
		},
		{
			ID:            8,
			Title:         "지난 시즌 배드민턴 왕중왕전",
			SportCategory: "배드민턴",
			Grade:         "B급",
			AgeRule:       "무관",
			GenderRule:    "무관",
			EventPeriod:   "[2025-12-06,2025-12-07)",
			RawLocation:   PointWKBHex(126.9780, 37.5665),
			Province:      "서울",
			CityCounty:    "송파구",
		},
	}
}

func ptr(v float64) *float64 { return &v }

// PointWKBHex encodes a coordinate the way PostGIS does, so the dev
// backend exercises the same decode path as real data.
func PointWKBHex(lon, lat float64) string {
	buf := []byte{1}
	buf = binary.LittleEndian.AppendUint32(buf, 0x20000001)
	buf = binary.LittleEndian.AppendUint32(buf, 4326)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(lon))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(lat))
	return hex.EncodeToString(buf)
}
