package competition

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"testing"
)

func TestPeriodStartDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		period string
		want   string
	}{
		{"", ""},
		{"[2026-10-01,2026-10-03)", "2026-10-01"},
		{"[2026-10-01, 2026-10-03]", "2026-10-01"},
		{"2026-10-01", "2026-10-01"},
		{"( 2026-10-01 ,2026-10-02)", "2026-10-01"},
	}
	for _, tc := range cases {
		if got := PeriodStartDate(tc.period); got != tc.want {
			t.Fatalf("PeriodStartDate(%q) = %q, want %q", tc.period, got, tc.want)
		}
	}
}

func TestStartsBefore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		start   string
		cutoff  string
		want    bool
	}{
		{"before cutoff", "2026-08-31", "2026-09-01", true},
		{"on cutoff", "2026-09-01", "2026-09-01", false},
		{"after cutoff", "2026-09-02", "2026-09-01", false},
		{"empty start", "", "2026-09-01", false},
		{"empty cutoff", "2026-08-31", "", false},
		{"unparseable start kept", "상시", "2026-09-01", false},
		{"unparseable cutoff kept", "2026-08-31", "언제나", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := StartsBefore(tc.start, tc.cutoff); got != tc.want {
				t.Fatalf("StartsBefore(%q, %q) = %v, want %v", tc.start, tc.cutoff, got, tc.want)
			}
		})
	}
}

func pointHex(t *testing.T, lon, lat float64) string {
	t.Helper()

	buf := []byte{1}
	buf = binary.LittleEndian.AppendUint32(buf, 0x20000001)
	buf = binary.LittleEndian.AppendUint32(buf, 4326)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(lon))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(lat))
	return hex.EncodeToString(buf)
}

func TestNormalize_DecodesLocation(t *testing.T) {
	t.Parallel()

	c := Competition{
		ID:          1,
		Title:       "서울시장배",
		EventPeriod: "[2026-10-01,2026-10-02)",
		RawLocation: pointHex(t, 126.9780, 37.5665),
	}

	n, ok := Normalize(c, "2026-09-01")
	if !ok {
		t.Fatalf("expected competition to be kept")
	}
	if n.StartDate != "2026-10-01" {
		t.Fatalf("unexpected start date %q", n.StartDate)
	}
	if n.Latitude == nil || n.Longitude == nil {
		t.Fatalf("expected decoded coordinates")
	}
	if *n.Latitude != 37.5665 || *n.Longitude != 126.9780 {
		t.Fatalf("got (%v, %v)", *n.Latitude, *n.Longitude)
	}
}

func TestNormalize_DropsPastCompetitions(t *testing.T) {
	t.Parallel()

	c := Competition{EventPeriod: "[2026-08-01,2026-08-02)"}
	if _, ok := Normalize(c, "2026-09-01"); ok {
		t.Fatalf("expected past competition to be dropped")
	}

	// No cutoff keeps everything.
	if _, ok := Normalize(c, ""); !ok {
		t.Fatalf("expected competition kept without a cutoff")
	}
}

func TestNormalize_BadLocationKeepsRow(t *testing.T) {
	t.Parallel()

	c := Competition{EventPeriod: "[2026-10-01,2026-10-02)", RawLocation: "not-wkb"}

	n, ok := Normalize(c, "2026-09-01")
	if !ok {
		t.Fatalf("expected competition to be kept")
	}
	if n.Latitude != nil || n.Longitude != nil {
		t.Fatalf("expected nil coordinates on decode failure")
	}
}

func TestNormalize_EmptyPeriod(t *testing.T) {
	t.Parallel()

	n, ok := Normalize(Competition{}, "2026-09-01")
	if !ok {
		t.Fatalf("expected competition to be kept")
	}
	if n.StartDate != "" {
		t.Fatalf("expected empty start date, got %q", n.StartDate)
	}
}
