package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-03-01", NewDate(2024, 3, 1), true},
		{" 2024-12-31 ", NewDate(2024, 12, 31), true},
		{"2024-03-01T23:10:00Z", NewDate(2024, 3, 1), true},
		{"2024-02-30", Date{}, false},
		{"01/03/2024", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.want) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, 1, 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-05"` {
		t.Fatalf("unexpected json %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-02-10"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.Equal(NewDate(2024, 2, 10)) {
		t.Fatalf("unexpected date %s", d)
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Fatalf("expected error for numeric date")
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{From: NewDate(2024, 1, 1), To: NewDate(2024, 1, 31)}
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2024, 1, 1), true},
		{NewDate(2024, 1, 31), true},
		{NewDate(2023, 12, 31), false},
		{NewDate(2024, 2, 1), false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.d); got != tc.want {
			t.Fatalf("Contains(%s) = %v, want %v", tc.d, got, tc.want)
		}
	}
	if !(DateRange{}).Contains(NewDate(1900, 1, 1)) {
		t.Fatalf("unbounded range should contain everything")
	}
}

func TestTodayAndDaysIn(t *testing.T) {
	ts := time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)
	if got := Today(ts); !got.Equal(NewDate(2024, 2, 29)) {
		t.Fatalf("Today = %s", got)
	}
	if DaysIn(2024, 2) != 29 || DaysIn(2023, 2) != 28 || DaysIn(2024, 4) != 30 {
		t.Fatalf("DaysIn mismatch")
	}
}
