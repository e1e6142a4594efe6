package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidSymbol(t *testing.T) {
	valid := []string{"P", "RT", "CA", "A/2", "P+", "ABCDEFGH", "X-1"}
	invalid := []string{"", "p", "TOOLONGXX", "P ", "é", "P?"}
	for _, s := range valid {
		if !IsValidSymbol(s) {
			t.Errorf("IsValidSymbol(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSymbol(s) {
			t.Errorf("IsValidSymbol(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		date, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
			continue
		}
		if date.Location() != time.UTC || date.Hour() != 0 {
			t.Errorf("IsValidDate(%q) = %v, want UTC midnight", s, date)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidYearMonth(t *testing.T) {
	year, month, ok := IsValidYearMonth("2025-03")
	if !ok || year != 2025 || month != time.March {
		t.Errorf("IsValidYearMonth(2025-03) = (%d, %v, %v)", year, month, ok)
	}
	invalid := []string{"2025-13", "2025-3", "2025", "2025-03-01", ""}
	for _, s := range invalid {
		if _, _, ok := IsValidYearMonth(s); ok {
			t.Errorf("IsValidYearMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"08:00", 8 * time.Hour},
		{"08:31", 8*time.Hour + 31*time.Minute},
		{"23:59:59", 23*time.Hour + 59*time.Minute + 59*time.Second},
		{"00:00", 0},
	}
	for _, c := range cases {
		got, ok := IsValidClock(c.input)
		if !ok || got != c.want {
			t.Errorf("IsValidClock(%q) = (%v, %v), want (%v, true)", c.input, got, ok, c.want)
		}
	}
	invalid := []string{"24:00", "8:00", "08:60", "noon", ""}
	for _, s := range invalid {
		if _, ok := IsValidClock(s); ok {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}
