package validator

import (
	"testing"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
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

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		input string
		want  string // "15:04" 24h rendering, "" means parse failure
	}{
		{"09:00 AM", "09:00"},
		{"9:00 AM", "09:00"},
		{"05:30 PM", "17:30"},
		{"12:00 AM", "00:00"},
		{"12:00 PM", "12:00"},
		{" 10:15 PM ", "22:15"},
		{"17:30", ""},
		{"09:00", ""},
		{"9 AM", ""},
		{"half past nine", ""},
		{"", ""},
	}
	for _, c := range cases {
		got, ok := ParseClockTime(c.input)
		if c.want == "" {
			if ok {
				t.Errorf("ParseClockTime(%q) = %v, want failure", c.input, got)
			}
			continue
		}
		if !ok {
			t.Errorf("ParseClockTime(%q) failed, want %s", c.input, c.want)
			continue
		}
		if rendered := got.Format("15:04"); rendered != c.want {
			t.Errorf("ParseClockTime(%q) = %s, want %s", c.input, rendered, c.want)
		}
	}
}

func TestParseClockTimeSubtraction(t *testing.T) {
	in, ok := ParseClockTime("09:00 AM")
	if !ok {
		t.Fatal("failed to parse in time")
	}
	out, ok := ParseClockTime("05:30 PM")
	if !ok {
		t.Fatal("failed to parse out time")
	}
	if hours := out.Sub(in).Hours(); hours != 8.5 {
		t.Errorf("out - in = %v hours, want 8.5", hours)
	}
}
