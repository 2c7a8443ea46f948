package deadline

import "testing"

func TestKeyOpenEnded(t *testing.T) {
	for _, raw := range []string{"Rolling", "rolling", "", "   ", "Open until filled", "TBD", "Varies by program", "N/A", "Check website"} {
		if got := Key(raw); got != Max {
			t.Fatalf("Key(%q) = %d, want Max", raw, got)
		}
	}
}

func TestKeyUnparseableIsMax(t *testing.T) {
	if got := Key("ask the office"); got != Max {
		t.Fatalf("Key = %d, want Max", got)
	}
}

func TestKeyOrdersDates(t *testing.T) {
	if !(Key("2024-12-31") < Key("2025-01-01")) {
		t.Fatal("2024-12-31 should sort before 2025-01-01")
	}
	if Key("2025-01-01") >= Max {
		t.Fatal("real date should sort before open-ended")
	}
}

func TestKeyFormats(t *testing.T) {
	want := Key("2025-03-15")
	for _, raw := range []string{"March 15, 2025", "2025/03/15", "Deadline: 2025.3.15 (midnight)"} {
		if got := Key(raw); got != want {
			t.Fatalf("Key(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"Rolling":           "Rolling",
		"":                  "Rolling",
		"2025-03-15":        "Mar 15, 2025",
		"ask the office ":   "ask the office",
		"Apply by 2025-1-5": "Jan 5, 2025",
	}
	for raw, want := range cases {
		if got := Label(raw); got != want {
			t.Fatalf("Label(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestKeyBareNumbersAreNotDates(t *testing.T) {
	for _, raw := range []string{"1234567890", "1700000000000", "25000"} {
		if got := Key(raw); got != Max {
			t.Fatalf("Key(%q) = %d, want Max", raw, got)
		}
	}
	if Key("2025") >= Max {
		t.Fatal("a bare year should still parse")
	}
}
