package hazard

import "testing"

func TestUrgencyCritical(t *testing.T) {
	cases := []struct {
		name   string
		events []Event
	}{
		{"top event", []Event{{Label: "Fire alarm", Score: 0.9}}},
		{"lower-ranked event", []Event{
			{Label: "Speech", Score: 0.6},
			{Label: "Traffic", Score: 0.2},
			{Label: "Police siren", Score: 0.1},
		}},
		{"case insensitive", []Event{{Label: "GUNSHOT", Score: 0.5}}},
		{"substring", []Event{{Label: "Glass breaking", Score: 0.4}}},
	}
	for _, tc := range cases {
		if got := Urgency(tc.events); got != UrgencyCritical {
			t.Errorf("%s: expected %q, got %q", tc.name, UrgencyCritical, got)
		}
	}
}

func TestUrgencyLow(t *testing.T) {
	events := []Event{
		{Label: "Speech", Score: 0.7},
		{Label: "Music", Score: 0.2},
		{Label: "Dog bark", Score: 0.1},
	}
	if got := Urgency(events); got != UrgencyLow {
		t.Errorf("expected %q, got %q", UrgencyLow, got)
	}

	if got := Urgency(nil); got != UrgencyLow {
		t.Errorf("expected %q for no events, got %q", UrgencyLow, got)
	}
}
