package hazard

import "strings"

// Urgency levels reported to the client.
const (
	UrgencyCritical = "critical"
	UrgencyLow      = "low"
)

// dangerTerms flags events the assistant must escalate immediately.
var dangerTerms = []string{"siren", "alarm", "scream", "explosion", "glass", "gunshot", "fire"}

// Urgency scans every returned event, not just the top one: a siren ranked
// third still warrants escalation.
func Urgency(events []Event) string {
	for _, e := range events {
		label := strings.ToLower(e.Label)
		for _, term := range dangerTerms {
			if strings.Contains(label, term) {
				return UrgencyCritical
			}
		}
	}
	return UrgencyLow
}
