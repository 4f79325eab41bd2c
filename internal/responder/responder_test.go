package responder

import (
	"strings"
	"testing"
)

func TestSelect_RuleOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{"date and monday", "plan a date on monday", KindDatePlanning},
		{"monday before date", "Monday night DATE ideas", KindDatePlanning},
		{"embedded words", "update my mondays", KindDatePlanning},
		{"date rule beats calendar", "check my calendar for a date monday", KindDatePlanning},
		{"date rule beats weather", "weather for my date on monday?", KindDatePlanning},
		{"calendar", "what's on my calendar", KindSchedule},
		{"schedule", "SCHEDULE a meeting", KindSchedule},
		{"calendar beats weather", "weather calendar", KindSchedule},
		{"date without monday", "a date on tuesday", KindGeneric},
		{"monday without date", "monday standup", KindGeneric},
		{"weather", "How is the Weather today", KindWeather},
		{"date without monday falls through to weather", "date night weather", KindWeather},
		{"nothing", "book a table", KindGeneric},
		{"empty", "", KindGeneric},
		{"whitespace", "   ", KindGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Select(tc.input)
			if got.Kind != tc.want {
				t.Errorf("Select(%q).Kind = %q, want %q", tc.input, got.Kind, tc.want)
			}
			if got.Text == "" {
				t.Errorf("Select(%q).Text is empty", tc.input)
			}
		})
	}
}

func TestSelect_TemplatesAreStatic(t *testing.T) {
	a := Text("is it going to rain? weather please")
	b := Text("WEATHER")
	if a != b {
		t.Error("weather replies differ for different inputs; templates must not depend on input text")
	}
	if !strings.Contains(a, "Weather") {
		t.Errorf("weather reply does not look like the weather template: %q", a[:40])
	}
}

func TestSelect_DistinctTemplates(t *testing.T) {
	seen := map[string]Kind{}
	for _, in := range []string{"date monday", "calendar", "weather", "hello"} {
		r := Select(in)
		if prev, ok := seen[r.Text]; ok {
			t.Errorf("kinds %q and %q share the same template", prev, r.Kind)
		}
		seen[r.Text] = r.Kind
	}
}
