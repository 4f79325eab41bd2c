package responder

import "strings"

// Kind identifies which canned template produced a reply.
type Kind string

const (
	KindDatePlanning Kind = "date_planning"
	KindSchedule     Kind = "schedule"
	KindWeather      Kind = "weather"
	KindGeneric      Kind = "generic"
)

// Reply is the outcome of matching a user message against the rule table.
type Reply struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type rule struct {
	kind     Kind
	match    func(input string) bool
	template string
}

// rules are evaluated top-down against the lowercased input; the first match wins.
var rules = []rule{
	{
		kind:     KindDatePlanning,
		match:    func(in string) bool { return containsAll(in, "date", "monday") },
		template: datePlanningTemplate,
	},
	{
		kind:     KindSchedule,
		match:    func(in string) bool { return containsAny(in, "calendar", "schedule") },
		template: scheduleTemplate,
	},
	{
		kind:     KindWeather,
		match:    func(in string) bool { return strings.Contains(in, "weather") },
		template: weatherTemplate,
	},
}

// Select picks the canned reply for input. It is total: any string, including
// the empty one, yields a reply, falling back to the generic template.
func Select(input string) Reply {
	in := strings.ToLower(input)
	for _, r := range rules {
		if r.match(in) {
			return Reply{Kind: r.kind, Text: r.template}
		}
	}
	return Reply{Kind: KindGeneric, Text: genericTemplate}
}

// Text returns only the reply body for input.
func Text(input string) string {
	return Select(input).Text
}

func containsAll(s string, words ...string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
