package tools

// Kind identifies an integration in the catalog.
type Kind string

const (
	KindGmail    Kind = "gmail"
	KindCalendar Kind = "calendar"
	KindNotion   Kind = "notion"
	KindSlack    Kind = "slack"
	KindDatabase Kind = "database"
	KindCustom   Kind = "custom"
)

// DefaultPlaceholder is shown before a kind has been chosen.
const DefaultPlaceholder = "Enter access details"

// Entry is one connectable integration.
type Entry struct {
	Kind        Kind   `json:"kind"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

var catalog = []Entry{
	{KindGmail, "Gmail", "Enter your Gmail address"},
	{KindCalendar, "Google Calendar", "Enter your Google account"},
	{KindNotion, "Notion", "Enter your Notion API token"},
	{KindSlack, "Slack", "Enter your Slack webhook URL"},
	{KindDatabase, "Database", "Enter your database connection string"},
	{KindCustom, "Custom API", "Enter your API endpoint"},
}

// Catalog returns the fixed list of integrations in display order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the catalog entry for k.
func Lookup(k Kind) (Entry, bool) {
	for _, e := range catalog {
		if e.Kind == k {
			return e, true
		}
	}
	return Entry{}, false
}

// Placeholder returns the credential hint for k, or DefaultPlaceholder.
func Placeholder(k Kind) string {
	if e, ok := Lookup(k); ok {
		return e.Placeholder
	}
	return DefaultPlaceholder
}
