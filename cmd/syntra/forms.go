package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/syntra-ai/syntra/internal/tasks"
	"github.com/syntra-ai/syntra/internal/tools"
)

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateTime(s string) error {
	if _, ok := tasks.ParseTimeOfDay(s); !ok {
		return errors.New("use a time like 3:30 PM")
	}
	return nil
}

// taskForm collects a manual task into d. Fields already set on d are used
// as initial values.
func taskForm(d *tasks.Draft) *huh.Form {
	if d.Priority == "" {
		d.Priority = tasks.PriorityMedium
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.Title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Date").
				Description("\"Today\" or a date such as Jan 5, 2025").
				Placeholder("Today").
				Value(&d.Date).
				Validate(validateRequired("Date")),
			huh.NewInput().
				Title("Time").
				Placeholder("12:00 PM").
				Value(&d.Time).
				Validate(validateTime),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions("Personal", "Work", "Health")...).
				Value(&d.Category),
			huh.NewSelect[tasks.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("High", tasks.PriorityHigh),
					huh.NewOption("Medium", tasks.PriorityMedium),
					huh.NewOption("Low", tasks.PriorityLow),
				).
				Value(&d.Priority),
			huh.NewInput().
				Title("Location").
				Value(&d.Location),
			huh.NewText().
				Title("Note").
				Value(&d.Note),
		),
	)
}

// toolForm asks for an integration kind and its credential. The credential
// placeholder follows the selected kind.
func toolForm(kind *tools.Kind, credential *string) *huh.Form {
	opts := make([]huh.Option[tools.Kind], 0, len(tools.Catalog()))
	for _, e := range tools.Catalog() {
		opts = append(opts, huh.NewOption(e.Label, e.Kind))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[tools.Kind]().
				Title("Tool").
				Options(opts...).
				Value(kind),
			huh.NewInput().
				Title("Access details").
				PlaceholderFunc(func() string { return tools.Placeholder(*kind) }, kind).
				Value(credential).
				Validate(validateRequired("Access details")),
		),
	)
}

func confirmForm(title string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(ok),
		),
	)
}
