package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/syntra-ai/syntra/internal/inbox"
	"github.com/syntra-ai/syntra/internal/reports"
	"github.com/syntra-ai/syntra/internal/session"
	"github.com/syntra-ai/syntra/internal/settings"
	"github.com/syntra-ai/syntra/internal/tasks"
	"github.com/syntra-ai/syntra/internal/tools"
	"github.com/syntra-ai/syntra/internal/ui/chat"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Open the chat client, or send a single message",
	Long: `Open the interactive chat client. With arguments, send them as one
message and return immediately; the reply arrives after the thinking stages.

Examples:
  syntra chat
  syntra chat "plan a date for monday"
  syntra chat --voice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if voice, _ := cmd.Flags().GetBool("voice"); voice {
			printStep("Listening...")
			text, err := transcribe(cmd.Context(), client)
			if err != nil {
				return err
			}
			printStatus("Heard", "%s", text)
			args = []string{text}
		}

		if len(args) > 0 {
			resp, err := client.post(cmd.Context(), "/chat/messages", map[string]string{"content": strings.Join(args, " ")})
			if err != nil {
				return err
			}
			var msg inbox.Message
			if err := decodeJSON(resp, &msg); err != nil {
				return err
			}
			printSuccess("Sent message %s", msg.ID)
			return nil
		}

		t, err := dialChat(cmd.Context(), client)
		if err != nil {
			return err
		}
		defer t.Close()

		_, err = tea.NewProgram(chat.New(t, 80, 24), tea.WithAltScreen()).Run()
		return err
	},
}

func transcribe(ctx context.Context, client *apiClient) (string, error) {
	resp, err := client.post(ctx, "/chat/voice", nil)
	if err != nil {
		return "", err
	}
	var out struct {
		Transcript string `json:"transcript"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	return out.Transcript, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List past conversations, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/chat/history?q="+url.QueryEscape(strings.Join(args, " ")))
		if err != nil {
			return err
		}
		var entries []struct {
			inbox.Summary
			Relative string `json:"relative"`
		}
		if err := decodeJSON(resp, &entries); err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No conversations found.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %s\n", colorize(stepStyle, e.ID), colorize(boldStyle, e.Title), colorize(faintStyle, e.Relative))
			fmt.Printf("    %s\n", e.LastMessage)
		}
		return nil
	},
}

var historyLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Replace the current conversation with a past one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/chat/history/"+url.PathEscape(args[0])+"/load", nil)
		if err != nil {
			return err
		}
		var msgs []inbox.Message
		if err := decodeJSON(resp, &msgs); err != nil {
			return err
		}
		printSuccess("Loaded conversation %s (%d messages)", args[0], len(msgs))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a past conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/chat/history/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}
		printSuccess("Deleted conversation %s", args[0])
		return nil
	},
}

func init() {
	chatCmd.Flags().Bool("voice", false, "record a voice message and send its transcript")

	historyCmd.AddCommand(historyListCmd, historyLoadCmd, historyDeleteCmd)
}

// --- tasks ---

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

func renderTask(w io.Writer, t tasks.Task) {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = "[x]"
		title = colorize(faintStyle, title)
	}
	fmt.Fprintf(w, "%s %s  %s  %s\n", check, colorize(stepStyle, t.ID), title, colorize(faintStyle, t.Date+" "+t.Time))
	fmt.Fprintf(w, "      %s  %s",
		colorize(tasks.CategoryStyle(t.Category), t.Category),
		colorize(tasks.PriorityStyle(t.Priority), string(t.Priority)))
	if t.Origin == tasks.OriginAssistant {
		fmt.Fprint(w, "  "+colorize(faintStyle, "by Syntra"))
	}
	if t.Location != "" {
		fmt.Fprint(w, "  @ "+t.Location)
	}
	fmt.Fprintln(w)
	if t.Note != "" {
		fmt.Fprintf(w, "      %s\n", t.Note)
	}
}

type taskList struct {
	Tasks       []tasks.Task `json:"tasks"`
	SummaryText string       `json:"summary_text"`
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in a bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, _ := cmd.Flags().GetString("bucket")
		sortMode, _ := cmd.Flags().GetString("sort")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		q := url.Values{"bucket": {bucket}, "sort": {sortMode}}
		resp, err := client.get(cmd.Context(), "/tasks/?"+q.Encode())
		if err != nil {
			return err
		}
		var list taskList
		if err := decodeJSON(resp, &list); err != nil {
			return err
		}

		if asJSON {
			return printJSON(os.Stdout, list.Tasks)
		}
		fmt.Println(colorize(boldStyle, list.SummaryText))
		for _, t := range list.Tasks {
			renderTask(os.Stdout, t)
		}
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	Long: `Add a task. Without --title an interactive form is shown.

Examples:
  syntra tasks add
  syntra tasks add --title "Dentist" --date "Jan 9, 2025" --time "9:00 AM" --priority high
  syntra tasks add --assistant --title "Book a table"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var d tasks.Draft
		d.Title, _ = cmd.Flags().GetString("title")
		d.Date, _ = cmd.Flags().GetString("date")
		d.Time, _ = cmd.Flags().GetString("time")
		d.Note, _ = cmd.Flags().GetString("note")
		d.Category, _ = cmd.Flags().GetString("category")
		d.Location, _ = cmd.Flags().GetString("location")
		prio, _ := cmd.Flags().GetString("priority")
		d.Priority = tasks.Priority(prio)
		assistant, _ := cmd.Flags().GetBool("assistant")

		if d.Title == "" && !assistant {
			if d.Date == "" {
				d.Date = "Today"
			}
			if d.Category == "" {
				d.Category = "Personal"
			}
			if err := taskForm(&d).Run(); err != nil {
				return err
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		path := "/tasks/"
		if assistant {
			path = "/tasks/assistant"
		}
		resp, err := client.post(cmd.Context(), path, d)
		if err != nil {
			return err
		}
		var added struct {
			Task   tasks.Task   `json:"task"`
			Bucket tasks.Bucket `json:"bucket"`
		}
		if err := decodeJSON(resp, &added); err != nil {
			return err
		}
		printSuccess("Added %q to %s (%s)", added.Task.Title, added.Bucket, added.Task.ID)
		return nil
	},
}

var tasksToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a task between done and not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, _ := cmd.Flags().GetString("bucket")
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/tasks/"+url.PathEscape(args[0])+"/toggle?bucket="+url.QueryEscape(bucket), nil)
		if err != nil {
			return err
		}
		return reportChange(resp, args[0], bucket, "toggled")
	},
}

var tasksNoteCmd = &cobra.Command{
	Use:   "note <id> <note>",
	Short: "Replace a task's note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, _ := cmd.Flags().GetString("bucket")
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		body := map[string]string{"note": strings.Join(args[1:], " ")}
		resp, err := client.put(cmd.Context(), "/tasks/"+url.PathEscape(args[0])+"/note?bucket="+url.QueryEscape(bucket), body)
		if err != nil {
			return err
		}
		return reportChange(resp, args[0], bucket, "updated")
	},
}

// reportChange prints the outcome of a toggle or note edit. A task missing
// from the bucket is not an error; nothing changes.
func reportChange(resp *http.Response, id, bucket, verb string) error {
	var ch struct {
		Changed bool        `json:"changed"`
		Task    *tasks.Task `json:"task"`
	}
	if err := decodeJSON(resp, &ch); err != nil {
		return err
	}
	if !ch.Changed || ch.Task == nil {
		printWarning("No task %s in %s", id, bucket)
		return nil
	}
	printSuccess("Task %s %s", id, verb)
	renderTask(os.Stdout, *ch.Task)
	return nil
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		printStep("Requesting deletion of %s", args[0])
		resp, err := client.post(cmd.Context(), "/tasks/"+url.PathEscape(args[0])+"/delete", nil)
		if err != nil {
			return err
		}
		var req map[string]string
		if err := decodeJSON(resp, &req); err != nil {
			return err
		}
		token := url.PathEscape(req["token"])

		ok := yes
		if !yes {
			if err := confirmForm(fmt.Sprintf("Delete task %s?", args[0]), &ok).Run(); err != nil {
				if cerr := cancelDeletion(cmd.Context(), client, token); cerr != nil {
					printWarning("could not cancel deletion: %v", cerr)
				}
				return err
			}
		}

		if !ok {
			if err := cancelDeletion(cmd.Context(), client, token); err != nil {
				return err
			}
			printWarning("Deletion cancelled")
			return nil
		}

		resp, err = client.post(cmd.Context(), "/tasks/deletions/"+token+"/confirm", nil)
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}
		printSuccess("Deleted task %s", args[0])
		return nil
	},
}

// cancelDeletion releases a pending deletion token. It runs even when ctx
// is already cancelled so an interrupted prompt does not leave the token
// behind.
func cancelDeletion(ctx context.Context, client *apiClient, token string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	resp, err := client.delete(ctx, "/tasks/deletions/"+token)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

var tasksCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show upcoming tasks on a month grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		q := url.Values{}
		if year > 0 {
			q.Set("year", fmt.Sprint(year))
		}
		if month > 0 {
			q.Set("month", fmt.Sprint(month))
		}
		resp, err := client.get(cmd.Context(), "/tasks/calendar?"+q.Encode())
		if err != nil {
			return err
		}
		var m tasks.Month
		if err := decodeJSON(resp, &m); err != nil {
			return err
		}
		renderMonth(os.Stdout, m)
		return nil
	},
}

// renderMonth prints a Sunday-first grid, marking days with tasks, then
// lists those days with their first tasks.
func renderMonth(w io.Writer, m tasks.Month) {
	fmt.Fprintln(w, colorize(boldStyle, m.Title))
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa")

	col := 0
	for ; col < m.Blanks; col++ {
		fmt.Fprint(w, "    ")
	}
	for _, d := range m.Days {
		cell := fmt.Sprintf("%3d", d.Day)
		if len(d.Tasks) > 0 {
			cell = colorize(stepStyle, fmt.Sprintf("%2d*", d.Day))
		}
		fmt.Fprint(w, cell+" ")
		col++
		if col%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if col%7 != 0 {
		fmt.Fprintln(w)
	}

	for _, d := range m.Days {
		if len(d.Tasks) == 0 {
			continue
		}
		titles := make([]string, len(d.Tasks))
		for i, t := range d.Tasks {
			titles[i] = t.Title
		}
		line := strings.Join(titles, ", ")
		if d.Overflow > 0 {
			line += fmt.Sprintf(" +%d more", d.Overflow)
		}
		fmt.Fprintf(w, "%3d  %s\n", d.Day, line)
	}
}

func init() {
	tasksListCmd.Flags().String("bucket", "today", "today or upcoming")
	tasksListCmd.Flags().String("sort", "time", "time or priority")
	tasksListCmd.Flags().Bool("json", false, "print tasks as JSON")

	tasksAddCmd.Flags().String("title", "", "task title")
	tasksAddCmd.Flags().String("date", "", `date, e.g. "Today" or "Jan 5, 2025"`)
	tasksAddCmd.Flags().String("time", "", `time, e.g. "3:30 PM"`)
	tasksAddCmd.Flags().String("note", "", "note")
	tasksAddCmd.Flags().String("category", "", "category (Personal, Work, Health)")
	tasksAddCmd.Flags().String("location", "", "location")
	tasksAddCmd.Flags().String("priority", "", "low, medium or high")
	tasksAddCmd.Flags().Bool("assistant", false, "add as the assistant would, filling defaults")

	tasksToggleCmd.Flags().String("bucket", "today", "bucket holding the task")
	tasksNoteCmd.Flags().String("bucket", "today", "bucket holding the task")
	tasksDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	tasksCalendarCmd.Flags().Int("year", 0, "year (default: current)")
	tasksCalendarCmd.Flags().Int("month", 0, "month 1-12 (default: current)")

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksToggleCmd, tasksNoteCmd, tasksDeleteCmd, tasksCalendarCmd)
}

// --- tools ---

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Manage connected tools",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/tools/")
		if err != nil {
			return err
		}
		var list []tools.Tool
		if err := decodeJSON(resp, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No tools connected.")
			return nil
		}
		for _, t := range list {
			fmt.Printf("%s  %s  %s  %s\n", colorize(stepStyle, t.ID), colorize(boldStyle, t.Name), t.Credential, colorize(successStyle, string(t.Status)))
		}
		return nil
	},
}

var toolsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the tools that can be connected",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range tools.Catalog() {
			fmt.Printf("%-10s %-16s %s\n", e.Kind, e.Label, colorize(faintStyle, e.Placeholder))
		}
		return nil
	},
}

var toolsAddCmd = &cobra.Command{
	Use:   "add [kind] [credential]",
	Short: "Connect a tool",
	Long: `Connect a tool. Without arguments an interactive form is shown.

Examples:
  syntra tools add
  syntra tools add notion secret_abc123`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind tools.Kind
		var credential string
		if len(args) > 0 {
			kind = tools.Kind(args[0])
		}
		if len(args) > 1 {
			credential = args[1]
		}
		if credential == "" {
			if kind == "" {
				kind = tools.KindGmail
			}
			if err := toolForm(&kind, &credential).Run(); err != nil {
				return err
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/tools/", map[string]any{"kind": kind, "credential": credential})
		if err != nil {
			return err
		}
		var t tools.Tool
		if err := decodeJSON(resp, &t); err != nil {
			return err
		}
		printSuccess("Connected %s (%s)", t.Name, t.ID)
		return nil
	},
}

var toolsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Disconnect a tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/tools/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}
		printSuccess("Removed tool %s", args[0])
		return nil
	},
}

func init() {
	toolsCmd.AddCommand(toolsListCmd, toolsCatalogCmd, toolsAddCmd, toolsRemoveCmd)
}

// --- reports ---

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Show productivity statistics",
	Long: `Show completion statistics for the current task store. With --period,
show the daily, weekly or monthly dashboard view instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if period, _ := cmd.Flags().GetString("period"); period != "" {
			resp, err := client.get(cmd.Context(), "/reports/"+url.PathEscape(period))
			if err != nil {
				return err
			}
			var v reports.PeriodView
			if err := decodeJSON(resp, &v); err != nil {
				return err
			}
			renderPeriod(os.Stdout, v)
			return nil
		}

		resp, err := client.get(cmd.Context(), "/reports")
		if err != nil {
			return err
		}
		var rep reports.Report
		if err := decodeJSON(resp, &rep); err != nil {
			return err
		}
		renderReport(os.Stdout, rep)
		return nil
	},
}

func renderReport(w io.Writer, rep reports.Report) {
	fmt.Fprintf(w, "%s %d of %d tasks completed (%d%%)\n", colorize(boldStyle, "Overall:"), rep.Completed, rep.Total, rep.CompletionRate)
	fmt.Fprintf(w, "%s %d\n", colorize(boldStyle, "Scheduled by Syntra:"), rep.AssistantMade)
	fmt.Fprintln(w, colorize(boldStyle, "By category:"))
	for _, b := range rep.Categories {
		fmt.Fprintf(w, "  %-10s %d/%d\n", colorize(tasks.CategoryStyle(b.Name), b.Name), b.Completed, b.Total)
	}
	fmt.Fprintln(w, colorize(boldStyle, "By priority:"))
	for _, b := range rep.Priorities {
		fmt.Fprintf(w, "  %-10s %d/%d\n", colorize(tasks.PriorityStyle(tasks.Priority(b.Name)), b.Name), b.Completed, b.Total)
	}
}

var goalStyles = map[reports.GoalStatus]lipgloss.Style{
	reports.GoalOnTrack:  successStyle,
	reports.GoalBehind:   warningStyle,
	reports.GoalExceeded: stepStyle,
}

func renderPeriod(w io.Writer, v reports.PeriodView) {
	fmt.Fprintf(w, "%s\n", colorize(boldStyle, v.Subtitle))
	m := v.Metrics
	fmt.Fprintf(w, "  Tasks completed %d  Productivity %d%%  Focused %s  Automations %d\n",
		m.TasksCompleted, m.ProductivityScore, m.TimeFocused, m.Automations)

	if len(v.Days) > 0 {
		fmt.Fprintln(w, colorize(boldStyle, "By day:"))
		for _, d := range v.Days {
			fmt.Fprintf(w, "  %-4s %2d/%-2d %3d%%\n", d.Day, d.Completed, d.Planned, d.Productivity)
		}
	}
	if len(v.Categories) > 0 {
		fmt.Fprintln(w, colorize(boldStyle, "By category:"))
		for _, c := range v.Categories {
			fmt.Fprintf(w, "  %-10s %d/%d\n", colorize(tasks.CategoryStyle(c.Name), c.Name), c.Completed, c.Planned)
		}
	}
	if len(v.Goals) > 0 {
		fmt.Fprintln(w, colorize(boldStyle, "Goals:"))
		for _, g := range v.Goals {
			fmt.Fprintf(w, "  %-20s %d/%d %3d%% %s\n", g.Goal, g.Current, g.Target, g.Progress, colorize(goalStyles[g.Status], string(g.Status)))
		}
	}
	fmt.Fprintln(w, colorize(boldStyle, "Insights:"))
	for _, in := range v.Insights {
		fmt.Fprintf(w, "  %s: %s\n", in.Title, in.Insight)
		fmt.Fprintf(w, "    %s\n", colorize(faintStyle, in.Recommendation))
	}
}

func init() {
	reportsCmd.Flags().String("period", "", "daily, weekly or monthly")
}

// --- settings ---

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change dashboard preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/settings")
		if err != nil {
			return err
		}
		var p settings.Preferences
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}
		renderPreferences(os.Stdout, p)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <notifications|theme|phone> <value>",
	Short: "Change one preference",
	Long: `Change one preference.

Examples:
  syntra settings set notifications false
  syntra settings set theme dark
  syntra settings set phone "+91 98765 43210"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := parsePreference(args[0], args[1])
		if err != nil {
			return err
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.put(cmd.Context(), "/settings", u)
		if err != nil {
			return err
		}
		var p settings.Preferences
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}
		printSuccess("Updated %s", args[0])
		renderPreferences(os.Stdout, p)
		return nil
	},
}

func parsePreference(key, value string) (settings.Update, error) {
	var u settings.Update
	switch key {
	case "notifications":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return u, fmt.Errorf("notifications must be true or false, got %q", value)
		}
		u.Notifications = &b
	case "theme":
		t := settings.Theme(value)
		u.Theme = &t
	case "phone":
		u.Phone = &value
	default:
		return u, fmt.Errorf("unknown preference %q (want notifications, theme or phone)", key)
	}
	return u, nil
}

func renderPreferences(w io.Writer, p settings.Preferences) {
	phone := p.Phone
	if phone == "" {
		phone = colorize(faintStyle, "not set")
	}
	fmt.Fprintf(w, "%-14s %t\n", "notifications", p.Notifications)
	fmt.Fprintf(w, "%-14s %s\n", "theme", p.Theme)
	fmt.Fprintf(w, "%-14s %s\n", "phone", phone)
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}

// --- session ---

func printUser(u session.User) {
	printSuccess("Signed in as %s <%s>", u.Name, u.Email)
	printStatus("Plan", "%s", u.SubscriptionType)
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in with email and password",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		printStep("Signing in...")
		resp, err := client.post(cmd.Context(), "/session/login", map[string]string{"email": args[0], "password": args[1]})
		if err != nil {
			return err
		}
		var u session.User
		if err := decodeJSON(resp, &u); err != nil {
			return err
		}
		printUser(u)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <name> <email> <password> <confirm-password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		printStep("Creating account...")
		resp, err := client.post(cmd.Context(), "/session/signup", map[string]string{
			"name":             args[0],
			"email":            args[1],
			"password":         args[2],
			"confirm_password": args[3],
		})
		if err != nil {
			return err
		}
		var u session.User
		if err := decodeJSON(resp, &u); err != nil {
			return err
		}
		printUser(u)
		return nil
	},
}

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with Google",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		printStep("Signing in with Google...")
		resp, err := client.post(cmd.Context(), "/session/google", nil)
		if err != nil {
			return err
		}
		var u session.User
		if err := decodeJSON(resp, &u); err != nil {
			return err
		}
		printUser(u)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/session/")
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}
		printSuccess("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/session/")
		if err != nil {
			return err
		}
		var u session.User
		if err := decodeJSON(resp, &u); err != nil {
			return err
		}
		return printJSON(os.Stdout, u)
	},
}
