package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/orgast"
	"github.com/spf13/cobra"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Query TODO items across the configured agenda files",
}

var agendaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every matching TODO item, with no date window",
	Args:  cobra.NoArgs,
	RunE:  runAgendaList,
}

var agendaTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's agenda",
	Args:  cobra.NoArgs,
	RunE:  runAgendaView(agenda.Today()),
}

var agendaWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this week's agenda",
	Args:  cobra.NoArgs,
	RunE:  runAgendaView(agenda.CurrentWeek()),
}

var agendaRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Show the agenda across a custom date range",
	Args:  cobra.NoArgs,
	RunE:  runAgendaRange,
}

func init() {
	agendaCmd.PersistentFlags().StringP("format", "f", "", "output format: plain or json")
	agendaCmd.PersistentFlags().IntP("limit", "l", 0, "maximum number of items for 'agenda list' (0 = unlimited); today, week and range are not truncated")

	agendaListCmd.Flags().StringSliceP("states", "s", nil, "filter by TODO state (comma-separated)")
	agendaListCmd.Flags().StringSliceP("tags", "t", nil, "filter by tag (comma-separated)")
	agendaListCmd.Flags().StringP("priority", "p", "", "filter by priority letter: A, B, or C")

	agendaTodayCmd.Flags().StringSliceP("tags", "t", nil, "filter by tag (comma-separated)")
	agendaWeekCmd.Flags().StringSliceP("tags", "t", nil, "filter by tag (comma-separated)")

	agendaRangeCmd.Flags().StringP("start", "s", "", "start date, YYYY-MM-DD")
	agendaRangeCmd.Flags().StringP("end", "e", "", "end date, YYYY-MM-DD")
	agendaRangeCmd.Flags().StringSliceP("tags", "t", nil, "filter by tag (comma-separated)")
	agendaRangeCmd.MarkFlagRequired("start")
	agendaRangeCmd.MarkFlagRequired("end")

	agendaCmd.AddCommand(agendaListCmd, agendaTodayCmd, agendaWeekCmd, agendaRangeCmd)
	rootCmd.AddCommand(agendaCmd)
}

func runAgendaList(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	cfg := eng.Config()

	states, _ := cmd.Flags().GetStringSlice("states")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	priorityArg, _ := cmd.Flags().GetString("priority")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := agenda.Filter{TodoStates: states, Tags: tags}
	if priorityArg != "" {
		p, err := parsePriorityArg(priorityArg)
		if err != nil {
			return err
		}
		filter.Priority = &p
	}

	effectiveLimit := limit
	if effectiveLimit == 0 {
		effectiveLimit = -1
	}
	tasks, err := eng.ListTasks(filter, effectiveLimit)
	if err != nil {
		return err
	}

	if resolvedFormat(cmd, cfg) == "json" {
		return printJSON(os.Stdout, map[string]any{
			"directory": cfg.OrgDirectory,
			"count":     len(tasks),
			"tasks":     tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Printf("No tasks found in %s\n", cfg.OrgDirectory)
		return nil
	}
	fmt.Printf("Found %s task(s) in %s:\n", count(len(tasks)), cfg.OrgDirectory)
	rows := make([]taskRow, len(tasks))
	for i, t := range tasks {
		detail := ""
		switch {
		case t.Deadline != "" && t.Scheduled != "":
			detail = fmt.Sprintf("DEADLINE: %s SCHEDULED: %s", t.Deadline, t.Scheduled)
		case t.Deadline != "":
			detail = "DEADLINE: " + t.Deadline
		case t.Scheduled != "":
			detail = "SCHEDULED: " + t.Scheduled
		}
		rows[i] = taskRow{
			prefix:   taskPrefix(t.TodoState, stringerPriority(t.Priority)),
			heading:  t.Heading,
			location: fmt.Sprintf("%s:[%d:%d]", t.FilePath, t.StartPos, t.EndPos),
			detail:   detail,
		}
	}
	renderTaskTable(os.Stdout, rows)
	return nil
}

// runAgendaView returns a RunE closure for the fixed-window "today"/"week"
// subcommands, which differ only in which agenda.ViewType they compute.
func runAgendaView(viewType agenda.ViewType) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}
		tags, _ := cmd.Flags().GetStringSlice("tags")
		view, err := eng.GetAgendaView(viewType, agenda.Filter{Tags: tags}, time.Now())
		if err != nil {
			return err
		}
		return printAgendaView(resolvedFormat(cmd, eng.Config()), eng.Config().OrgDirectory, view)
	}
}

func runAgendaRange(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	tags, _ := cmd.Flags().GetStringSlice("tags")

	now := time.Now()
	viewType, err := agenda.ParseViewType(fmt.Sprintf("query/from/%s/to/%s", start, end), now)
	if err != nil {
		return err
	}
	view, err := eng.GetAgendaView(viewType, agenda.Filter{Tags: tags}, now)
	if err != nil {
		return err
	}
	return printAgendaView(resolvedFormat(cmd, eng.Config()), eng.Config().OrgDirectory, view)
}

func printAgendaView(format, orgDirectory string, view agenda.View) error {
	if format == "json" {
		return printJSON(os.Stdout, map[string]any{
			"directory":  orgDirectory,
			"start_date": view.StartDate,
			"end_date":   view.EndDate,
			"count":      len(view.Items),
			"items":      view.Items,
		})
	}

	dateRange := ""
	if view.StartDate != nil && view.EndDate != nil {
		dateRange = fmt.Sprintf(" (%s to %s)", *view.StartDate, *view.EndDate)
	}

	if len(view.Items) == 0 {
		fmt.Printf("No scheduled tasks found%s in %s\n", dateRange, orgDirectory)
		return nil
	}
	fmt.Printf("Agenda%s - %s task(s):\n", dateRange, count(len(view.Items)))
	rows := make([]taskRow, len(view.Items))
	for i, item := range view.Items {
		rows[i] = taskRow{
			prefix:   taskPrefix(item.TodoState, stringerPriority(item.Priority)),
			heading:  item.Heading,
			location: item.FilePath,
			detail:   agendaDateInfo(item),
		}
	}
	renderTaskTable(os.Stdout, rows)
	return nil
}

func parsePriorityArg(s string) (orgast.Priority, error) {
	switch s {
	case "A":
		return orgast.PriorityA, nil
	case "B":
		return orgast.PriorityB, nil
	case "C":
		return orgast.PriorityC, nil
	default:
		return "", fmt.Errorf("invalid priority %q: must be \"A\", \"B\", or \"C\"", s)
	}
}
