package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and show the study plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the study plan from the current topics",
	Long: `Regenerate the whole study plan starting today.

Every subtopic gets an initial learning session, six spaced reviews
(1, 3, 7, 14, 30 and 90 days later) and an active-recall test. Completion
marks are reset unless plan.preserve_completion is set in .studyconfig.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if PlanMgr == nil {
			return fmt.Errorf("plan manager not initialized")
		}

		tasks, err := PlanMgr.Regenerate()
		if err != nil {
			return err
		}
		stats, err := PlanMgr.Stats()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d task(s); %d%% complete (%d/%d).\n",
			len(tasks), stats.Percentage, stats.Completed, stats.Total)
		return nil
	},
}

var planShowAll bool

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the full study plan in priority order",
	Long: `Show the study plan, highest priority first and then by date.

Completed tasks are hidden unless --all is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if PlanMgr == nil {
			return fmt.Errorf("plan manager not initialized")
		}

		tasks, err := PlanMgr.Tasks()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No plan yet. Run: sb plan generate")
			return nil
		}

		shown := tasks
		if !planShowAll {
			shown = make([]models.Task, 0, len(tasks))
			for _, t := range tasks {
				if !t.Completed {
					shown = append(shown, t)
				}
			}
		}
		printTaskTable(out, shown)
		return nil
	},
}

// printTaskTable prints tasks in the order given.
func printTaskTable(out io.Writer, tasks []models.Task) {
	fmt.Fprintf(out, "  %-3s %-10s %-18s %-6s %-6s %s\n", "", "DATE", "ID", "PRI", "MIN", "TASK")
	for _, t := range tasks {
		fmt.Fprintf(out, "  %-3s %-10s %-18s %-6s %-6d %s\n",
			checkbox(t.Completed), t.Date, t.ID, t.Priority, t.Duration, describeTask(t))
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func describeTask(t models.Task) string {
	return fmt.Sprintf("%s: %s - %s", t.Type, t.Topic, t.Subtopic)
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's tasks and what comes next",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if PlanMgr == nil {
			return fmt.Errorf("plan manager not initialized")
		}

		snap, err := PlanMgr.Snapshot()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Today (%s)\n", snap.Today)
		if len(snap.TodayTasks) == 0 {
			fmt.Fprintln(out, "  Nothing scheduled for today.")
		} else {
			minutes := 0
			for _, t := range snap.TodayTasks {
				if !t.Completed {
					minutes += t.Duration
				}
			}
			printTaskTable(out, snap.TodayTasks)
			fmt.Fprintf(out, "  %d minute(s) remaining\n", minutes)
		}

		if len(snap.Upcoming) > 0 {
			fmt.Fprintln(out, "\nUpcoming")
			printTaskTable(out, snap.Upcoming)
		}
		return nil
	},
}

var upcomingLimit int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show the next tasks due after today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if PlanMgr == nil {
			return fmt.Errorf("plan manager not initialized")
		}
		if upcomingLimit < 0 {
			return fmt.Errorf("-n must not be negative, got %d", upcomingLimit)
		}

		tasks, err := PlanMgr.Upcoming(upcomingLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No upcoming tasks.")
			return nil
		}
		printTaskTable(out, tasks)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show plan completion statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if PlanMgr == nil {
			return fmt.Errorf("plan manager not initialized")
		}

		stats, err := PlanMgr.Stats()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %d%% (%d/%d tasks)\n",
			progressBar(stats.Percentage, 20), stats.Percentage, stats.Completed, stats.Total)
		return nil
	},
}

// progressBar renders a plain-text bar of the given width.
func progressBar(percentage, width int) string {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	filled := percentage * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task between completed and not completed",
	Long: `Toggle the completion flag of a plan task. Running it twice restores the
original state. Task ids are shown by "sb today" and "sb plan show".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if PlanMgr == nil {
			return fmt.Errorf("plan manager not initialized")
		}

		task, err := PlanMgr.Toggle(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if task == nil {
			fmt.Fprintf(out, "No task with id %s; nothing changed.\n", args[0])
			return nil
		}
		state := "not completed"
		if task.Completed {
			state = "completed"
		}
		fmt.Fprintf(out, "Marked %s as %s: %s\n", task.ID, state, describeTask(*task))
		return nil
	},
}

func init() {
	planShowCmd.Flags().BoolVar(&planShowAll, "all", false, "Include completed tasks")
	planCmd.AddCommand(planGenerateCmd, planShowCmd)

	upcomingCmd.Flags().IntVarP(&upcomingLimit, "limit", "n", 0, "Number of tasks to show (default from .studyconfig)")

	doneCmd.ValidArgsFunction = completeTaskIDs

	rootCmd.AddCommand(planCmd, todayCmd, upcomingCmd, statsCmd, doneCmd)
}
