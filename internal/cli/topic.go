package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage study topics (add, edit, rm, list)",
	Long: `Manage the topics the study plan is generated from.

Each topic has an ordered list of subtopics, a complexity, a priority and
an estimated number of study hours. Changes take effect on the next
"sb plan generate".`,
}

var topicAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new topic",
	Long: `Add a new topic with the given title.

Subtopics are given as a comma-separated list and blank entries are
dropped. Complexity, priority and hours fall back to the defaults in
.studyconfig when omitted.

Examples:
  sb topic add Algebra --subtopics "Linear Equations,Quadratics"
  sb topic add Chemistry --subtopics Atoms --complexity hard --priority high --hours 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TopicMgr == nil {
			return fmt.Errorf("topic manager not initialized")
		}

		input, err := topicInputFromFlags(cmd)
		if err != nil {
			return err
		}
		input.Title = args[0]

		topic, err := TopicMgr.AddTopic(input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added topic %s\n", topic.ID)
		printTopicDetails(out, topic)
		return nil
	},
}

var topicEditCmd = &cobra.Command{
	Use:   "edit <topic-id>",
	Short: "Edit an existing topic",
	Long: `Edit an existing topic. Only the flags given are changed; the topic id
and the date it was added are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TopicMgr == nil {
			return fmt.Errorf("topic manager not initialized")
		}

		existing, err := TopicMgr.GetTopic(args[0])
		if err != nil {
			return err
		}

		input := core.TopicInput{
			Title:          existing.Title,
			Subtopics:      existing.Subtopics,
			Complexity:     existing.Complexity,
			Priority:       existing.Priority,
			EstimatedHours: existing.EstimatedHours,
		}
		changes, err := topicInputFromFlags(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			input.Title, _ = flags.GetString("title")
		}
		if flags.Changed("subtopics") {
			input.Subtopics = changes.Subtopics
		}
		if flags.Changed("complexity") {
			input.Complexity = changes.Complexity
		}
		if flags.Changed("priority") {
			input.Priority = changes.Priority
		}
		if flags.Changed("hours") {
			input.EstimatedHours = changes.EstimatedHours
		}

		topic, err := TopicMgr.UpdateTopic(args[0], input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Updated topic %s\n", topic.ID)
		printTopicDetails(out, topic)
		return nil
	},
}

var topicRmCmd = &cobra.Command{
	Use:     "rm <topic-id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a topic",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TopicMgr == nil {
			return fmt.Errorf("topic manager not initialized")
		}
		if err := TopicMgr.DeleteTopic(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed topic %s\n", args[0])
		return nil
	},
}

var topicListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all topics",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TopicMgr == nil {
			return fmt.Errorf("topic manager not initialized")
		}

		topics, err := TopicMgr.ListTopics()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(topics) == 0 {
			fmt.Fprintln(out, "No topics yet. Add one with: sb topic add <title> --subtopics a,b")
			return nil
		}

		fmt.Fprintf(out, "  %-12s %-6s %-6s %-5s %-10s %s\n", "ID", "CPLX", "PRI", "HRS", "ADDED", "TITLE")
		fmt.Fprintf(out, "  %-12s %-6s %-6s %-5s %-10s %s\n", "--", "----", "---", "---", "-----", "-----")
		for _, t := range topics {
			fmt.Fprintf(out, "  %-12s %-6s %-6s %-5d %-10s %s (%s)\n",
				t.ID, t.Complexity, t.Priority, t.EstimatedHours, t.DateAdded, t.Title, strings.Join(t.Subtopics, ", "))
		}
		return nil
	},
}

// topicInputFromFlags reads the shared add/edit flags. Enum flags are
// parsed here so a typo fails before anything is written.
func topicInputFromFlags(cmd *cobra.Command) (core.TopicInput, error) {
	flags := cmd.Flags()
	subtopics, _ := flags.GetStringSlice("subtopics")
	complexityFlag, _ := flags.GetString("complexity")
	priorityFlag, _ := flags.GetString("priority")
	hours, _ := flags.GetInt("hours")

	input := core.TopicInput{
		Subtopics:      subtopics,
		EstimatedHours: hours,
	}
	if complexityFlag != "" {
		c, err := models.ParseComplexity(complexityFlag)
		if err != nil {
			return core.TopicInput{}, fmt.Errorf("parsing --complexity: %w", err)
		}
		input.Complexity = c
	}
	if priorityFlag != "" {
		p, err := models.ParsePriority(priorityFlag)
		if err != nil {
			return core.TopicInput{}, fmt.Errorf("parsing --priority: %w", err)
		}
		input.Priority = p
	}
	return input, nil
}

func printTopicDetails(out io.Writer, t *models.Topic) {
	fmt.Fprintf(out, "  Title:      %s\n", t.Title)
	fmt.Fprintf(out, "  Subtopics:  %s\n", strings.Join(t.Subtopics, ", "))
	fmt.Fprintf(out, "  Complexity: %s\n", t.Complexity)
	fmt.Fprintf(out, "  Priority:   %s\n", t.Priority)
	fmt.Fprintf(out, "  Hours:      %d\n", t.EstimatedHours)
	fmt.Fprintf(out, "  Added:      %s\n", t.DateAdded)
}

func addTopicFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("subtopics", nil, "Comma-separated subtopics in study order")
	cmd.Flags().String("complexity", "", "Topic complexity (easy, medium, hard)")
	cmd.Flags().String("priority", "", "Topic priority (low, medium, high)")
	cmd.Flags().Int("hours", 0, "Estimated study hours for the whole topic")
}

func init() {
	addTopicFlags(topicAddCmd)
	_ = topicAddCmd.MarkFlagRequired("subtopics")
	registerTopicFlagCompletions(topicAddCmd)

	addTopicFlags(topicEditCmd)
	topicEditCmd.Flags().String("title", "", "New topic title")
	registerTopicFlagCompletions(topicEditCmd)
	topicEditCmd.ValidArgsFunction = completeTopicIDs
	topicRmCmd.ValidArgsFunction = completeTopicIDs

	topicCmd.AddCommand(topicAddCmd, topicEditCmd, topicRmCmd, topicListCmd)
	rootCmd.AddCommand(topicCmd)
}
