package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeTopicIDs lists topic ids with the topic title as description.
func completeTopicIDs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if TopicMgr == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	topics, err := TopicMgr.ListTopics()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var ids []string
	for _, t := range topics {
		if strings.HasPrefix(t.ID, toComplete) {
			ids = append(ids, t.ID+"\t"+t.Title)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// completeTaskIDs lists plan task ids with a short description.
func completeTaskIDs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if PlanMgr == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tasks, err := PlanMgr.Tasks()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var ids []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, toComplete) {
			ids = append(ids, t.ID+"\t"+t.Date.String()+" "+describeTask(t))
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func completeComplexities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"easy\tHalf the base study time",
		"medium\tBase study time",
		"hard\tDouble the base study time",
	}, cobra.ShellCompDirectiveNoFileComp
}

func completePriorities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"high\tRanked first",
		"medium",
		"low\tRanked last",
	}, cobra.ShellCompDirectiveNoFileComp
}

// registerTopicFlagCompletions registers enum completions on a topic add/edit command.
func registerTopicFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("complexity", completeComplexities)
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorities)
}
