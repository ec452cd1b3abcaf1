package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	sbmcp "github.com/valter-silva-au/study-buddy/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the sb MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sb MCP server on stdio",
	Long: `Start the sb MCP server on stdio transport.

The server exposes the study planner as MCP tools that AI assistants can
call: list_topics, add_topic, generate_plan, list_plan, todays_tasks,
upcoming_tasks, get_stats, toggle_task, get_alerts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TopicMgr == nil || PlanMgr == nil {
			return fmt.Errorf("study services not initialized")
		}

		srv := sbmcp.NewServer(TopicMgr, PlanMgr, AlertEngine, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
