// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the study planner as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/internal/observability"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// Server wraps study-buddy services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	topicMgr    core.TopicManager
	planMgr     core.PlanManager
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server. alertEngine may be nil.
func NewServer(topicMgr core.TopicManager, planMgr core.PlanManager, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		topicMgr:    topicMgr,
		planMgr:     planMgr,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "sb", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type topicOutput struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Subtopics      []string `json:"subtopics"`
	Complexity     string   `json:"complexity"`
	Priority       string   `json:"priority"`
	EstimatedHours int      `json:"estimated_hours"`
	DateAdded      string   `json:"date_added"`
}

type listTopicsInput struct{}

type listTopicsOutput struct {
	Topics []topicOutput `json:"topics"`
	Count  int           `json:"count"`
}

type addTopicInput struct {
	Title          string   `json:"title" jsonschema:"the topic title"`
	Subtopics      []string `json:"subtopics" jsonschema:"ordered subtopics; blank entries are dropped"`
	Complexity     string   `json:"complexity,omitempty" jsonschema:"easy, medium or hard (default from config)"`
	Priority       string   `json:"priority,omitempty" jsonschema:"low, medium or high (default from config)"`
	EstimatedHours int      `json:"estimated_hours,omitempty" jsonschema:"total study hours for the topic (default from config)"`
}

type taskOutput struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Subtopic    string `json:"subtopic"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	Complexity  string `json:"complexity"`
	ReviewCount int    `json:"review_count"`
}

type taskListOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type emptyInput struct{}

type upcomingInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of tasks to return (default from config)"`
}

type statsOutput struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type toggleTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"the plan task id, e.g. 0-1-review-2"`
}

type toggleTaskOutput struct {
	Message string      `json:"message"`
	Task    *taskOutput `json:"task,omitempty"`
}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_topics",
		Description: "List study topics with their subtopics, complexity, priority and estimated hours.",
	}, s.handleListTopics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_topic",
		Description: "Add a study topic. Blank subtopics are dropped; missing complexity, priority and hours use configured defaults.",
	}, s.handleAddTopic)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "generate_plan",
		Description: "Regenerate the study plan from all topics starting today and return it ranked by priority then due date.",
	}, s.handleGeneratePlan)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_plan",
		Description: "Return the current study plan in ranked order.",
	}, s.handleListPlan)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "todays_tasks",
		Description: "Return the plan tasks due today.",
	}, s.handleTodaysTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "upcoming_tasks",
		Description: "Return the next plan tasks due after today, in plan order.",
	}, s.handleUpcomingTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Return completed, total and percentage progress for the current plan.",
	}, s.handleGetStats)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "toggle_task",
		Description: "Toggle a plan task between completed and not completed. Unknown ids are ignored.",
	}, s.handleToggleTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts (overdue tasks, overloaded day).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleListTopics(_ context.Context, _ *gomcp.CallToolRequest, _ listTopicsInput) (*gomcp.CallToolResult, listTopicsOutput, error) {
	topics, err := s.topicMgr.ListTopics()
	if err != nil {
		return errorResult(fmt.Sprintf("listing topics: %s", err)), listTopicsOutput{}, nil
	}

	out := listTopicsOutput{
		Topics: make([]topicOutput, len(topics)),
		Count:  len(topics),
	}
	for i, t := range topics {
		out.Topics[i] = topicToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleAddTopic(_ context.Context, _ *gomcp.CallToolRequest, input addTopicInput) (*gomcp.CallToolResult, topicOutput, error) {
	topic, err := s.topicMgr.AddTopic(core.TopicInput{
		Title:          input.Title,
		Subtopics:      input.Subtopics,
		Complexity:     models.Complexity(input.Complexity),
		Priority:       models.Priority(input.Priority),
		EstimatedHours: input.EstimatedHours,
	})
	if err != nil {
		return errorResult(err.Error()), topicOutput{}, nil
	}
	return nil, topicToOutput(*topic), nil
}

func (s *Server) handleGeneratePlan(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, taskListOutput, error) {
	tasks, err := s.planMgr.Regenerate()
	if err != nil {
		return errorResult(err.Error()), emptyTaskList(), nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleListPlan(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, taskListOutput, error) {
	tasks, err := s.planMgr.Tasks()
	if err != nil {
		return errorResult(err.Error()), emptyTaskList(), nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleTodaysTasks(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, taskListOutput, error) {
	tasks, err := s.planMgr.Today()
	if err != nil {
		return errorResult(err.Error()), emptyTaskList(), nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleUpcomingTasks(_ context.Context, _ *gomcp.CallToolRequest, input upcomingInput) (*gomcp.CallToolResult, taskListOutput, error) {
	if input.Limit < 0 {
		return errorResult("limit must not be negative"), emptyTaskList(), nil
	}
	tasks, err := s.planMgr.Upcoming(input.Limit)
	if err != nil {
		return errorResult(err.Error()), emptyTaskList(), nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleGetStats(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, statsOutput, error) {
	st, err := s.planMgr.Stats()
	if err != nil {
		return errorResult(err.Error()), statsOutput{}, nil
	}
	return nil, statsOutput{Completed: st.Completed, Total: st.Total, Percentage: st.Percentage}, nil
}

func (s *Server) handleToggleTask(_ context.Context, _ *gomcp.CallToolRequest, input toggleTaskInput) (*gomcp.CallToolResult, toggleTaskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), toggleTaskOutput{}, nil
	}

	task, err := s.planMgr.Toggle(input.TaskID)
	if err != nil {
		return errorResult(err.Error()), toggleTaskOutput{}, nil
	}
	if task == nil {
		return nil, toggleTaskOutput{Message: fmt.Sprintf("task %s not in plan; nothing changed", input.TaskID)}, nil
	}

	out := taskToOutput(*task)
	state := "not completed"
	if task.Completed {
		state = "completed"
	}
	return nil, toggleTaskOutput{
		Message: fmt.Sprintf("task %s marked %s", task.ID, state),
		Task:    &out,
	}, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available"), getAlertsOutput{}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

// --- Helpers ---

func topicToOutput(t models.Topic) topicOutput {
	return topicOutput{
		ID:             t.ID,
		Title:          t.Title,
		Subtopics:      t.Subtopics,
		Complexity:     string(t.Complexity),
		Priority:       string(t.Priority),
		EstimatedHours: t.EstimatedHours,
		DateAdded:      t.DateAdded.String(),
	}
}

func taskToOutput(t models.Task) taskOutput {
	return taskOutput{
		ID:          t.ID,
		Topic:       t.Topic,
		Subtopic:    t.Subtopic,
		Type:        t.Type,
		Date:        t.Date.String(),
		Duration:    t.Duration,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		Complexity:  string(t.Complexity),
		ReviewCount: t.ReviewCount,
	}
}

func tasksToOutput(tasks []models.Task) taskListOutput {
	out := taskListOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}
	return out
}

func emptyTaskList() taskListOutput {
	return taskListOutput{Tasks: []taskOutput{}}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
