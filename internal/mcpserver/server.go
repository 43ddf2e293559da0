// Package mcpserver exposes the planner as an MCP tool.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/planner"
	"github.com/mfateev/project-planner/internal/present"
)

const ToolGenerateProjectPlan = "generate_project_plan"

// PlanArgs are the tool arguments. Every field is optional free text.
type PlanArgs struct {
	Project      string `json:"project,omitempty" jsonschema:"Project name or type, e.g. Website"`
	Industry     string `json:"industry,omitempty" jsonschema:"Industry the project belongs to"`
	Objectives   string `json:"objectives,omitempty" jsonschema:"Project objectives"`
	TeamMembers  string `json:"team_members,omitempty" jsonschema:"Team members and their roles"`
	Requirements string `json:"project_requirements,omitempty" jsonschema:"Project requirements"`
}

func (a PlanArgs) input() models.PipelineInput {
	return models.PipelineInput{
		Project:      a.Project,
		Industry:     a.Industry,
		Objectives:   a.Objectives,
		TeamMembers:  a.TeamMembers,
		Requirements: a.Requirements,
	}
}

// NewServer builds an MCP server with the generate_project_plan tool.
func NewServer(pl planner.Planner, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "project-planner", Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGenerateProjectPlan,
		Description: "Break a project down into tasks with hour estimates and milestones.",
	}, generateHandler(pl))
	return server
}

func generateHandler(pl planner.Planner) mcp.ToolHandlerFor[PlanArgs, models.ProjectPlan] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args PlanArgs) (*mcp.CallToolResult, models.ProjectPlan, error) {
		l := log.FromContext(ctx).With("tool", ToolGenerateProjectPlan)
		l.Info("plan requested", "project", args.Project)

		result, err := pl.Plan(ctx, args.input())
		if err != nil {
			l.Warn("plan failed", "err", err)
			return nil, models.ProjectPlan{}, err
		}

		md := present.Markdown(present.Tables(result.Plan))
		if md == "" {
			md = "The plan has no tasks or milestones."
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: md}},
		}, *result.Plan, nil
	}
}

// Serve runs the server over stdin/stdout until the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
