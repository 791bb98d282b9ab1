/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcppresenter "github.com/josephgoksu/RepoWing/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server on stdio so AI assistants can
analyze GitHub repositories.

Tools:
- analyze_repository: full report for owner/name[@ref]
- compare_tasks: score a phased task plan against the repository
- detect_project_type: classify the repository

The server will run until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// mcpMarkdownResponse wraps Markdown content in an MCP tool result.
func mcpMarkdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

// mcpErrorResponse wraps an error in an MCP tool result with IsError=true so
// the client sees it instead of a protocol failure.
func mcpErrorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return mcpFormattedErrorResponse(mcppresenter.FormatError(err.Error()))
}

// mcpFormattedErrorResponse wraps pre-formatted error text with IsError=true.
func mcpFormattedErrorResponse(formattedError string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: formattedError}},
		IsError: true,
	}, nil
}

// toolResponse converts a handler outcome into an MCP result.
func toolResponse(result *mcppresenter.ToolResult, err error) (*mcpsdk.CallToolResultFor[any], error) {
	if err != nil {
		return mcpErrorResponse(err)
	}
	if result.Error != "" {
		return mcpFormattedErrorResponse(result.Error)
	}
	return mcpMarkdownResponse(result.Content)
}

// newMCPServer registers every tool against engine.
func newMCPServer(engine mcppresenter.Engine) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "repowing-mcp",
		Version: version,
	}

	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintf(os.Stderr, "✓ MCP connection established\n")
			if viper.GetBool("verbose") {
				fmt.Fprintf(os.Stderr, "[DEBUG] Client initialized\n")
			}
		},
	}

	server := mcpsdk.NewServer(impl, serverOpts)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        mcppresenter.ToolAnalyzeRepository,
		Description: `Analyze a GitHub repository. Returns tech stack, structure, features, quality score and grade, paradigm, architecture style, deploy platform and project type. Use {"repo":"owner/name"} or {"repo":"owner/name@ref"}.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.AnalyzeRepositoryParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return toolResponse(mcppresenter.HandleAnalyzeRepository(ctx, engine, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: mcppresenter.ToolCompareTasks,
		Description: `Estimate how much of a phased task plan a repository already implements.
Pass "phases" as [{"id","title","subTasks":[{"id","title"}]}] or "phases_text" as a YAML/JSON plan.
Each sub-task is reported as likely done, in progress or not started with the matching file categories.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.CompareTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return toolResponse(mcppresenter.HandleCompareTasks(ctx, engine, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        mcppresenter.ToolDetectProjectType,
		Description: `Classify a GitHub repository as one of: mobile-app, fullstack, api, spa, custom. Use {"repo":"owner/name"}.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.DetectProjectTypeParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return toolResponse(mcppresenter.HandleDetectProjectType(ctx, engine, params.Arguments))
	})

	return server
}

func runMCPServer(ctx context.Context) error {
	// NOTE: MCP uses stdio transport. stdout MUST be pure JSON-RPC.
	// All status/debug output goes to stderr only.
	fmt.Fprintln(os.Stderr, "RepoWing MCP Server starting...")

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	server := newMCPServer(newAnalyzer(cfg, newGitHubFetcher(cfg)))

	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
