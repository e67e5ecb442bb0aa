package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/calendarctl/internal/server"
)

func newGenerateDocsCmd(a *app) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate markdown documentation for all available MCP tools.
This command introspects the registered tools and outputs their documentation
in markdown format, so the documentation stays in sync with the actual tool
implementations.`,
		Args: usageArgs(cobra.NoArgs),
		// Overrides the root hook: tool definitions need no credentials.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generateDocs(cmd.Context(), outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func (a *app) generateDocs(ctx context.Context, outputFile string) error {
	// Handlers never run, so no executor is needed.
	serverContext := server.NewServerContext(ctx, nil)
	defer func() {
		_ = serverContext.Shutdown()
	}()

	mcpSrv := mcpserver.NewMCPServer("calendarctl", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register write tools too so that every tool is documented.
	if err := registerAllTools(mcpSrv, serverContext, false); err != nil {
		return err
	}

	serverTools := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(serverTools))
	for _, serverTool := range serverTools {
		tools = append(tools, serverTool.Tool)
	}

	markdown := generateToolsMarkdown(tools)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(a.stderr, "Documentation written to: %s\n", outputFile)
		return nil
	}

	_, err := fmt.Fprint(a.stdout, markdown)
	return err
}

func generateToolsMarkdown(tools []mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document provides a complete reference of all tools available when running calendarctl as an MCP server.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")

	toolsByCategory := groupToolsByCategory(tools)

	sb.WriteString("## Table of Contents\n\n")
	categories := make([]string, 0, len(toolsByCategory))
	for category := range toolsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		anchor := strings.ToLower(strings.ReplaceAll(category, " ", "-"))
		fmt.Fprintf(&sb, "- [%s](#%s)\n", category, anchor)
	}
	sb.WriteString("\n")

	sb.WriteString("## Authentication\n\n")
	sb.WriteString("Every tool accepts two optional arguments that select the credential:\n\n")
	sb.WriteString("- `tokenPath`: path of the OAuth token file (default: the configured token path)\n")
	sb.WriteString("- `scopes`: OAuth scopes separated by commas or spaces (default: the scopes of the tool's service)\n\n")
	sb.WriteString("Tools that create, change or delete data are only registered when the server runs with `--yolo`.\n\n")

	for _, category := range categories {
		categoryTools := toolsByCategory[category]
		sort.Slice(categoryTools, func(i, j int) bool {
			return categoryTools[i].Name < categoryTools[j].Name
		})

		fmt.Fprintf(&sb, "## %s\n\n", category)

		for _, tool := range categoryTools {
			sb.WriteString(generateToolMarkdown(tool))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func groupToolsByCategory(tools []mcp.Tool) map[string][]mcp.Tool {
	categories := make(map[string][]mcp.Tool)

	for _, tool := range tools {
		category := getCategoryFromToolName(tool.Name)
		categories[category] = append(categories[category], tool)
	}

	return categories
}

func getCategoryFromToolName(name string) string {
	prefix, _, _ := strings.Cut(name, "_")
	switch prefix {
	case "calendar":
		return "Google Calendar Tools"
	case "tasks":
		return "Google Tasks Tools"
	case "google":
		return "Google API Tools"
	default:
		return "Other"
	}
}

func generateToolMarkdown(tool mcp.Tool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### %s\n\n", tool.Name)

	if tool.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", tool.Description)
	}

	if len(tool.InputSchema.Properties) > 0 {
		sb.WriteString("**Arguments:**\n")

		// Sort properties for consistent output
		propNames := make([]string, 0, len(tool.InputSchema.Properties))
		for name := range tool.InputSchema.Properties {
			propNames = append(propNames, name)
		}
		sort.Strings(propNames)

		for _, name := range propNames {
			propMap, ok := tool.InputSchema.Properties[name].(map[string]any)
			if !ok {
				continue
			}

			requiredStr := "optional"
			if contains(tool.InputSchema.Required, name) {
				requiredStr = "required"
			}

			fmt.Fprintf(&sb, "- `%s` (%s, %s): ", name, getPropertyType(propMap), requiredStr)
			if desc, ok := propMap["description"].(string); ok {
				sb.WriteString(desc)
			} else {
				fmt.Fprintf(&sb, "%s parameter", getPropertyType(propMap))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func getPropertyType(prop map[string]any) string {
	if t, ok := prop["type"].(string); ok {
		return t
	}
	return "any"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
