// Package main provides the conclave CLI entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/richinex/conclave/config"
	"github.com/richinex/conclave/server"
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "conclave",
		Short: "Multi-provider AI orchestration MCP server",
		Long: `Conclave exposes structured analysis tools (chat, debug, codereview,
planner, thinkdeep) to AI-assistant clients over MCP, dispatching each
call to the best of the configured model providers.

Provider API keys are read from the environment (or a .env file):
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, XAI_API_KEY,
OPENROUTER_API_KEY. A provider without a key is simply not registered.`,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.New()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			s, cleanup, err := server.New(settings)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			return mcpserver.ServeStdio(s)
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Print the configured providers and their model catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.New()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			registry, err := server.BuildRegistry(settings)
			if err != nil {
				return err
			}
			defer registry.Close()

			for _, p := range registry.Providers() {
				fmt.Printf("%s:\n", p.Type())
				for _, c := range p.Capabilities() {
					line := fmt.Sprintf("  %-36s score %2d  context %8d", c.ModelName, c.IntelligenceScore, c.ContextWindow)
					if len(c.Aliases) > 0 {
						line += "  aliases: " + strings.Join(c.Aliases, ", ")
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("conclave v%s\n", server.Version)
		},
	}
}
