// Package commands implements the CLI commands for nudge.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/nudge/internal/app"
	"go.trai.ch/nudge/internal/build"
)

// CLI represents the command line interface for nudge.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "nudge [path]",
		Short: "Get a dialog and a sound whenever a watched file changes",
		Long: "nudge opens a small terminal window to pick a file or folder and\n" +
			"toggle monitoring. Every change to a watched file raises a dialog and\n" +
			"plays a notification sound. Repeated changes to the same file within\n" +
			"half a second are reported once.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().StringP("config", "c", "", "Path to the config file (default: <user config dir>/nudge/config.yaml)")
	rootCmd.Flags().String("log-file", "", "Write diagnostics to this file (default: <user cache dir>/nudge/nudge.log)")
	rootCmd.Flags().Bool("log-json", false, "Write diagnostics as JSON records")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logFile, _ := cmd.Flags().GetString("log-file")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	return c.app.Run(cmd.Context(), app.RunOptions{
		Target:     target,
		ConfigPath: configPath,
		LogFile:    logFile,
		LogJSON:    logJSON,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
