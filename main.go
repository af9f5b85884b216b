package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/innobee/feedback/internal/api"
	"github.com/innobee/feedback/internal/cli"
	"github.com/innobee/feedback/internal/config"
	"github.com/innobee/feedback/internal/logging"
	"github.com/innobee/feedback/internal/output"
	"github.com/innobee/feedback/internal/ui"
)

// Version information - will be injected at build time for releases
var (
	version = "dev" // Default for local development, overridden by ldflags in releases
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	// Parse command line flags
	var showHelp = flag.Bool("help", false, "Show help message")
	var showVersion = flag.Bool("version", false, "Show version information")
	flag.Parse()

	logging.Info("feedback %s started, args: %v", version, os.Args)

	if *showVersion {
		fmt.Printf("feedback version %s\n", version)
		if commit != "unknown" {
			fmt.Printf("commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("built: %s\n", date)
		}
		return
	}

	configManager := config.NewManager()

	// Everything after the first non-flag argument belongs to the command
	args := os.Args
	cliArgs := []string{}
	for i := 1; i < len(args); i++ {
		if !(*showHelp) && !strings.HasPrefix(args[i], "-") {
			cliArgs = append(cliArgs, args[i:]...)
			break
		}
	}

	if len(cliArgs) > 0 {
		cliHandler := cli.NewCLI(configManager)
		if err := cliHandler.ParseAndExecute(append([]string{"feedback"}, cliArgs...)); err != nil {
			output.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	if *showHelp {
		cli.NewCLI(configManager).ShowHelp()
		return
	}

	// Default to the interactive wizard
	if err := runWizard(configManager); err != nil {
		output.Errorf("Feedback wizard failed: %v", err)
		os.Exit(1)
	}
}

// runWizard starts the TUI against the configured feedback API.
func runWizard(configManager *config.Manager) error {
	cfg, err := configManager.Load()
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		if lvl, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			logging.SetLevel(lvl)
		}
	}

	timeout, err := cfg.ClientTimeout()
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.Client.APIURL,
		api.WithTimeout(timeout),
		api.WithUserAgent(api.DefaultUserAgent+"/"+version),
	)
	if err != nil {
		return err
	}
	logging.Info("Wizard sending feedback to %s", client.FeedbackURL())

	p := tea.NewProgram(ui.NewModel(client, version), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
