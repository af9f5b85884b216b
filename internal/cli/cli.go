package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/innobee/feedback/internal/api"
	"github.com/innobee/feedback/internal/config"
	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
	"github.com/innobee/feedback/internal/output"
	"github.com/innobee/feedback/internal/server"
)

// spinner provides a simple CLI spinner
type spinner struct {
	frames  []string
	index   int
	message string
	done    chan struct{}
	wg      sync.WaitGroup
	active  bool
}

func newSpinner(message string) *spinner {
	return &spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: message,
		done:    make(chan struct{}),
	}
}

func (s *spinner) Start() {
	// Don't show spinner if stdout is not a terminal (e.g., in tests or pipes)
	if !isTerminal() {
		return
	}
	s.active = true
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				fmt.Printf("\r\033[K") // Clear line
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.frames[s.index], s.message)
				s.index = (s.index + 1) % len(s.frames)
			}
		}
	}()
}

func (s *spinner) Stop() {
	if !s.active {
		return
	}
	close(s.done)
	s.wg.Wait()
}

// CLI handles command-line interface operations
type CLI struct {
	configManager *config.Manager
	ctx           context.Context
}

// NewCLI creates a new CLI instance
func NewCLI(configManager *config.Manager) *CLI {
	return &CLI{
		configManager: configManager,
		ctx:           context.Background(),
	}
}

// WithContext sets the parent context of every command. The serve command
// stops when it is cancelled.
func (c *CLI) WithContext(ctx context.Context) *CLI {
	c.ctx = ctx
	return c
}

// ParseAndExecute parses command line arguments and executes the appropriate command
func (c *CLI) ParseAndExecute(args []string) error {
	if len(args) < 2 {
		logging.Error("CLI: no command provided")
		return fmt.Errorf("no command provided")
	}

	command := args[1]
	logging.Info("CLI command: %s, args: %d", command, len(args)-2)

	switch command {
	case "submit":
		return c.handleSubmit(args[2:])
	case "serve":
		return c.handleServe(args[2:])
	case "health":
		return c.handleHealth(args[2:])
	case "config":
		return c.handleConfig(args[2:])
	case "help":
		if len(args) > 2 {
			ShowCommandHelp(args[2])
		} else {
			c.ShowColoredHelp()
		}
		return nil
	default:
		logging.Error("CLI: unknown command: %s", command)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// loadConfig returns the effective configuration
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := c.configManager.Load()
	if err != nil {
		logging.Error("CLI: failed to load config: %v", err)
		return nil, err
	}
	if cfg.LogLevel != "" {
		if lvl, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			logging.SetLevel(lvl)
		}
	}
	return cfg, nil
}

// newClient builds the API client from config with optional flag overrides
func (c *CLI) newClient(cfg *config.Config, apiURL string, timeout time.Duration, opts ...api.Option) (*api.Client, error) {
	if apiURL != "" {
		cfg.Client.APIURL = apiURL
	}
	if timeout == 0 {
		d, err := cfg.ClientTimeout()
		if err != nil {
			return nil, err
		}
		timeout = d
	}
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	return api.NewClient(cfg.Client.APIURL, append([]api.Option{api.WithTimeout(timeout)}, opts...)...)
}

// handleSubmit handles the submit command
func (c *CLI) handleSubmit(args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	rating := fs.Int("rating", 0, "Rating from 1 to 5 (required)")
	opinion := fs.String("opinion", "", "What could be improved (at most 500 characters)")
	interested := fs.Bool("interested", false, "Opt into user research")
	email := fs.String("email", "", "Contact email (required with -interested)")
	apiURL := fs.String("api", "", "Feedback API base URL (overrides config)")
	timeout := fs.Duration("timeout", 0, "Request timeout (overrides config)")
	userAgent := fs.String("user-agent", api.DefaultUserAgent, "User-Agent header sent with the submission")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: feedback submit -rating <1-5> [options]\n")
		fmt.Fprintf(fs.Output(), "\nSend feedback without the interactive wizard\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nExamples:\n")
		fmt.Fprintf(fs.Output(), "  feedback submit -rating 5\n")
		fmt.Fprintf(fs.Output(), "  feedback submit -rating 3 -opinion \"Search is slow\"\n")
		fmt.Fprintf(fs.Output(), "  feedback submit -rating 4 -interested -email user@example.com\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rating == 0 {
		logging.Error("CLI submit: rating is required")
		fs.Usage()
		return fmt.Errorf("rating is required")
	}

	if !*interested && *email != "" {
		output.Warning("Ignoring -email without -interested")
		*email = ""
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	client, err := c.newClient(cfg, *apiURL, *timeout, api.WithUserAgent(*userAgent))
	if err != nil {
		return err
	}

	w := feedback.NewWizard(client)

	// Walk the same steps as the wizard so the same rules apply
	if err := w.Mutate(feedback.Patch{Rating: feedback.Int(*rating)}); err != nil {
		return err
	}
	if err := w.Advance(c.ctx); err != nil {
		return err
	}

	if err := w.Mutate(feedback.Patch{ImprovementText: feedback.String(*opinion)}); err != nil {
		return err
	}
	if err := w.Advance(c.ctx); err != nil {
		return err
	}

	if *interested {
		if err := feedback.ValidateEmailInput(*email); err != nil {
			return err
		}
	}
	if err := w.Mutate(feedback.Patch{
		InterestedInResearch: feedback.Bool(*interested),
		Email:                feedback.String(*email),
	}); err != nil {
		return err
	}

	output.FeedbackHeader(client.FeedbackURL())
	output.PrintPayload(w.Record().Snapshot())
	output.Blank()

	sp := newSpinner("Sending feedback...")
	sp.Start()
	err = w.Advance(c.ctx)
	sp.Stop()
	if err != nil {
		logging.Error("CLI submit failed: %v", err)
		if msg := w.Err(); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	output.Submitted(w.Receipt())
	return nil
}

// handleServe handles the serve command
func (c *CLI) handleServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "Listen address (overrides config and PORT)")
	origins := fs.String("origins", "", "Comma-separated CORS origins (overrides config)")
	quiet := fs.Bool("quiet", false, "Do not mirror the log to stderr")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: feedback serve [options]\n")
		fmt.Fprintf(fs.Output(), "\nRun the feedback collection endpoint\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nExamples:\n")
		fmt.Fprintf(fs.Output(), "  feedback serve\n")
		fmt.Fprintf(fs.Output(), "  feedback serve -addr :8080\n")
		fmt.Fprintf(fs.Output(), "  PORT=8080 feedback serve\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *origins != "" {
		cfg.Server.AllowedOrigins = config.SplitList(*origins)
	}

	if !*quiet {
		logging.SetOutput(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(c.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, server.NewMemoryStore())

	output.Progress("Starting feedback service")
	output.KeyValue("Address", cfg.Server.Addr)
	output.KeyValue("Origins", strings.Join(cfg.Server.AllowedOrigins, ", "))
	output.Hint("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx); err != nil {
		logging.Error("CLI serve failed: %v", err)
		return fmt.Errorf("server failed: %w", err)
	}

	output.Success("Feedback service stopped")
	return nil
}

// handleHealth handles the health command
func (c *CLI) handleHealth(args []string) error {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	apiURL := fs.String("api", "", "Feedback API base URL (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: feedback health [-api <url>]\n")
		fmt.Fprintf(fs.Output(), "\nCheck that the feedback service is reachable\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	client, err := c.newClient(cfg, *apiURL, 0)
	if err != nil {
		return err
	}

	if err := client.Health(c.ctx); err != nil {
		logging.Warn("CLI health: %v", err)
		return fmt.Errorf("feedback service at %s is not healthy: %w", client.HealthURL(), err)
	}

	output.Successf("Feedback service is healthy (%s)", client.HealthURL())
	return nil
}

// handleConfig handles the config command
func (c *CLI) handleConfig(args []string) error {
	if len(args) == 0 {
		return c.handleConfigShow()
	}

	subcommand := args[0]

	switch subcommand {
	case "create":
		return c.handleConfigCreate()
	case "show":
		return c.handleConfigShow()
	case "--help", "-h", "help":
		c.showConfigHelp()
		return nil
	default:
		return fmt.Errorf("unknown config subcommand: %s (use: create, show)", subcommand)
	}
}

func (c *CLI) showConfigHelp() {
	fmt.Println("Usage: feedback config <subcommand>")
	fmt.Println()
	fmt.Println("Manage feedback configuration")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  create     Create a configuration file with default values")
	fmt.Println("  show       Show the effective configuration (default)")
	fmt.Println()
	fmt.Println("Environment variables and a .env file in the working directory")
	fmt.Println("override the file:")
	fmt.Println("  " + config.EnvAPIURL + ", " + config.EnvTimeout + ", " + config.EnvPort + ",")
	fmt.Println("  " + config.EnvAllowedOrigins + ", " + config.EnvLogLevel)
}

func (c *CLI) handleConfigCreate() error {
	configPath := c.configManager.ConfigPath()

	if c.configManager.Exists() {
		output.Info("Config already exists: " + output.Path(configPath))
		output.Hint("To view config, run: feedback config show")
		return nil
	}

	if err := c.configManager.Save(config.Default()); err != nil {
		logging.Error("CLI config create: %v", err)
		return err
	}

	output.Success("Created config")
	output.KeyValue("Path", output.Path(configPath))
	return nil
}

func (c *CLI) handleConfigShow() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	configPath := c.configManager.ConfigPath()
	output.Header("Configuration")
	if c.configManager.Exists() {
		output.KeyValue("File", output.Path(configPath))
	} else {
		output.KeyValue("File", output.Path(configPath)+" "+output.Dim("(not created, using defaults)"))
	}
	output.Blank()

	output.Header("Client")
	output.KeyValue("api-url", cfg.Client.APIURL)
	output.KeyValue("timeout", cfg.Client.Timeout)
	output.Blank()

	output.Header("Server")
	output.KeyValue("addr", cfg.Server.Addr)
	output.KeyValue("allowed-origins", strings.Join(cfg.Server.AllowedOrigins, ", "))
	output.Blank()

	output.KeyValue("log-level", cfg.LogLevel)
	if path := logging.GetLogPath(); path != "" {
		output.KeyValue("log-file", output.Path(path))
	}
	return nil
}
