package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// colorize returns colored string if in terminal, otherwise plain
func colorize(s, color string) string {
	if !isTerminal() {
		return s
	}
	return color + s + colorReset
}

func bold(s string) string   { return colorize(s, colorBold) }
func dim(s string) string    { return colorize(s, colorDim) }
func cyan(s string) string   { return colorize(s, colorCyan) }
func green(s string) string  { return colorize(s, colorGreen) }
func yellow(s string) string { return colorize(s, colorYellow) }

// ShowHelp is the entry point used by --help
func (c *CLI) ShowHelp() {
	c.ShowColoredHelp()
}

// ShowColoredHelp shows the colorized help message
func (c *CLI) ShowColoredHelp() {
	fmt.Println()
	fmt.Println(bold(green("feedback")) + " - Tell the InnoBee team what you think")
	fmt.Println()

	fmt.Println(bold("USAGE"))
	fmt.Println("  " + cyan("feedback") + "                        " + dim("Start the interactive wizard"))
	fmt.Println("  " + cyan("feedback") + " " + yellow("<command>") + " " + dim("[options]") + "    " + dim("Run a command"))
	fmt.Println()

	fmt.Println(bold("COMMANDS"))
	fmt.Println()

	fmt.Println("  " + bold("Feedback"))
	printCommand("submit", "-rating <1-5>", "Send feedback without the wizard")
	fmt.Println()

	fmt.Println("  " + bold("Service"))
	printCommand("serve", "[-addr :5050]", "Run the collection endpoint")
	printCommand("health", "[-api <url>]", "Check the endpoint is reachable")
	fmt.Println()

	fmt.Println("  " + bold("Configuration"))
	printCommand("config", "<show|create>", "Show or create the config file")
	printCommand("help", "<command>", "Show detailed help")
	fmt.Println()

	fmt.Println(bold("FLAGS"))
	fmt.Println("  " + yellow("--help") + "      " + dim("Show help for feedback or a command"))
	fmt.Println("  " + yellow("--version") + "   " + dim("Show version information"))
	fmt.Println()

	fmt.Println(bold("WIZARD KEYS"))
	fmt.Println("  " + cyan("1-5") + " " + dim("rate") + "   " + cyan("tab") + " " + dim("next") + "   " +
		cyan("shift+tab") + " " + dim("back") + "   " + cyan("ctrl+s") + " " + dim("finish") + "   " +
		cyan("ctrl+c") + " " + dim("quit"))
	fmt.Println()

	fmt.Println(bold("EXAMPLES"))
	fmt.Println()
	fmt.Println("  " + dim("# Start the wizard"))
	fmt.Println("  $ " + cyan("feedback"))
	fmt.Println()
	fmt.Println("  " + dim("# Run the endpoint locally and send a rating to it"))
	fmt.Println("  $ " + cyan("feedback serve &"))
	fmt.Println("  $ " + cyan("feedback submit -rating 5 -opinion \"Great!\""))
	fmt.Println()

	fmt.Println(bold("CONFIGURATION"))
	fmt.Println()
	fmt.Println("  User config: " + cyan("~/.config/feedback/config.toml"))
	fmt.Println("  Overrides:   " + cyan(".env") + dim(", FEEDBACK_API_URL, FEEDBACK_TIMEOUT, PORT"))
	fmt.Println()
}

// printCommand formats and prints a command with description
func printCommand(cmd, args, desc string) {
	cmdPart := cyan(cmd)
	if args != "" {
		cmdPart += " " + yellow(args)
	}
	// Pad to align descriptions
	padding := 28 - len(cmd) - len(args)
	if args != "" {
		padding--
	}
	if padding < 2 {
		padding = 2
	}
	fmt.Printf("    %s%s%s\n", cmdPart, strings.Repeat(" ", padding), dim(desc))
}

// ShowCommandHelp shows help for a specific command
func ShowCommandHelp(command string) {
	switch command {
	case "submit":
		showSubmitHelp()
	case "serve":
		showServeHelp()
	case "health":
		showHealthHelp()
	case "config":
		showConfigTopicHelp()
	default:
		fmt.Printf("No detailed help available for '%s'\n", command)
		fmt.Println("Use 'feedback --help' for general help")
	}
}

func showSubmitHelp() {
	fmt.Println()
	fmt.Println(bold("NAME"))
	fmt.Println("  " + cyan("feedback submit") + " - Send feedback without the wizard")
	fmt.Println()
	fmt.Println(bold("SYNOPSIS"))
	fmt.Println("  feedback submit " + yellow("-rating <1-5>") + " [options]")
	fmt.Println()
	fmt.Println(bold("OPTIONS"))
	fmt.Println("  " + yellow("-rating <n>") + "        " + dim("Rating from 1 to 5 (required)"))
	fmt.Println("  " + yellow("-opinion <text>") + "    " + dim("What could be improved, at most 500 characters"))
	fmt.Println("  " + yellow("-interested") + "        " + dim("Opt into user research"))
	fmt.Println("  " + yellow("-email <addr>") + "      " + dim("Contact email, required with -interested"))
	fmt.Println("  " + yellow("-api <url>") + "         " + dim("Feedback API base URL"))
	fmt.Println("  " + yellow("-timeout <d>") + "       " + dim("Request timeout, e.g. 5s"))
	fmt.Println("  " + yellow("-user-agent <ua>") + "   " + dim("User-Agent header, default feedback-cli"))
	fmt.Println()
	fmt.Println(bold("EXAMPLES"))
	fmt.Println("  $ feedback submit -rating 5")
	fmt.Println("  $ feedback submit -rating 2 -opinion \"Too many clicks\"")
	fmt.Println("  $ feedback submit -rating 4 -interested -email user@example.com")
	fmt.Println()
}

func showServeHelp() {
	fmt.Println()
	fmt.Println(bold("NAME"))
	fmt.Println("  " + cyan("feedback serve") + " - Run the feedback collection endpoint")
	fmt.Println()
	fmt.Println(bold("ROUTES"))
	fmt.Println("  " + cyan("POST /api/feedback") + "   " + dim("Accept a submission (201 with an id)"))
	fmt.Println("  " + cyan("GET  /health") + "         " + dim("Liveness probe"))
	fmt.Println()
	fmt.Println(bold("OPTIONS"))
	fmt.Println("  " + yellow("-addr <addr>") + "       " + dim("Listen address, default :5050 or $PORT"))
	fmt.Println("  " + yellow("-origins <list>") + "    " + dim("Comma-separated CORS origins"))
	fmt.Println("  " + yellow("-quiet") + "             " + dim("Only log to the log file"))
	fmt.Println()
	fmt.Println(bold("NOTES"))
	fmt.Println("  Submissions are kept in memory and lost when the service stops.")
	fmt.Println()
}

func showHealthHelp() {
	fmt.Println()
	fmt.Println(bold("NAME"))
	fmt.Println("  " + cyan("feedback health") + " - Check that the feedback service is reachable")
	fmt.Println()
	fmt.Println(bold("SYNOPSIS"))
	fmt.Println("  feedback health " + yellow("[-api <url>]"))
	fmt.Println()
	fmt.Println("  Exits non-zero when " + cyan("GET /health") + " does not answer 200.")
	fmt.Println()
}

func showConfigTopicHelp() {
	fmt.Println()
	fmt.Println(bold("CONFIGURATION"))
	fmt.Println()
	fmt.Println("  Values are resolved in this order, later wins:")
	fmt.Println("  1. built-in defaults")
	fmt.Println("  2. " + cyan("~/.config/feedback/config.toml"))
	fmt.Println("  3. " + cyan(".env") + " in the working directory")
	fmt.Println("  4. environment variables")
	fmt.Println("  5. command flags")
	fmt.Println()
	fmt.Println(bold("FILE"))
	fmt.Println()
	fmt.Println("    " + dim("[client]"))
	fmt.Println("    " + yellow("api-url") + " = " + green("\"http://localhost:5050/api\""))
	fmt.Println("    " + yellow("timeout") + " = " + green("\"10s\""))
	fmt.Println()
	fmt.Println("    " + dim("[server]"))
	fmt.Println("    " + yellow("addr") + " = " + green("\":5050\""))
	fmt.Println("    " + yellow("allowed-origins") + " = " + green("[\"http://localhost:5173\"]"))
	fmt.Println()
}
