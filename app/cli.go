package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prasanthlucy/Resume-project-xeedo/config"
	"github.com/prasanthlucy/Resume-project-xeedo/logger"
	"github.com/prasanthlucy/Resume-project-xeedo/search"
)

var version = "0.3"

// Arguments for CLI flags (used to seed the TUI or the server)
type Arguments struct {
	Dir            string
	Serve          bool
	Addr           string
	ConfigPath     string
	Workers        int
	FileTimeoutSec int
}

// parseArguments parses command line args
func parseArguments(args []string) *Arguments {
	result := &Arguments{
		Dir: ".",
	}

	expectAddr := false
	expectConfig := false
	expectWorkers := false
	expectTimeout := false

	for _, a := range args {
		if expectAddr {
			result.Addr = a
			expectAddr = false
			continue
		}
		if expectConfig {
			result.ConfigPath = a
			expectConfig = false
			continue
		}
		if expectWorkers {
			if n, err := strconv.Atoi(a); err == nil && n > 0 {
				result.Workers = n
			}
			expectWorkers = false
			continue
		}
		if expectTimeout {
			if n, err := strconv.Atoi(a); err == nil && n > 0 {
				result.FileTimeoutSec = n
			}
			expectTimeout = false
			continue
		}
		switch a {
		case "--serve":
			result.Serve = true
		case "--addr", "-addr":
			expectAddr = true
		case "--config", "-config":
			expectConfig = true
		case "--workers", "-workers":
			expectWorkers = true
		case "--file-timeout":
			expectTimeout = true
		case "--help", "-h":
			showUsage()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		default:
			result.Dir = a
		}
	}

	return result
}

// showUsage (styled)
func showUsage() {
	fmt.Println()
	logoTop := " ▀▄▀ █▀▀ █▀▀ █▀▄ █▀█"
	logoBottom := fmt.Sprintf(" █ █ ██▄ ██▄ █▄▀ █▄█  v%s", version)
	if len(logoTop) < len(logoBottom) {
		logoTop += strings.Repeat(" ", len(logoBottom)-len(logoTop))
	}
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Render(logoTop + "\n" + logoBottom))
	fmt.Println()

	fmt.Println(subHeaderStyle.Render("USAGE"))
	fmt.Println(infoStyle.Render("  xeedo [directory]                 Load resumes from a directory and search interactively"))
	fmt.Println(infoStyle.Render("  xeedo --serve [--addr :8080]      Run the browser UI and HTTP API"))
	fmt.Println()

	fmt.Println(subHeaderStyle.Render("FLAGS"))
	fmt.Println(infoStyle.Render("  --serve             Run as an HTTP server instead of the terminal UI"))
	fmt.Println(infoStyle.Render("  --addr ADDR         Listen address for --serve (default from config, :8080)"))
	fmt.Println(infoStyle.Render("  --config PATH       Path to config.yaml"))
	fmt.Println(infoStyle.Render("  --workers N         Concurrent extractions (default: CPU count)"))
	fmt.Println(infoStyle.Render("  --file-timeout N    Per-file extraction timeout in seconds (default 30)"))
	fmt.Println(infoStyle.Render("  --help, -h          Show help"))
	fmt.Println(infoStyle.Render("  --version, -v       Show version"))
	fmt.Println()

	fmt.Println(subHeaderStyle.Render("EXAMPLES"))
	fmt.Println(infoStyle.Render("  xeedo ~/Downloads/resumes"))
	fmt.Println(infoStyle.Render("  xeedo --serve --addr :9000"))
	fmt.Println()
}

// showVersion
func showVersion() {
	fmt.Println(successStyle.Render("xeedo v" + version))
}

// Run parses CLI arguments and starts the TUI or the server. Returns a
// process exit code.
func Run() int {
	_ = godotenv.Load()

	args := parseArguments(os.Args[1:])

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Println(errorStyle.Render("Config error: " + err.Error()))
		return 1
	}
	if args.Addr != "" {
		cfg.HTTP.Addr = args.Addr
	}
	if args.Workers > 0 {
		cfg.Extract.Workers = args.Workers
	}
	if args.FileTimeoutSec > 0 {
		cfg.Extract.FileTimeoutSec = args.FileTimeoutSec
	}

	if args.Serve {
		return runServe(cfg)
	}
	return runTUI(cfg, args.Dir)
}

func runTUI(cfg config.Config, dir string) int {
	log, err := logger.NewForTUI(cfg.Logging.Level)
	if err != nil {
		fmt.Println(errorStyle.Render("Logger error: " + err.Error()))
		return 1
	}
	defer func() { _ = log.Sync() }()

	loader := search.NewLoader(search.NewExtractorRegistry(), cfg.Extract.Workers, cfg.FileTimeout(), log)

	m := newModel(loader, dir, cfg.Search.ExcerptWindow)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	return 0
}

func fatalLog(log *zap.Logger, msg string, err error) int {
	log.Error(msg, zap.Error(err))
	return 1
}
