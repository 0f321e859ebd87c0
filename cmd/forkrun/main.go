package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattjoyce/forkrun/internal/artifact"
	"github.com/mattjoyce/forkrun/internal/config"
	"github.com/mattjoyce/forkrun/internal/control"
	"github.com/mattjoyce/forkrun/internal/exec"
	"github.com/mattjoyce/forkrun/internal/history"
	"github.com/mattjoyce/forkrun/internal/lock"
	"github.com/mattjoyce/forkrun/internal/log"
	"github.com/mattjoyce/forkrun/internal/runner"
	"github.com/mattjoyce/forkrun/internal/storage"

	"github.com/google/uuid"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "run":
		os.Exit(runRun(args))
	case "history":
		os.Exit(runHistoryNoun(args))
	case "config":
		os.Exit(runConfigNoun(args))
	case "version":
		fmt.Printf("forkrun version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`forkrun - Forking launcher for the SonarQube analysis engine

Usage:
  forkrun <command> [flags]

Commands:
  run             Launch one analysis run in the foreground
  history list    Show recent runs
  history show    Show one run by id
  config check    Validate the configuration
  version         Show version information
  help            Show this help message

Run flags:
  --config PATH   Configuration file or directory
  -D key=value    Set/override one analysis property (repeatable)
  --timeout DUR   Override the execution timeout (e.g. 30m)

Use 'forkrun <command> --help' for command-specific flags.
`)
}

// propFlags collects repeated -D key=value flags.
type propFlags map[string]string

func (p propFlags) String() string { return fmt.Sprintf("%v", map[string]string(p)) }

func (p propFlags) Set(kv string) error {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", kv)
	}
	p[key] = value
	return nil
}

func runRun(args []string) int {
	props := propFlags{}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file or directory")
	timeout := fs.Duration("timeout", 0, "Override execution timeout")
	fs.Var(props, "D", "Analysis property key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := loadConfigForTool(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log.Setup(cfg.Service.LogLevel)
	logger := log.WithComponent("main")
	runID := uuid.NewString()
	logger.Info("forkrun starting", "version", version, "run_id", runID)

	monitor := control.NewStopMonitor()

	// A SIGTERM/SIGINT to the launcher is an external stop request for the
	// child, not an abort of the launcher itself.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, requesting stop", "signal", sig)
		monitor.RequestStop()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ctrl *control.Server
	if cfg.Control.Enabled {
		ctrl = control.New(cfg.Control.Listen, monitor, log.WithComponent("control"))
		go func() {
			if err := ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("control server failed", "error", err)
			}
		}()
	}

	r := runner.New(artifact.NewDirLocator(cfg.Launcher.LibDir), exec.NewExecutor(), monitor)
	r.SetJavaExecutable(cfg.Java.Executable)
	r.AddJvmArguments(cfg.Java.JvmArgs...)
	r.AddJvmEnvVariables(cfg.Java.Env)
	for key, value := range cfg.Analysis.Properties {
		r.SetGlobalProperty(key, value)
	}
	for key, value := range props {
		r.SetGlobalProperty(key, value)
	}
	if *timeout > 0 {
		r.SetTimeout(*timeout)
	} else {
		r.SetTimeout(cfg.Analysis.Timeout)
	}
	r.SetStdOut(exec.NewLogConsumer(log.LevelInfo, exec.NewPrintConsumer(os.Stdout)))
	r.SetStdErr(exec.NewLogConsumer(log.LevelError, exec.NewPrintConsumer(os.Stderr)))

	workDir := r.GlobalProperties()["sonar.working.directory"]
	if workDir == "" {
		workDir = ".sonar"
	}
	runLock, err := lock.Acquire(workDir)
	if err != nil {
		logger.Error("failed to acquire run lock", "error", err)
		return 1
	}
	defer runLock.Release()

	db, err := storage.OpenSQLite(ctx, cfg.History.Path)
	if err != nil {
		logger.Error("failed to open history database", "path", cfg.History.Path, "error", err)
		return 1
	}
	defer db.Close()
	runs := history.NewStore(db)

	started := time.Now()
	if ctrl != nil {
		ctrl.SetStatus(control.Status{State: "running", RunID: runID, StartedAt: started})
	}

	execErr := r.Execute()
	finished := time.Now()

	outcome := classifyOutcome(execErr, monitor)
	run := history.Run{
		ID:         runID,
		Command:    r.LastCommand(),
		Outcome:    outcome,
		Status:     r.LastStatus(),
		StartedAt:  started,
		FinishedAt: finished,
	}
	if execErr != nil {
		run.Error = execErr.Error()
	}
	if _, err := runs.Record(ctx, run); err != nil {
		logger.Warn("failed to record run history", "error", err)
	}

	if ctrl != nil {
		ctrl.SetStatus(control.Status{State: "idle"})
	}

	fmt.Println(renderOutcome(outcome, finished.Sub(started)))
	if execErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", execErr)
		return 1
	}
	return 0
}

func classifyOutcome(execErr error, monitor *control.StopMonitor) history.Outcome {
	switch {
	case execErr != nil:
		return history.OutcomeFailed
	case monitor.Stop():
		return history.OutcomeStopped
	default:
		return history.OutcomeSuccess
	}
}

func runHistoryNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: forkrun history <list|show> [flags]")
		return 1
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "list":
		return runHistoryList(actionArgs)
	case "show":
		return runHistoryShow(actionArgs)
	case "help", "--help", "-h":
		fmt.Println("Usage: forkrun history <list|show> [flags]")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown history action: %s\n", action)
		return 1
	}
}

func runHistoryList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file or directory")
	limit := fs.Int("n", 20, "Maximum number of runs to show")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := loadConfigForTool(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history database: %v\n", err)
		return 1
	}
	defer db.Close()

	runs, err := history.NewStore(db).Recent(ctx, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
		return 1
	}

	fmt.Print(renderHistory(runs))
	return 0
}

func runHistoryShow(args []string) int {
	// Support flags after the positional run id.
	var configPath string
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to configuration")

	var runID string
	var remainingArgs []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") && runID == "" {
			runID = arg
		} else {
			remainingArgs = append(remainingArgs, arg)
		}
	}

	if err := fs.Parse(remainingArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	if runID == "" {
		fmt.Fprintln(os.Stderr, "Usage: forkrun history show <run_id> [--config PATH]")
		return 1
	}

	cfg, err := loadConfigForTool(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history database: %v\n", err)
		return 1
	}
	defer db.Close()

	run, err := history.NewStore(db).Get(ctx, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load run: %v\n", err)
		return 1
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Run not found: %s\n", runID)
		return 1
	}

	fmt.Print(renderRun(run))
	return 0
}

func runConfigNoun(args []string) int {
	if len(args) < 1 || args[0] != "check" {
		fmt.Fprintln(os.Stderr, "Usage: forkrun config check [--config PATH]")
		return 1
	}

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file or directory")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := loadConfigForTool(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config check FAILED: %v\n", err)
		return 1
	}

	// The launcher artifact must resolve (and pass integrity checks) before a
	// run would get anywhere.
	if _, err := artifact.NewDirLocator(cfg.Launcher.LibDir).Locate("sonar-runner-impl"); err != nil {
		fmt.Fprintf(os.Stderr, "Config check FAILED: %v\n", err)
		return 1
	}

	fmt.Println("Config check PASSED.")
	return 0
}

func loadConfigForTool(configPath string) (*config.Config, error) {
	if configPath == "" {
		discovered, err := config.DiscoverConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = discovered
	}
	return config.Load(configPath)
}
