package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/phrazzld/studytrack/internal/service"
	flag "github.com/spf13/pflag"
)

// App is the studytrack command line. One App serves one invocation.
type App struct {
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	clock   service.Clock
	version string
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock used for session, subscription and
// study timestamps.
func WithClock(clock service.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// WithVersion sets the version reported by the version command.
func WithVersion(version string) Option {
	return func(a *App) {
		a.version = version
	}
}

// New creates an App reading answers from in, writing command output to out
// and diagnostics to errOut.
func New(in io.Reader, out, errOut io.Writer, opts ...Option) *App {
	a := &App{
		in:      bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
		version: "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// commandFunc runs one subcommand with its remaining arguments.
type commandFunc func(app *application, ctx context.Context, args []string) error

var commands = map[string]commandFunc{
	"user":         (*application).runUser,
	"category":     (*application).runCategory,
	"course":       (*application).runCourse,
	"subscription": (*application).runSubscription,
	"study":        (*application).runStudy,
	"session":      (*application).runSession,
	"report":       (*application).runReport,
}

const usageText = `Usage: studytrack [global flags] <command> [flags] [args]

Commands:
  user          list users; --new or --delete EMAIL
  category      list categories; --new or --delete NAME
  course        list courses; --new [--category C] [--subscribe] or --delete NAME
  subscription  list your subscriptions; --new [--from D] [--until D] or --delete COURSE
  study         record a study session on COURSE; --add, --delete ID or --list
  session       show the active session; --login EMAIL or --logoff
  report        total study time per course
  migrate       run schema migrations: up, down, status or version
  version       print the version

Global flags:
`

// Run executes the command line args and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	err := a.run(ctx, args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	fmt.Fprintln(a.errOut, describe(err))
	return exitCode(err)
}

func (a *App) run(ctx context.Context, args []string) error {
	global := newFlagSet("studytrack", a.errOut)
	// Flags after the command name belong to the command.
	global.SetInterspersed(false)
	configPath := global.String("config", "", "path to a YAML config file")
	databaseURL := global.String("db", "", "database URL or SQLite file path")
	logLevel := global.String("log-level", "", "log level: debug, info, warn or error")
	printUsage := func(w io.Writer) {
		fmt.Fprint(w, usageText)
		global.SetOutput(w)
		global.PrintDefaults()
	}
	global.Usage = func() { printUsage(a.errOut) }

	if err := parseFlags(global, args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		printUsage(a.errOut)
		return usagef("missing command")
	}

	name, rest := global.Arg(0), global.Args()[1:]
	switch name {
	case "version":
		fmt.Fprintf(a.out, "studytrack %s\n", a.version)
		return nil
	case "help":
		printUsage(a.out)
		return nil
	}

	command, ok := commands[name]
	if !ok && name != "migrate" {
		return usagef("unknown command %q", name)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return &usageError{err: err}
	}
	if *databaseURL != "" {
		cfg.Database.URL = *databaseURL
	}
	if *logLevel != "" {
		if _, err := logger.ParseLevel(*logLevel); err != nil {
			return &usageError{err: err}
		}
		cfg.Log.Level = strings.ToLower(*logLevel)
	}

	log, err := logger.Setup(cfg.Log, a.errOut)
	if err != nil {
		return &usageError{err: err}
	}
	log = log.With(slog.String("invocation_id", uuid.NewString()))
	ctx = logger.WithContext(ctx, log)
	log.Debug("command started", slog.String("command", name))

	db, driver, err := sqldb.Open(ctx, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if name == "migrate" {
		return a.runMigrate(ctx, db, driver, rest)
	}

	if err := sqldb.EnsureSchema(ctx, db, driver, log); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	app, err := newApplication(cfg, log, db, driver, a.clock)
	if err != nil {
		return err
	}
	app.prompt = &prompter{in: a.in, out: a.out}
	app.out = a.out
	app.errOut = a.errOut
	app.clock = a.clock

	return command(app, ctx, rest)
}

// parseFlags parses args into fs, classifying bad flags as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{err: err}
	}
	return nil
}

func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}
