package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"advent/internal/answers"
	"advent/internal/client"
	"advent/internal/config"
	"advent/internal/errs"
	"advent/internal/gotool"
	"advent/internal/history"
	"advent/internal/locate"
	"advent/internal/logging"
	"advent/internal/orchestrate"
	"advent/internal/progress"
	"advent/internal/puzzle"
	"advent/internal/scaffold"
	"advent/internal/specrun"
	"advent/internal/submit"
	"advent/internal/vcs"
	"advent/internal/watch"
)

var (
	// Global flags
	verbose bool
	repo    string

	// Run flags
	specOnly  bool
	realPart1 bool
	realPart2 bool

	// Logger
	logger *zap.Logger
	runID  string
)

// rootCmd represents the base command. Running it without a subcommand is
// the same as `advent run`.
var rootCmd = &cobra.Command{
	Use:   "advent",
	Short: "advent - Advent of Code daily workflow",
	Long: `advent automates the daily Advent of Code loop inside your solutions
repository: it works out which puzzle you are on, runs its spec suite,
conditionally runs the solution against real input, and submits the
answer - unlocking part two when part one is confirmed correct.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		runID = uuid.NewString()

		if repo == "" {
			repo, _ = os.Getwd()
		}
		repo, err = filepath.Abs(repo)
		if err != nil {
			return fmt.Errorf("failed to resolve repository path: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPuzzle,
}

// runCmd is the explicit form of the default command.
var runCmd = &cobra.Command{
	Use:   "run [year] [day]",
	Short: "Run the current puzzle's specs, solution, and submission flow",
	Long: `Resolves the target puzzle (explicit year/day, untracked work in
progress, or the most recently committed puzzle), runs its spec suite,
and - once specs pass - runs the solution against real input and offers
to submit the answer.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPuzzle,
}

// bootstrapCmd starts the next puzzle.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap [year] [day]",
	Short: "Scaffold the next puzzle and fetch its instructions and input",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runBootstrap,
}

// progressCmd prints the completion report.
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completion statistics across all years",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

// commitCmd commits the current puzzle's directory.
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit the current puzzle's directory",
	Args:  cobra.NoArgs,
	RunE:  runCommit,
}

// watchCmd re-runs specs on save.
var watchCmd = &cobra.Command{
	Use:   "watch [year] [day]",
	Short: "Re-run the spec suite whenever the puzzle's files change",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&repo, "repo", "C", "", "Solutions repository root (default: current directory)")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().BoolVar(&specOnly, "spec", false, "Run the spec suite only")
		cmd.Flags().BoolVar(&realPart1, "real-part-1", false, "Force running part one against real input")
		cmd.Flags().BoolVar(&realPart2, "real-part-2", false, "Force running part two against real input")
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if msg, handled := errs.Handled(err); handled {
			fmt.Fprintln(os.Stderr, msg)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// setup loads config, initializes file logging, and builds the locator.
func setup() (*config.Config, *locate.Locator, error) {
	cfg, err := config.Load(repo)
	if err != nil {
		return nil, nil, err
	}
	if err := logging.Initialize(repo, cfg.Logging.DebugMode, cfg.Logging.Level); err != nil {
		return nil, nil, err
	}
	logging.Boot("run %s starting in %s", runID, repo)

	locator := &locate.Locator{
		Repo:     repo,
		VC:       vcs.NewGit(repo),
		Prompter: locate.NewTerminalPrompter(),
	}
	return cfg, locator, nil
}

func hints(args []string) (yearHint, dayHint string) {
	if len(args) > 0 {
		yearHint = args[0]
	}
	if len(args) > 1 {
		dayHint = args[1]
	}
	return yearHint, dayHint
}

// signalContext cancels on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// runPuzzle is the full locate -> spec -> run -> submit pipeline.
func runPuzzle(cmd *cobra.Command, args []string) error {
	flags := orchestrate.Flags{SpecOnly: specOnly, ForcePartOne: realPart1, ForcePartTwo: realPart2}
	if err := flags.Validate(); err != nil {
		return err
	}

	cfg, locator, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	yearHint, dayHint := hints(args)
	id, err := locator.Resolve(yearHint, dayHint, true)
	if err != nil {
		return err
	}
	logger.Info("puzzle resolved", zap.Int("year", id.Year), zap.Int("day", id.Day), zap.String("run_id", runID))

	if err := requireSessionIfUncached(cfg, repo, id); err != nil {
		return err
	}
	aoc := client.New(cfg.BaseURL, cfg.Session, repo)

	instructions, err := aoc.FetchInstructions(ctx, id, false)
	if err != nil {
		return err
	}
	state := answers.Load(instructions)
	logger.Debug("answer state loaded",
		zap.Bool("part_one", state.HasOne()), zap.Bool("part_two", state.HasTwo()))

	orch := &orchestrate.Orchestrator{
		Specs:    specrun.NewRunner(gotool.NewEngine(repo)),
		Solution: gotool.NewRunner(repo),
		Input:    &inputGate{cfg: cfg, repo: repo, next: aoc},
	}
	result, err := orch.Orchestrate(ctx, id, flags, state)
	if err != nil {
		return err
	}

	part, answer, ok := submit.ChoosePart(result.AnswerOne, result.AnswerTwo, state)
	if !ok {
		return nil
	}

	journal, err := history.Open(repo)
	if err != nil {
		logger.Warn("submission journal unavailable", zap.Error(err))
		journal = nil
	}
	defer journal.Close()

	coord := &submit.Coordinator{
		Grader:   aoc,
		Fetcher:  aoc,
		Prompter: locate.NewTerminalPrompter(),
		Journal:  journal,
		Repo:     repo,
		RunID:    runID,
		Render:   client.RenderInstructions,
	}
	_, err = coord.SubmitIfConfirmed(ctx, id, part, answer, state)
	return err
}

// requireSessionIfUncached demands a session token only when the
// instructions fetch is actually coming, i.e. they are not cached yet.
// The input fetch guards itself via inputGate, because whether it happens
// at all depends on the part-selection decision made later.
func requireSessionIfUncached(cfg *config.Config, repo string, id puzzle.ID) error {
	if cfg.Session != "" {
		return nil
	}
	if _, err := os.Stat(filepath.Join(repo, filepath.FromSlash(id.InstructionsPath()))); err != nil {
		_, err := cfg.RequireSession()
		return err
	}
	return nil
}

// inputGate fronts the real input fetcher and raises the session
// requirement only when the input is uncached at the moment the
// orchestrator asks for it. Runs that select no parts never get here.
type inputGate struct {
	cfg  *config.Config
	repo string
	next orchestrate.InputFetcher
}

func (g *inputGate) FetchInput(ctx context.Context, id puzzle.ID) (string, error) {
	if _, err := os.Stat(filepath.Join(g.repo, filepath.FromSlash(id.InputPath()))); err != nil {
		if _, err := g.cfg.RequireSession(); err != nil {
			return "", err
		}
	}
	return g.next.FetchInput(ctx, id)
}

// runBootstrap scaffolds the next puzzle and fetches its content.
func runBootstrap(cmd *cobra.Command, args []string) error {
	cfg, locator, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	yearHint, dayHint := hints(args)
	id, err := locator.Resolve(yearHint, dayHint, false)
	if err != nil {
		return err
	}
	logger.Info("bootstrapping puzzle", zap.Int("year", id.Year), zap.Int("day", id.Day))

	if err := bootstrapPuzzle(ctx, cfg, id); err != nil {
		return err
	}
	fmt.Printf("Bootstrapped %s.\n", id.Dir())
	return nil
}

func bootstrapPuzzle(ctx context.Context, cfg *config.Config, id puzzle.ID) error {
	if _, err := cfg.RequireSession(); err != nil {
		return err
	}
	if err := scaffold.Create(repo, id); err != nil {
		return err
	}

	aoc := client.New(cfg.BaseURL, cfg.Session, repo)
	instructions, err := aoc.FetchInstructions(ctx, id, false)
	if err != nil {
		return err
	}
	if _, err := aoc.FetchInput(ctx, id); err != nil {
		return err
	}
	fmt.Println(client.RenderInstructions(instructions))

	if cfg.Editor != "" {
		openEditor(cfg.Editor, filepath.Join(repo, filepath.FromSlash(id.SolutionPath())))
	}
	return nil
}

// openEditor opens path in the configured editor. Best effort: a missing
// or failing editor never fails the bootstrap.
func openEditor(editor, path string) {
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		logger.Warn("editor failed", zap.String("editor", editor), zap.Error(err))
	}
}

// runProgress prints the completion report.
func runProgress(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(); err != nil {
		return err
	}
	reports, err := progress.Scan(repo)
	if err != nil {
		return err
	}
	fmt.Print(progress.Render(reports))
	return nil
}

// runCommit commits the current puzzle's directory.
func runCommit(cmd *cobra.Command, args []string) error {
	_, locator, err := setup()
	if err != nil {
		return err
	}
	id, err := locator.Resolve("", "", true)
	if err != nil {
		return err
	}

	git := vcs.NewGit(repo)
	message := fmt.Sprintf("Solve %d day %d", id.Year, id.Day)
	if err := git.Commit([]string{id.Dir()}, message); err != nil {
		return err
	}
	fmt.Printf("Committed %s: %s\n", id.Dir(), message)
	return nil
}

// runWatch re-runs specs on save until interrupted.
func runWatch(cmd *cobra.Command, args []string) error {
	_, locator, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	yearHint, dayHint := hints(args)
	id, err := locator.Resolve(yearHint, dayHint, true)
	if err != nil {
		return err
	}

	watcher, err := watch.New(repo, id, specrun.NewRunner(gotool.NewEngine(repo)))
	if err != nil {
		return err
	}
	defer watcher.Stop()
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
