package app

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sokinpui/dogs/internal/bundle"
	"github.com/sokinpui/dogs/internal/cli"
	"github.com/sokinpui/dogs/internal/confirm"
	"github.com/sokinpui/dogs/internal/fs"
	"github.com/sokinpui/dogs/internal/model"
	"github.com/sokinpui/dogs/internal/nvim"
	"github.com/sokinpui/dogs/internal/reconcile"
	"github.com/sokinpui/dogs/internal/source"
	"github.com/sokinpui/dogs/internal/tui"
	"github.com/sokinpui/dogs/internal/ui"
)

// App orchestrates the entire application logic.
type App struct {
	cfg            *cli.Config
	pathResolver   *fs.PathResolver
	sourceProvider *source.SourceProvider

	// prompter and sink are chosen in Execute unless set beforehand.
	prompter confirm.Prompter
	sink     reconcile.FileSink
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	pathResolver, err := fs.NewPathResolver(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:            cfg,
		pathResolver:   pathResolver,
		sourceProvider: source.New(cfg.ReplyPath),
	}, nil
}

// Execute reads the reply bundle, parses it and reconciles the result with
// the output directory. Only an unreadable reply is returned as an error;
// per-file problems end up in the summary.
func (a *App) Execute() (summary model.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Reply from %s is empty. Nothing to process.", a.sourceProvider.Describe())
		return model.Summary{Message: "Nothing to do."}, nil
	}

	patchMode := a.cfg.ApplyDelta != ""
	res := bundle.Parse(content, bundle.Options{Patch: patchMode})
	reportIssues(res.Issues)
	if len(res.Actions) == 0 && len(res.Failed()) == 0 {
		ui.Warning("No file blocks found in the reply.")
		return model.Summary{Message: "Nothing to do."}, nil
	}

	if a.cfg.DryRun {
		ui.Header("--- Planned changes (dry run) ---")
		for _, line := range a.Plan(res.Actions) {
			ui.Path("%s", line)
		}
		return model.Summary{
			Failed:  res.Failed(),
			Message: fmt.Sprintf("Dry run: %d action(s) planned, nothing written.", len(res.Actions)),
		}, nil
	}

	var snapshot bundle.Snapshot
	if patchMode {
		snapshot = a.loadSnapshot()
	}

	sink := a.sink
	if sink == nil {
		sink = fs.Disk{}
		if a.cfg.Nvim {
			manager, err := nvim.New()
			if err != nil {
				return model.Summary{}, err
			}
			defer manager.Close()
			defer func() {
				if err := manager.Flush(); err != nil {
					ui.Error("%v", err)
				}
			}()
			sink = manager
		}
	}

	rec := &reconcile.Reconciler{
		Resolver: a.pathResolver,
		Sink:     sink,
		Prompter: a.choosePrompter(),
		Policy:   &confirm.Policy{AlwaysYes: a.cfg.Yes, AlwaysNo: a.cfg.No},
		Snapshot: snapshot,
	}
	summary = rec.Run(res.Actions)
	summary.Failed = append(res.Failed(), summary.Failed...)
	return summary, nil
}

func (a *App) loadSnapshot() bundle.Snapshot {
	snapshot, issues, err := bundle.LoadSnapshot(a.cfg.ApplyDelta)
	if err != nil {
		ui.Error("%v", err)
	}
	for _, issue := range issues {
		ui.Warning("reference: %s", issue)
	}
	return snapshot
}

// choosePrompter returns the interactive prompter when stdin is a terminal
// and prompts were not ruled out by flags.
func (a *App) choosePrompter() confirm.Prompter {
	if a.prompter != nil {
		return a.prompter
	}
	if a.cfg.Quiet || !source.IsInteractive(os.Stdin) {
		return confirm.Decline{}
	}
	return interactivePrompter(os.Stdin, os.Stderr)
}

// interactivePrompter runs the bubbletea prompt and falls back to plain line
// input when the terminal cannot host it.
func interactivePrompter(in io.Reader, out io.Writer) confirm.Prompter {
	lines := confirm.NewLinePrompter(in, out)
	lines.Styler = func(s string) string { return ui.Prompt("%s", s) }
	return &confirm.Fallback{
		Primary:   tui.Prompter{In: in, Out: out},
		Secondary: lines,
	}
}

// Plan describes what each action would do without touching the disk.
func (a *App) Plan(actions []bundle.Action) []string {
	lines := make([]string, 0, len(actions))
	for _, action := range actions {
		target, err := a.pathResolver.Resolve(action.FilePath())
		if err != nil {
			lines = append(lines, fmt.Sprintf("reject %q: %v", action.FilePath(), err))
			continue
		}
		state := "new"
		if fs.Exists(target) {
			state = "exists"
		}
		lines = append(lines, fmt.Sprintf("%s [%s]", bundle.Describe(action), state))
	}
	return lines
}

func reportIssues(issues []bundle.Issue) {
	for _, issue := range issues {
		if issue.Severity == bundle.Error {
			ui.Error("%s", issue)
			continue
		}
		ui.Warning("%s", issue)
	}
}
