package reconcile

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/dogs/internal/bundle"
	"github.com/sokinpui/dogs/internal/confirm"
	"github.com/sokinpui/dogs/internal/delta"
	"github.com/sokinpui/dogs/internal/fs"
	"github.com/sokinpui/dogs/internal/model"
	"github.com/sokinpui/dogs/internal/ui"
)

// FileSink performs the file effects of a run.
type FileSink interface {
	WriteFile(path string, data []byte) error
	Remove(path string) error
}

// Reconciler turns parsed actions into file effects under a confirmation
// policy.
type Reconciler struct {
	Resolver *fs.PathResolver
	Sink     FileSink
	Prompter confirm.Prompter
	Policy   *confirm.Policy
	// Snapshot is the patch base. It is nil when no reference bundle was
	// given.
	Snapshot bundle.Snapshot
}

// Run processes actions in order. It is not transactional: effects already
// applied stay applied when a later action fails or the user quits.
func (r *Reconciler) Run(actions []bundle.Action) model.Summary {
	var sum model.Summary
	for i, action := range actions {
		if r.Policy.Quit {
			for _, rest := range actions[i:] {
				sum.Skipped = append(sum.Skipped, rest.FilePath())
			}
			ui.Warning("Quit requested; %d remaining file(s) left untouched.", len(actions)-i)
			break
		}

		target, err := r.Resolver.Resolve(action.FilePath())
		if err != nil {
			ui.Error("Rejected %q: %v", action.FilePath(), err)
			sum.Failed = append(sum.Failed, action.FilePath())
			continue
		}
		rel := r.Resolver.Relative(target)

		switch a := action.(type) {
		case bundle.DeleteAction:
			r.delete(target, rel, &sum)
		case bundle.WriteAction:
			r.write(target, rel, a.Content, a.Binary, &sum)
		case bundle.DeltaAction:
			r.patch(a, target, rel, &sum)
		default:
			ui.Error("Unsupported action for %s: %T", rel, action)
			sum.Failed = append(sum.Failed, rel)
		}
	}
	return sum
}

func (r *Reconciler) patch(a bundle.DeltaAction, target, rel string, sum *model.Summary) {
	if r.Snapshot == nil {
		ui.Error("Cannot patch %s: no reference bundle was given (use --apply-delta).", rel)
		sum.Failed = append(sum.Failed, rel)
		return
	}
	original, ok := r.Snapshot.Lines(a.Path)
	if !ok {
		ui.Error("Cannot patch %s: file not found in the reference bundle.", rel)
		sum.Failed = append(sum.Failed, rel)
		return
	}

	outcome, skipped := delta.Apply(original, a.Commands)
	for _, s := range skipped {
		ui.Warning("%s: %s", rel, s)
	}
	if outcome.Delete {
		r.delete(target, rel, sum)
		return
	}
	r.write(target, rel, []byte(delta.JoinLines(outcome.Lines)), false, sum)
}

func (r *Reconciler) delete(target, rel string, sum *model.Summary) {
	if !fs.Exists(target) {
		ui.Info("%s does not exist; nothing to delete.", rel)
		return
	}
	if !r.Policy.AlwaysYes {
		q := confirm.Question{Text: fmt.Sprintf("Delete %s?", rel)}
		if !r.Policy.Confirm(r.Prompter, q) {
			ui.Info("Skipped deleting %s.", rel)
			sum.Skipped = append(sum.Skipped, rel)
			return
		}
	}
	if err := r.Sink.Remove(target); err != nil {
		ui.Error("%v", err)
		sum.Failed = append(sum.Failed, rel)
		return
	}
	ui.Success("Deleted %s", rel)
	sum.Deleted = append(sum.Deleted, rel)
}

func (r *Reconciler) write(target, rel string, data []byte, binary bool, sum *model.Summary) {
	current, exists, err := fs.ReadExisting(target)
	if err != nil {
		ui.Error("Cannot read %s: %v", rel, err)
		sum.Failed = append(sum.Failed, rel)
		return
	}

	if !exists {
		if err := r.Sink.WriteFile(target, data); err != nil {
			ui.Error("%v", err)
			sum.Failed = append(sum.Failed, rel)
			return
		}
		ui.Success("Created %s", rel)
		sum.Created = append(sum.Created, rel)
		return
	}

	if !r.confirmOverwrite(rel, current, data, binary) {
		ui.Info("Skipped %s.", rel)
		sum.Skipped = append(sum.Skipped, rel)
		return
	}
	if err := r.Sink.WriteFile(target, data); err != nil {
		ui.Error("%v", err)
		sum.Failed = append(sum.Failed, rel)
		return
	}
	ui.Success("Updated %s", rel)
	sum.Modified = append(sum.Modified, rel)
}

func (r *Reconciler) confirmOverwrite(rel string, current, data []byte, binary bool) bool {
	switch {
	case r.Policy.AlwaysYes:
		return true
	case r.Policy.AlwaysNo:
		return false
	}

	q := confirm.Question{AllowSkipAll: true}
	if bytes.Equal(current, data) {
		q.Text = fmt.Sprintf("%s is identical, overwrite anyway?", rel)
	} else {
		ui.Header("--- Changes for %s ---", rel)
		if binary || isBinary(current) || isBinary(data) {
			ui.Info("Binary content differs (%d -> %d bytes).", len(current), len(data))
		} else {
			ui.Diff(UnifiedDiff(rel, current, data))
		}
		q.Text = fmt.Sprintf("Overwrite %s?", rel)
	}
	return r.Policy.Confirm(r.Prompter, q)
}

// UnifiedDiff renders a line diff between the current and the new content.
func UnifiedDiff(name string, current, next []byte) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(next)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("(diff unavailable: %v)\n", err)
	}
	return text
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}
