package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Policy is the run-wide confirmation state. It is owned by a single run and
// updated by the answers given to prompts.
type Policy struct {
	AlwaysYes bool
	AlwaysNo  bool
	Quit      bool
}

// Answer is the parsed reply to a confirmation prompt.
type Answer int

const (
	No Answer = iota
	Yes
	All
	SkipAll
	Quit
)

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case All:
		return "all"
	case SkipAll:
		return "skip"
	case Quit:
		return "quit"
	default:
		return "no"
	}
}

// Question is one confirmation request.
type Question struct {
	Text string
	// AllowSkipAll offers the "skip all" answer. Only overwrite prompts do.
	AllowSkipAll bool
}

// Choices returns the hint shown next to the question, e.g. "[y/N/a/s/q]".
func (q Question) Choices() string {
	if q.AllowSkipAll {
		return "[y/N/a/s/q]"
	}
	return "[y/N/a/q]"
}

// ErrInvalidAnswer is returned by ParseAnswer for unknown tokens.
var ErrInvalidAnswer = errors.New("invalid answer")

// ParseAnswer maps a typed token to an answer. An empty token means No.
func ParseAnswer(token string, q Question) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "n", "no":
		return No, nil
	case "y", "yes":
		return Yes, nil
	case "a", "all":
		return All, nil
	case "q", "quit":
		return Quit, nil
	case "s", "skip":
		if q.AllowSkipAll {
			return SkipAll, nil
		}
	}
	return No, fmt.Errorf("%w %q", ErrInvalidAnswer, token)
}

// Prompter asks the user a question and returns the answer.
type Prompter interface {
	Ask(q Question) (Answer, error)
}

// Decline answers No to everything. It is used when there is no attached
// input.
type Decline struct{}

func (Decline) Ask(Question) (Answer, error) { return No, nil }

// LinePrompter reads one token per line from In. Invalid tokens re-prompt;
// end of input answers No.
type LinePrompter struct {
	In     *bufio.Reader
	Out    io.Writer
	Styler func(string) string
}

// NewLinePrompter reads answers from r and writes prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{In: bufio.NewReader(r), Out: w}
}

func (p *LinePrompter) Ask(q Question) (Answer, error) {
	prompt := fmt.Sprintf("%s %s ", q.Text, q.Choices())
	if p.Styler != nil {
		prompt = p.Styler(prompt)
	}
	for {
		fmt.Fprint(p.Out, prompt)
		line, err := p.In.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.Out)
				return No, nil
			}
			return No, err
		}
		answer, perr := ParseAnswer(line, q)
		if perr == nil {
			return answer, nil
		}
		fmt.Fprintf(p.Out, "Please answer one of %s.\n", q.Choices())
		if err != nil {
			return No, nil
		}
	}
}

// Fallback asks through Primary and switches to Secondary for good once
// Primary fails, e.g. when the terminal cannot run the interactive prompt.
type Fallback struct {
	Primary   Prompter
	Secondary Prompter
	failed    bool
}

func (f *Fallback) Ask(q Question) (Answer, error) {
	if !f.failed {
		answer, err := f.Primary.Ask(q)
		if err == nil {
			return answer, nil
		}
		f.failed = true
	}
	return f.Secondary.Ask(q)
}

// Confirm asks q through p and applies the answer to the policy. It reports
// whether the action should go ahead. A prompter error counts as a decline.
func (pol *Policy) Confirm(p Prompter, q Question) bool {
	answer, err := p.Ask(q)
	if err != nil {
		return false
	}
	switch answer {
	case Yes:
		return true
	case All:
		pol.AlwaysYes = true
		return true
	case SkipAll:
		pol.AlwaysNo = true
		return false
	case Quit:
		pol.Quit = true
		return false
	default:
		return false
	}
}
