package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			args: nil,
			want: Config{OutputDir: "."},
		},
		{
			name: "positional arguments",
			args: []string{"reply.txt", "out"},
			want: Config{ReplyPath: "reply.txt", OutputDir: "out"},
		},
		{
			name: "stdin and delta",
			args: []string{"-d", "ref.bundle", "-", "out"},
			want: Config{ReplyPath: "-", OutputDir: "out", ApplyDelta: "ref.bundle"},
		},
		{
			name: "long flags",
			args: []string{"--apply-delta=ref", "--yes", "--nvim", "--dry-run", "r"},
			want: Config{ReplyPath: "r", OutputDir: ".", ApplyDelta: "ref", Yes: true, Nvim: true, DryRun: true},
		},
		{
			name: "quiet implies no",
			args: []string{"-q"},
			want: Config{OutputDir: ".", Quiet: true, No: true},
		},
		{
			name: "quiet with yes",
			args: []string{"-qy"},
			want: Config{OutputDir: ".", Quiet: true, Yes: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("ParseFlags() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := map[string][]string{
		"yes and no":    {"-y", "-n"},
		"too many args": {"a", "b", "c"},
		"unknown flag":  {"--bogus"},
		"missing value": {"-d"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseFlags(args, &bytes.Buffer{}); err == nil {
				t.Errorf("ParseFlags(%v) succeeded, want error", args)
			}
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseFlags([]string{"-h"}, &out)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("err = %v, want ErrHelp", err)
	}
	if !strings.Contains(out.String(), "Usage: dogs") {
		t.Errorf("usage not printed:\n%s", out.String())
	}
}
