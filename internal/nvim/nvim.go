package nvim

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/dogs/internal/delta"
	"github.com/sokinpui/dogs/internal/fs"
)

// Manager writes text files through Neovim buffers so that every change
// lands in the editor's undo history. Binary files and removals go straight
// to disk.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
	disk          fs.Disk
	dirty         bool
}

// New connects to the Neovim instance named by $NVIM or
// $NVIM_LISTEN_ADDRESS, or starts a temporary headless one.
func New() (*Manager, error) {
	for _, env := range []string{"NVIM", "NVIM_LISTEN_ADDRESS"} {
		if addr := os.Getenv(env); addr != "" {
			if v, err := nvim.Dial(addr); err == nil {
				return &Manager{nvim: v}, nil
			}
		}
	}

	tmpDir, err := os.MkdirTemp("", "dogs-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	m := &Manager{
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
	}
	if err := v.Command("set noswapfile"); err != nil {
		m.Close()
		return nil, fmt.Errorf("failed to configure headless nvim: %w", err)
	}
	return m, nil
}

// WriteFile loads path into a buffer and replaces its lines with data.
// Buffers are saved by Flush.
func (m *Manager) WriteFile(path string, data []byte) error {
	if !isText(data) {
		return m.disk.WriteFile(path, data)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", path, err)
	}

	lines := delta.SplitLines(string(data))
	byteLines := make([][]byte, len(lines))
	for i, s := range lines {
		byteLines[i] = []byte(s)
	}

	b := m.nvim.NewBatch()
	b.Command("edit! " + escapePath(path))
	b.SetBufferLines(0, 0, -1, true, byteLines)
	if !strings.HasSuffix(string(data), "\n") && len(data) > 0 {
		b.Command("setlocal nofixendofline noendofline")
	}
	if err := b.Execute(); err != nil {
		return fmt.Errorf("could not update buffer for %s: %w", path, err)
	}
	m.dirty = true
	return nil
}

// Remove deletes path on disk and wipes any buffer that showed it.
func (m *Manager) Remove(path string) error {
	if err := m.disk.Remove(path); err != nil {
		return err
	}
	var bufnr int
	if err := m.nvim.Call("bufnr", &bufnr, path); err == nil && bufnr > 0 {
		m.nvim.Command(fmt.Sprintf("bwipeout! %d", bufnr))
	}
	return nil
}

// Flush writes every modified buffer to disk.
func (m *Manager) Flush() error {
	if !m.dirty {
		return nil
	}
	if err := m.nvim.Command("wa!"); err != nil {
		return fmt.Errorf("could not save buffers: %w", err)
	}
	m.dirty = false
	return nil
}

// Close disconnects from Neovim and stops the instance if it was started
// by New.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err == nil {
			m.cmd.Wait()
			os.RemoveAll(filepath.Dir(m.socketPath))
		}
	}
}

func isText(data []byte) bool {
	return utf8.Valid(data) && !strings.ContainsRune(string(data), 0)
}

// escapePath quotes characters that :edit would otherwise expand.
func escapePath(path string) string {
	var sb strings.Builder
	for _, r := range path {
		switch r {
		case ' ', '\\', '%', '#', '|', '"':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
