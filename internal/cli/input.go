// Package cli handles interactive input for trying rule changes by hand
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Cleaner is the part of the pipeline the CLI drives.
type Cleaner interface {
	Clean(raw []string) []string
	CleanOne(raw string) (string, bool)
}

var (
	keptStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	droppedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
)

// InputHandler reads ingredient lists from a reader and prints the cleaned
// result. A line is one menu item with ingredients separated by ";".
// A line starting with "?" traces a single ingredient instead.
type InputHandler struct {
	cleaner      Cleaner
	in           io.Reader
	out          io.Writer
	requestCount int
}

// NewInputHandler creates a handler on stdin/stdout
func NewInputHandler(cleaner Cleaner) *InputHandler {
	return NewInputHandlerWithIO(cleaner, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO is NewInputHandler with explicit streams.
func NewInputHandlerWithIO(cleaner Cleaner, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{cleaner: cleaner, in: in, out: out}
}

// Start runs the loop until the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "menuclean CLI")
	fmt.Fprintln(h.out, "enter ingredients separated by ';' ('?' to trace one, Ctrl+D to exit):")

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(h.out)
				return nil
			}
			return err
		}
	}
}

// Requests returns how many lines were processed.
func (h *InputHandler) Requests() int {
	return h.requestCount
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	if rest, ok := strings.CutPrefix(line, "?"); ok {
		h.trace(strings.TrimSpace(rest))
		return
	}

	raw := SplitLine(line)
	start := time.Now()
	cleaned := h.cleaner.Clean(raw)
	log.Debugf("Took [ %v ] for %d ingredients", time.Since(start), len(raw))

	if len(cleaned) == 0 {
		fmt.Fprintf(h.out, "nothing left of %d ingredients\n", len(raw))
		return
	}
	fmt.Fprintf(h.out, "%d -> %d ingredients:\n", len(raw), len(cleaned))
	for i, s := range cleaned {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, keptStyle.Render(s))
	}
}

func (h *InputHandler) trace(raw string) {
	if out, ok := h.cleaner.CleanOne(raw); ok {
		fmt.Fprintf(h.out, "%q -> %s\n", raw, keptStyle.Render(out))
		return
	}
	fmt.Fprintf(h.out, "%q -> %s\n", raw, droppedStyle.Render("dropped"))
}

// SplitLine breaks a ";"-separated line into raw ingredient strings.
// Empty pieces are skipped.
func SplitLine(line string) []string {
	parts := strings.Split(line, ";")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
