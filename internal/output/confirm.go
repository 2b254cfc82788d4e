package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// PromptConfirmer asks a y/N question on Out and reads the answer from In.
// Anything other than "y" or "yes" declines, including EOF.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements store.Confirmer.
func (p PromptConfirmer) Confirm(message string) bool {
	fmt.Fprintf(p.Out, "%s [y/N] ", message)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
