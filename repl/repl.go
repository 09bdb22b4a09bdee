package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

const (
	prompt     = "cps> "
	morePrompt = "...  "
)

// HistoryFile is where line history is kept, or "" if there is no home
// directory.
func HistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cpsc_history")
}

// Run reads lines until EOF, printing each converted expression. Ctrl-C
// drops a half-typed expression, or exits when there is none.
func Run(s *Session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: HistoryFile(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	return loop(s, rl.Readline, rl.SetPrompt, rl.Stdout(), rl.Stderr())
}

func loop(s *Session, readLine func() (string, error), setPrompt func(string), stdout, stderr io.Writer) error {
	for {
		line, err := readLine()
		if errors.Is(err, readline.ErrInterrupt) && s.Pending() {
			s.Reset()
			setPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" && !s.Pending() {
			continue
		}
		out, pending, err := s.Feed(line)
		for _, e := range out {
			fmt.Fprintln(stdout, e)
		}
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		if pending {
			setPrompt(morePrompt)
		} else {
			setPrompt(prompt)
		}
	}
}
