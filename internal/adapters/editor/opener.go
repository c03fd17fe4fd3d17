package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Fallbacks are tried in order when neither $VISUAL nor $EDITOR is set
var Fallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener using the process environment
func NewOpener() *Opener {
	return &Opener{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// OpenFile opens a file in the user's preferred editor and waits for it
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor, wired to
// the terminal. bubbletea's ExecProcess runs it while the TUI is suspended.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgv()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// editorArgv resolves the editor command. $VISUAL and $EDITOR may carry
// flags ("code --wait").
func (o *Opener) editorArgv() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(o.getenv(name)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range Fallbacks {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}
