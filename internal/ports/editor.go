package ports

import "os/exec"

// EditorOpener opens files, such as the config file, in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's editor and waits for it to exit.
	// $VISUAL and $EDITOR are honoured before common fallbacks.
	OpenFile(path string) error

	// Command returns the editor process without starting it, for hosts
	// that need to hand over the terminal (bubbletea's ExecProcess)
	Command(path string) (*exec.Cmd, error)
}
