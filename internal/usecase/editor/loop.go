package editor

import "errors"

// ErrQuit is returned by Adapter.NextCommand when the user is done.
var ErrQuit = errors.New("quit")

// Adapter is a presentation layer driving an Editor: it shows the state and
// hands back the next command.
type Adapter interface {
	Render(e *Editor) error
	NextCommand() (Command, error)
}

// Run loops render, read, apply until the adapter quits or fails.
// A quit is not an error.
func Run(e *Editor, adapter Adapter) error {
	for {
		if err := adapter.Render(e); err != nil {
			return err
		}
		cmd, err := adapter.NextCommand()
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		e.Apply(cmd)
	}
}
