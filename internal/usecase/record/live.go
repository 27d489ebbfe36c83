package record

import (
	"context"

	"sgf_studio/internal/domain/record"
	"sgf_studio/internal/usecase/editor"
)

// LiveAdapter is a client of a live session. It renders snapshots rather than
// the editor itself, so slow clients never hold the session.
type LiveAdapter interface {
	Render(state *record.State) error
	NextCommand() (editor.Command, error)
}

// Live drives the session for key with editor.Run. Commands are read without
// holding the session; each one is applied, saved and snapshotted under the
// lock, and the snapshot is rendered after it is released.
func (u *RecordUseCase) Live(ctx context.Context, key string, adapter LiveAdapter) error {
	s, err := u.session(ctx, key)
	if err != nil {
		return err
	}
	u.log.Infow("live session started", "key", key)
	err = editor.Run(s.editor, &lockedAdapter{ctx: ctx, u: u, key: key, s: s, inner: adapter})
	u.log.Infow("live session finished", "key", key, "error", err)
	return err
}

// lockedAdapter takes the session lock once a command has been read, so the
// Apply inside editor.Run happens under it, and releases it before rendering.
type lockedAdapter struct {
	ctx   context.Context
	u     *RecordUseCase
	key   string
	s     *session
	inner LiveAdapter
	held  bool
}

func (a *lockedAdapter) NextCommand() (editor.Command, error) {
	cmd, err := a.inner.NextCommand()
	if err != nil {
		return nil, err
	}
	a.s.mu.Lock()
	a.held = true
	return cmd, nil
}

func (a *lockedAdapter) Render(e *editor.Editor) error {
	state, err := a.snapshot(e)
	if err != nil {
		return err
	}
	return a.inner.Render(state)
}

func (a *lockedAdapter) snapshot(e *editor.Editor) (*record.State, error) {
	if !a.held {
		a.s.mu.Lock()
	}
	defer func() {
		a.held = false
		a.s.mu.Unlock()
	}()

	if a.held {
		if err := a.u.persist(a.ctx, a.key, e); err != nil {
			return nil, err
		}
	}
	return StateOf(a.key, e), nil
}
