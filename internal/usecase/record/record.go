package record

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"sgf_studio/internal/bootstrap"
	"sgf_studio/internal/domain/record"
	"sgf_studio/internal/domain/sgf"
	errs "sgf_studio/internal/errors"
	"sgf_studio/internal/usecase/board"
	"sgf_studio/internal/usecase/codec"
	"sgf_studio/internal/usecase/editor"
)

type RecordStore interface {
	GenerateRecordKey(ctx context.Context) string
	SaveRecordText(ctx context.Context, key string, sgfText string) error
	LoadRecordText(ctx context.Context, key string) (string, error)
	PutRecordSummary(ctx context.Context, summary record.Summary) error
	GetRecordSummary(ctx context.Context, key string) (record.Summary, error)
	SearchRecordsByPlayer(ctx context.Context, name string, pageNum int) (*record.SearchResponse, error)
}

// session is one open record. mu serialises every read and write of editor.
type session struct {
	mu     sync.Mutex
	editor *editor.Editor
}

type RecordUseCase struct {
	store RecordStore
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRecordUseCase(store RecordStore, cfg bootstrap.Config, log *zap.SugaredLogger) *RecordUseCase {
	return &RecordUseCase{
		store:    store,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// CreateRecord stores a new record and opens it. Blank text starts a fresh game.
func (u *RecordUseCase) CreateRecord(ctx context.Context, text string) (string, error) {
	var tree *sgf.GameTree
	if strings.TrimSpace(text) == "" {
		tree = NewGameTree(u.cfg, u.now())
	} else {
		parsed, err := codec.Parse(text)
		if err != nil {
			return "", err
		}
		tree = parsed
	}

	key := u.store.GenerateRecordKey(ctx)
	s := &session{editor: editor.New(tree)}
	if err := u.persist(ctx, key, s.editor); err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrCreateRecordFail, err)
	}

	u.mu.Lock()
	u.sessions[key] = s
	u.mu.Unlock()

	u.log.Infow("record created", "key", key, "nodes", tree.Len())
	return key, nil
}

// OpenRecord loads a stored record into a session, or reuses the open one.
func (u *RecordUseCase) OpenRecord(ctx context.Context, key string) (*record.State, error) {
	s, err := u.session(ctx, key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateOf(key, s.editor), nil
}

func (u *RecordUseCase) session(ctx context.Context, key string) (*session, error) {
	u.mu.Lock()
	s, ok := u.sessions[key]
	u.mu.Unlock()
	if ok {
		return s, nil
	}

	text, err := u.store.LoadRecordText(ctx, key)
	if err != nil {
		return nil, err
	}
	tree, err := codec.Parse(text)
	if err != nil {
		u.log.Errorw("stored record does not parse", "key", key, "error", err)
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if s, ok := u.sessions[key]; ok {
		return s, nil
	}
	s = &session{editor: editor.New(tree)}
	u.sessions[key] = s
	u.log.Infow("record opened", "key", key)
	return s, nil
}

// Apply runs one editor command against the record and saves the result.
func (u *RecordUseCase) Apply(ctx context.Context, key string, cmd editor.Command) (*record.State, error) {
	s, err := u.session(ctx, key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editor.Apply(cmd)
	if err := u.persist(ctx, key, s.editor); err != nil {
		return nil, err
	}
	return StateOf(key, s.editor), nil
}

// Play adds a move after checking it against the current position. A zero
// color means whoever is next to play.
func (u *RecordUseCase) Play(ctx context.Context, key string, color sgf.Color, at sgf.Coord) (*record.State, error) {
	s, err := u.session(ctx, key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.editor.Board()
	if color == 0 {
		color = b.NextColor()
	}
	if err := board.CheckMove(b, color, at); err != nil {
		return nil, err
	}

	s.editor.Apply(editor.AddMove{Property: sgf.Move{Color: color, At: at}})
	if err := u.persist(ctx, key, s.editor); err != nil {
		return nil, err
	}
	return StateOf(key, s.editor), nil
}

func (u *RecordUseCase) State(ctx context.Context, key string) (*record.State, error) {
	return u.OpenRecord(ctx, key)
}

// Export returns the record as text.
func (u *RecordUseCase) Export(ctx context.Context, key string) (string, error) {
	s, err := u.session(ctx, key)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.Serialize(s.editor.Tree()), nil
}

// Summary returns the indexed header of a stored record.
func (u *RecordUseCase) Summary(ctx context.Context, key string) (record.Summary, error) {
	return u.store.GetRecordSummary(ctx, key)
}

// Search lists summaries by player name; an empty name lists every record.
func (u *RecordUseCase) Search(ctx context.Context, player string, pageNum int) (*record.SearchResponse, error) {
	return u.store.SearchRecordsByPlayer(ctx, player, pageNum)
}

// CloseRecord forgets the in-memory session. The stored text stays.
func (u *RecordUseCase) CloseRecord(key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[key]; !ok {
		return errs.ErrSessionNotFound
	}
	delete(u.sessions, key)
	u.log.Infow("record closed", "key", key)
	return nil
}

// persist saves the text, then refreshes the search summary. The text is the
// source of truth, so a failed summary update is only logged.
func (u *RecordUseCase) persist(ctx context.Context, key string, ed *editor.Editor) error {
	if err := u.store.SaveRecordText(ctx, key, codec.Serialize(ed.Tree())); err != nil {
		return err
	}
	summary := Summarize(key, ed.Tree())
	summary.UpdatedAt = u.now()
	if err := u.store.PutRecordSummary(ctx, summary); err != nil {
		u.log.Warnw("record summary not updated", "key", key, "error", err)
	}
	return nil
}
