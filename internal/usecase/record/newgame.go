package record

import (
	"time"

	"sgf_studio/internal/bootstrap"
	"sgf_studio/internal/domain/sgf"
)

// Application names this program in the AP property of new games.
const Application = "sgf_studio"

// NewGameTree builds a single empty game from the configured defaults. Board
// sizes outside 1..19 fall back to 19.
func NewGameTree(cfg bootstrap.Config, now time.Time) *sgf.GameTree {
	size := cfg.DefaultBoardSize
	if size < 1 || size > sgf.MaxBoardSize {
		size = sgf.MaxBoardSize
	}
	tree := &sgf.GameTree{}
	tree.AddRoot(
		sgf.GameTypeGo,
		sgf.FileFormat(4),
		sgf.Charset("UTF-8"),
		sgf.Application(Application),
		sgf.BoardSize(size),
		sgf.KomiFromPoints(cfg.DefaultKomi),
		sgf.Date(now.Format("2006-01-02")),
	)
	return tree
}
