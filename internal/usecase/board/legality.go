package board

import (
	"errors"
	"fmt"

	"sgf_studio/internal/domain/sgf"
	errs "sgf_studio/internal/errors"
)

var (
	ErrOffBoard = fmt.Errorf("%w: point is off the board", errs.ErrIllegalMove)
	ErrOccupied = fmt.Errorf("%w: intersection is occupied", errs.ErrIllegalMove)
	ErrKo       = fmt.Errorf("%w: ko", errs.ErrIllegalMove)
	ErrSuicide  = fmt.Errorf("%w: suicide", errs.ErrIllegalMove)
)

// CheckMove reports whether color may play at on b. Replay never calls this;
// it is for callers that build new moves. A pass is always legal.
func CheckMove(b Board, color sgf.Color, at sgf.Coord) error {
	if at.IsPass() {
		return nil
	}
	if !b.onBoard(at) {
		return ErrOffBoard
	}
	if b.At(at) != Empty {
		return ErrOccupied
	}
	if ko, ok := b.Ko(); ok && ko == at {
		return ErrKo
	}

	// b is a copy, so trying the move here leaves the caller's board alone.
	b.play(cellOf(color), at)
	if b.liberties(b.group(point{at.Col(), at.Row()})) == 0 {
		return ErrSuicide
	}
	return nil
}

// IsIllegal reports whether err came from CheckMove.
func IsIllegal(err error) bool {
	return errors.Is(err, errs.ErrIllegalMove)
}
