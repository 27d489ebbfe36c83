package record

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sgf_studio/internal/domain/sgf"
	errs "sgf_studio/internal/errors"
	"sgf_studio/internal/usecase/codec"
	"sgf_studio/internal/usecase/editor"
)

const (
	cmdAddMove         = "add_move"
	cmdSetProperty     = "set_property"
	cmdRemoveProperty  = "remove_property"
	cmdDeleteNode      = "delete_node"
	cmdAppendVariation = "append_variation"
	cmdNext            = "next"
	cmdPrev            = "prev"
	cmdBranch          = "branch"
	cmdLoad            = "load"
	cmdQuit            = "quit"
)

var identPattern = regexp.MustCompile(`^[A-Z]+$`)

type CreateRecordRequest struct {
	SGF string `json:"sgf"`
}

type CreateRecordResponse struct {
	Key string `json:"key"`
}

// CommandRequest is one editor command as sent by HTTP and websocket clients.
type CommandRequest struct {
	Command string   `json:"command"`
	Ident   string   `json:"ident,omitempty"`
	Values  []string `json:"values,omitempty"`
	Index   int      `json:"index,omitempty"`
	SGF     string   `json:"sgf,omitempty"`
}

func (req *CommandRequest) Validate() error {
	withProperty := req.Command == cmdAddMove || req.Command == cmdSetProperty
	return validation.ValidateStruct(req,
		validation.Field(&req.Command,
			validation.Required,
			validation.In(cmdAddMove, cmdSetProperty, cmdRemoveProperty, cmdDeleteNode,
				cmdAppendVariation, cmdNext, cmdPrev, cmdBranch, cmdLoad, cmdQuit),
		),
		validation.Field(&req.Ident,
			validation.When(withProperty || req.Command == cmdRemoveProperty, validation.Required),
			validation.Match(identPattern).Error("identifier must be upper case letters"),
		),
		validation.Field(&req.Values, validation.When(withProperty, validation.Required)),
		validation.Field(&req.Index, validation.Min(0)),
		validation.Field(&req.SGF, validation.When(req.Command == cmdLoad, validation.Required)),
	)
}

// ToCommand validates the request and builds the editor command. A quit
// request yields editor.ErrQuit.
func (req *CommandRequest) ToCommand() (editor.Command, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCommand, err)
	}

	switch req.Command {
	case cmdAddMove, cmdSetProperty:
		prop, err := sgf.DecodeProperty(req.Ident, escapeValues(req.Values))
		if err != nil {
			return nil, err
		}
		if req.Command == cmdAddMove {
			return editor.AddMove{Property: prop}, nil
		}
		return editor.SetProperty{Property: prop}, nil
	case cmdRemoveProperty:
		return editor.RemoveProperty{Ident: req.Ident}, nil
	case cmdDeleteNode:
		return editor.DeleteCurrentNode{}, nil
	case cmdAppendVariation:
		return editor.AppendVariation{}, nil
	case cmdNext:
		return editor.NavigateNext{}, nil
	case cmdPrev:
		return editor.NavigatePrev{}, nil
	case cmdBranch:
		return editor.NavigateBranch{Index: req.Index}, nil
	case cmdLoad:
		tree, err := codec.Parse(req.SGF)
		if err != nil {
			return nil, err
		}
		return editor.Load{Tree: tree}, nil
	}
	return nil, editor.ErrQuit
}

// escapeValues turns client values, which are plain text, into bracket text.
func escapeValues(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = sgf.EscapeText(v)
	}
	return out
}

// PlayRequest asks for a legality-checked move. An empty color means the side to play.
type PlayRequest struct {
	Color string `json:"color,omitempty"`
	Point string `json:"point"`
}

func (req *PlayRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Color, validation.In("B", "W")),
		validation.Field(&req.Point, validation.Required, validation.Length(2, 2)),
	)
}

func (req *PlayRequest) Decode() (sgf.Color, sgf.Coord, error) {
	if err := req.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", errs.ErrInvalidCommand, err)
	}
	at, err := sgf.ParseCoord(req.Point)
	if err != nil {
		return 0, 0, err
	}
	var color sgf.Color
	switch req.Color {
	case "B":
		color = sgf.Black
	case "W":
		color = sgf.White
	}
	return color, at, nil
}
