package editor

import "sgf_studio/internal/domain/sgf"

// Command is one of the edits an Editor understands.
type Command interface {
	isCommand()
}

type (
	// AddMove appends a child under the cursor and moves onto it.
	AddMove struct{ Property sgf.Property }
	// SetProperty replaces the first property with the same identifier, or appends.
	SetProperty struct{ Property sgf.Property }
	// RemoveProperty drops every property with this identifier.
	RemoveProperty struct{ Ident string }
	// DeleteCurrentNode steps back to the parent and unlinks the old node.
	DeleteCurrentNode struct{}
	// AppendVariation adds an empty child without moving the cursor.
	AppendVariation struct{}
	NavigateNext    struct{}
	NavigatePrev    struct{}
	NavigateBranch  struct{ Index int }
	// Load replaces the whole tree.
	Load struct{ Tree *sgf.GameTree }
)

func (AddMove) isCommand()           {}
func (SetProperty) isCommand()       {}
func (RemoveProperty) isCommand()    {}
func (DeleteCurrentNode) isCommand() {}
func (AppendVariation) isCommand()   {}
func (NavigateNext) isCommand()      {}
func (NavigatePrev) isCommand()      {}
func (NavigateBranch) isCommand()    {}
func (Load) isCommand()              {}
