package ast

type (
	// NodeID is the 1-based arena index of a node; it doubles as the node's
	// compilation-unique id used for IR names.
	NodeID uint32
	// VarID indexes Tree.Vars.
	VarID uint32
	// PayloadID indexes the per-kind payload arena of a node.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoVarID     VarID     = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id VarID) IsValid() bool     { return id != NoVarID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
