package ast

// Accessors return the kind-specific payload of a node and whether the node
// has that kind.

func (t *Tree) payloadOf(id NodeID, kinds ...Kind) (PayloadID, bool) {
	n := t.Get(id)
	if n == nil {
		return NoPayloadID, false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return n.Payload, true
		}
	}
	return NoPayloadID, false
}

func (t *Tree) Literal(id NodeID) (*LiteralData, bool) {
	p, ok := t.payloadOf(id, KindLiteral)
	if !ok {
		return nil, false
	}
	return t.literals.Get(uint32(p)), true
}

// Variable returns the variable declared by a Variable node.
func (t *Tree) Variable(id NodeID) (*Variable, VarID, bool) {
	p, ok := t.payloadOf(id, KindVariable)
	if !ok {
		return nil, NoVarID, false
	}
	return t.Vars.Get(uint32(p)), VarID(p), true
}

// Name returns the referenced name of Identifier, Assign and Read nodes.
func (t *Tree) Name(id NodeID) (string, bool) {
	n := t.Get(id)
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case KindIdentifier, KindAssign:
		return t.names.Get(uint32(n.Payload)).Name, true
	case KindRead:
		return t.reads.Get(uint32(n.Payload)).Name, true
	default:
		return "", false
	}
}

// Op returns the operator of Math, Relation, Logical, Bitwise and Unary nodes.
func (t *Tree) Op(id NodeID) (Op, bool) {
	p, ok := t.payloadOf(id, KindMath, KindRelation, KindLogical, KindBitwise, KindUnary)
	if !ok {
		return OpInvalid, false
	}
	return t.ops.Get(uint32(p)).Op, true
}

func (t *Tree) Wrapper(id NodeID) (*WrapperData, bool) {
	p, ok := t.payloadOf(id, KindWrapper)
	if !ok {
		return nil, false
	}
	return t.wrappers.Get(uint32(p)), true
}

func (t *Tree) Write(id NodeID) (*WriteData, bool) {
	p, ok := t.payloadOf(id, KindWrite)
	if !ok {
		return nil, false
	}
	return t.writes.Get(uint32(p)), true
}

func (t *Tree) Read(id NodeID) (*ReadData, bool) {
	p, ok := t.payloadOf(id, KindRead)
	if !ok {
		return nil, false
	}
	return t.reads.Get(uint32(p)), true
}

func (t *Tree) StringLit(id NodeID) (*StringData, bool) {
	p, ok := t.payloadOf(id, KindString)
	if !ok {
		return nil, false
	}
	return t.strs.Get(uint32(p)), true
}

// Unwrap returns the operand behind a Wrapper, or id itself.
func (t *Tree) Unwrap(id NodeID) NodeID {
	if t.Kind(id) == KindWrapper {
		return t.Child(id, 0)
	}
	return id
}
