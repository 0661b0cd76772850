package alu

// Op is the 3-bit operation selector. The encoding is fixed for
// compatibility with existing test vectors.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD = Op(0) // add
	OP_SUB = Op(1) // sub
	OP_MUL = Op(2) // mul
	OP_DIV = Op(3) // div
	OP_AND = Op(4) // and
	OP_OR  = Op(5) // or
	OP_XOR = Op(6) // xor
	OP_NOT = Op(7) // not
)

// Arithmetic reports whether the operation decodes its operands as
// minifloats. Logic operations treat them as raw bit patterns.
func (op Op) Arithmetic() bool {
	return op >= OP_ADD && op <= OP_DIV
}

// ParseOp converts an operation name, as produced by Op.String(), back
// into a selector.
func ParseOp(name string) (op Op, err error) {
	for op = OP_ADD; op <= OP_NOT; op++ {
		if op.String() == name {
			return
		}
	}
	err = ErrOpName(name)
	return
}
