package circuit

import "strings"

// groundIndex is the sentinel matrix index reserved for the ground node. It
// is never assigned to a real node and any coefficient destined for it is
// dropped by the matrix assembler.
const groundIndex = 0

// isGroundName reports whether name is recognised as the reserved ground
// node, case-insensitively, per the builder contract.
func isGroundName(name string) bool {
	return strings.EqualFold(name, "gnd")
}

// Node is a named circuit node. Identity is the name; ground is represented
// by the sentinel index 0 rather than by a distinguished singleton value,
// so any two Node values naming the ground net compare equal by index.
type Node struct {
	Name  string
	Index int
}

// IsGround reports whether n is the ground node.
func (n Node) IsGround() bool { return n.Index == groundIndex }
