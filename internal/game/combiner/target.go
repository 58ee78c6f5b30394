package combiner

// TargetKind says what a confirm press applies to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSocket
	TargetCombiner
)

// Target is the entity the player is interacting with this frame.
type Target struct {
	Kind     TargetKind
	SocketID string
}

func None() Target { return Target{} }

func Socket(id string) Target { return Target{Kind: TargetSocket, SocketID: id} }

func Station() Target { return Target{Kind: TargetCombiner} }

func (t Target) IsNone() bool { return t.Kind == TargetNone }

func (t Target) String() string {
	switch t.Kind {
	case TargetSocket:
		return "socket " + t.SocketID
	case TargetCombiner:
		return "combiner"
	}
	return "none"
}
