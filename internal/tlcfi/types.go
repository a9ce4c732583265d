package tlcfi

// EntityKind discriminates which class of controller object an update
// describes. It mirrors the `objects.type` field of an UpdateState message.
type EntityKind int

const (
	// KindUnsupported covers every object type the converter does not
	// handle. Updates of this kind carry a tick but no entries.
	KindUnsupported EntityKind = iota
	KindSignal
	KindDetector
)

func (k EntityKind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindDetector:
		return "detector"
	default:
		return "unsupported"
	}
}

// Entry is one surviving (name, state code) pair of an update. Pairs the
// controller reported with a null state are dropped during decoding and
// never appear here.
type Entry struct {
	Name string
	Code uint64
}

// Update is one decoded UpdateState message.
type Update struct {
	Tick    uint64
	Kind    EntityKind
	Entries []Entry
}

// SignalState is the decoded aspect of one signal group.
type SignalState int

const (
	SignalUnavailable SignalState = iota
	SignalDark
	SignalRed
	SignalAmber
	SignalGreen
	SignalAmberFlashing
)

func (s SignalState) String() string {
	switch s {
	case SignalUnavailable:
		return "unavailable"
	case SignalDark:
		return "dark"
	case SignalRed:
		return "red"
	case SignalAmber:
		return "amber"
	case SignalGreen:
		return "green"
	case SignalAmberFlashing:
		return "amber-flashing"
	default:
		return "invalid"
	}
}

// DetectorState is the decoded occupancy of one vehicle detector.
type DetectorState int

const (
	DetectorFree DetectorState = iota
	DetectorOccupied
)

func (d DetectorState) String() string {
	switch d {
	case DetectorFree:
		return "free"
	case DetectorOccupied:
		return "occupied"
	default:
		return "invalid"
	}
}

// TimestampedChanges is one batch of simultaneous entity state changes
// sharing a single elapsed-time value. A batch holds either signal data
// or detector data, never both; len(Names) always equals the length of
// the populated state slice.
type TimestampedChanges struct {
	MsFromBeginning uint64
	Kind            EntityKind
	Names           []string
	SignalStates    []SignalState
	DetectorStates  []DetectorState
}
