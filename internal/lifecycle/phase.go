package lifecycle

// Phase is the application lifecycle phase. Exactly one is active at a time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShowingSplash
	PhaseResolvingLocation
	PhaseLoading
	PhasePreloading
	PhaseShowingMain
	PhaseExiting
)

var phaseNames = map[Phase]string{
	PhaseIdle:              "idle",
	PhaseShowingSplash:     "showing-splash",
	PhaseResolvingLocation: "resolving-location",
	PhaseLoading:           "loading",
	PhasePreloading:        "preloading",
	PhaseShowingMain:       "showing-main",
	PhaseExiting:           "exiting",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// transitions lists the phases reachable from each phase.
var transitions = map[Phase][]Phase{
	PhaseIdle:              {PhaseShowingSplash, PhaseShowingMain},
	PhaseShowingSplash:     {PhaseResolvingLocation},
	PhaseResolvingLocation: {PhaseLoading, PhaseShowingMain, PhaseExiting},
	PhaseLoading:           {PhasePreloading, PhaseShowingMain, PhaseExiting},
	PhasePreloading:        {PhaseShowingMain},
	PhaseShowingMain:       {PhaseShowingSplash, PhaseShowingMain, PhaseExiting},
	PhaseExiting:           nil,
}

// CanTransition reports whether next may follow p.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Settled reports whether a lifecycle pass has finished in p.
func (p Phase) Settled() bool {
	return p == PhaseShowingMain || p == PhaseExiting
}
