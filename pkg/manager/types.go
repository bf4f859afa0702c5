package manager

import "github.com/mactv-dev/mactv/pkg/machine"

// Channel is one fully reconciled channel: display-ready name, logo
// and EPG id, plus the playable URL with playback headers appended.
type Channel struct {
	Name  string
	Logo  string
	EPGID string
	Group string
	URL   string
	Key   string
}

// Stats summarizes where every portal record ended up in one run.
type Stats struct {
	Portal   int
	Filtered int
	Dead     int
	Deduped  int
	Kept     int
}

type recordState string

const (
	stateCandidate  recordState = "candidate"
	stateFiltered   recordState = "filtered-out"
	stateDead       recordState = "liveness-failed"
	stateDeduped    recordState = "deduped-out"
	stateReconciled recordState = "reconciled"
)

// newRecordMachine models the per-record lifecycle: a candidate moves
// to exactly one terminal state and never back.
func newRecordMachine() *machine.StateMachine[recordState] {
	return machine.New(stateCandidate,
		machine.From(stateCandidate).To(stateFiltered, stateDead, stateDeduped, stateReconciled),
	)
}
