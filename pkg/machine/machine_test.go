package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordState string

const (
	stateCandidate  recordState = "candidate"
	stateFiltered   recordState = "filtered-out"
	stateDeduped    recordState = "deduped-out"
	stateReconciled recordState = "reconciled"
)

func newRecordMachine() *StateMachine[recordState] {
	return New(stateCandidate,
		From(stateCandidate).To(stateFiltered, stateDeduped, stateReconciled),
	)
}

func TestToState(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		m := newRecordMachine()

		assert.NoError(t, m.ToState(stateReconciled))
		// ToState only checks; the machine stays put
		assert.Equal(t, stateCandidate, m.Current())
	})

	t.Run("invalid transition", func(t *testing.T) {
		m := New(stateReconciled,
			From(stateCandidate).To(stateReconciled),
		)

		assert.ErrorIs(t, m.ToState(stateCandidate), ErrInvalidTransition)
	})
}

func TestTransition(t *testing.T) {
	m := newRecordMachine()

	assert.NoError(t, m.Transition(stateDeduped))
	assert.Equal(t, stateDeduped, m.Current())

	// terminal states have no outgoing transitions
	assert.ErrorIs(t, m.Transition(stateReconciled), ErrInvalidTransition)
	assert.Equal(t, stateDeduped, m.Current())
}
