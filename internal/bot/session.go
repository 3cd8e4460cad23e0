package bot

import "sync"

// flow identifies which multi-turn workflow a session belongs to.
type flow int

const (
	flowNone flow = iota
	flowNewReading
	flowAddObject
	flowDeleteObject
	flowSetCapacity
	flowSetUsage
	flowSingleReport
)

// step is the state the workflow is waiting in. Illegal flow/step
// combinations are never constructed: every transition function sets both.
type step int

const (
	stepNone step = iota

	// new reading
	stepObjectID
	stepHours
	stepFuelAmount
	stepFullTankChoice

	// add object
	stepNewID
	stepNewCapacity

	// delete object
	stepDeleteID

	// change capacity
	stepCapacityID
	stepCapacityValue

	// change usage rate
	stepUsageID
	stepUsageValue

	// single report
	stepReportID
)

// session is the ephemeral per-user workflow state: the in-progress input
// values collected so far. Discarded on completion, cancellation or error.
type session struct {
	Flow      flow
	Step      step
	ObjectID  string
	NewHours  float64
	FuelAdded float64
}

// sessionStore keys sessions per user. Users' conversations proceed
// independently; no cross-user coordination is needed.
type sessionStore struct {
	mu sync.Mutex
	m  map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: map[int64]*session{}}
}

func (s *sessionStore) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[userID]
}

func (s *sessionStore) put(userID int64, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = sess
}

func (s *sessionStore) drop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
