// internal/verification/state.go
package verification

import "encoding/json"

// Stage is one entry of a tutor's verification record as returned by the API.
// Data holds the stage-specific payload in raw form; decode with the typed
// payload structs when a stage page needs to pre-fill inputs.
type Stage struct {
	Key    StageKey        `json:"stage"`
	Status StageStatus     `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

// State is a tutor's full verification progress. The authoritative copy is
// always the server's; the only local mutation is replacing a stage wholesale
// with the server's response after a successful submit.
type State struct {
	OverallStatus OverallStatus
	stages        map[StageKey]Stage
}

// NewState builds a State from wire data. Stage entries the server omitted are
// materialized as pending with an empty payload, so all seven keys are always
// present.
func NewState(overall OverallStatus, stages map[StageKey]Stage) State {
	if overall == "" {
		overall = OverallPending
	}
	s := State{
		OverallStatus: overall,
		stages:        make(map[StageKey]Stage, len(StageOrder)),
	}
	for _, key := range StageOrder {
		st, ok := stages[key]
		if !ok {
			st = Stage{Key: key, Status: StatusPending}
		}
		if st.Key == "" {
			st.Key = key
		}
		if st.Status == "" {
			st.Status = StatusPending
		}
		s.stages[key] = st
	}
	return s
}

// Stage returns the record for key. Unknown keys yield a pending zero stage so
// rendering code never has to branch on absence.
func (s *State) Stage(key StageKey) Stage {
	if s.stages == nil {
		return Stage{Key: key, Status: StatusPending}
	}
	st, ok := s.stages[key]
	if !ok {
		return Stage{Key: key, Status: StatusPending}
	}
	return st
}

// Stages returns all seven records in sequence order.
func (s *State) Stages() []Stage {
	out := make([]Stage, 0, len(StageOrder))
	for _, key := range StageOrder {
		out = append(out, s.Stage(key))
	}
	return out
}

// Apply replaces a single stage with the server's returned value. It never
// merges partial client state into the response.
func (s *State) Apply(updated Stage) {
	if Position(updated.Key) == 0 {
		return
	}
	if s.stages == nil {
		s.stages = make(map[StageKey]Stage, len(StageOrder))
	}
	s.stages[updated.Key] = updated
}

// ApprovedCount reports how many stages the reviewer has approved.
func (s *State) ApprovedCount() int {
	n := 0
	for _, key := range StageOrder {
		if s.Stage(key).Status == StatusApproved {
			n++
		}
	}
	return n
}

// Profile ties a verification state to the tutor record that owns it.
type Profile struct {
	TutorID string
	UserID  string
	State   State
}
