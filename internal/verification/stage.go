// internal/verification/stage.go
package verification

import "fmt"

// StageKey identifies one of the seven fixed verification stages.
type StageKey string

const (
	StageCredentials StageKey = "credentials"
	StageExperience  StageKey = "experience"
	StageDemo        StageKey = "demo"
	StageEthics      StageKey = "ethics"
	StageLanguage    StageKey = "language"
	StageIntroCall   StageKey = "intro_call"
	StageCurriculum  StageKey = "curriculum"
)

// StageOrder is the fixed 1..7 sequence presented to tutors. The ordering is
// advisory for the UI; the API owns whether out-of-order submissions are
// accepted.
var StageOrder = []StageKey{
	StageCredentials,
	StageExperience,
	StageDemo,
	StageEthics,
	StageLanguage,
	StageIntroCall,
	StageCurriculum,
}

// Position returns the 1-based position of key in the sequence, or 0 when the
// key is unknown.
func Position(key StageKey) int {
	for i, k := range StageOrder {
		if k == key {
			return i + 1
		}
	}
	return 0
}

// NextStage returns the stage following key. ok is false for the last stage
// and for unknown keys.
func NextStage(key StageKey) (StageKey, bool) {
	pos := Position(key)
	if pos == 0 || pos >= len(StageOrder) {
		return "", false
	}
	return StageOrder[pos], true
}

// ParseStageKey validates a wire value against the known keys.
func ParseStageKey(raw string) (StageKey, error) {
	key := StageKey(raw)
	if Position(key) == 0 {
		return "", fmt.Errorf("unknown verification stage %q", raw)
	}
	return key, nil
}

// StageStatus is the per-stage review state.
type StageStatus string

const (
	StatusPending   StageStatus = "pending"
	StatusInReview  StageStatus = "in_review"
	StatusApproved  StageStatus = "approved"
	StatusRejected  StageStatus = "rejected"
	StatusScheduled StageStatus = "scheduled"
	StatusCompleted StageStatus = "completed"
	StatusNoShow    StageStatus = "no_show"
)

// OverallStatus is the server-owned summary across all stages, distinct from
// any individual stage's status.
type OverallStatus string

const (
	OverallPending  OverallStatus = "pending"
	OverallInReview OverallStatus = "in_review"
	OverallApproved OverallStatus = "approved"
	OverallRejected OverallStatus = "rejected"
)

// SubmitStatus is the only status value this client ever sends for a stage:
// "scheduled" when booking the intro call, "in_review" everywhere else. All
// other transitions belong to the reviewer workflow.
func SubmitStatus(key StageKey) StageStatus {
	if key == StageIntroCall {
		return StatusScheduled
	}
	return StatusInReview
}
