// internal/verification/controller/controller.go
package controller

import (
	"context"
	"sync"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/session"
	"tutorlink-client/internal/verification"
)

// Phase is the lifecycle position of a stage page.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseSubmitting Phase = "submitting"
	PhaseError      Phase = "error"
	PhaseSuccess    Phase = "success"
)

// ErrSubmitInFlight rejects a second submit while one is already running.
var ErrSubmitInFlight = errors.NewValidationError("A submission is already in progress")

// API is the slice of the platform client a stage page needs.
type API interface {
	TutorByUser(ctx context.Context, userID string) (*verification.Profile, error)
	SubmitStage(ctx context.Context, tutorID string, payload verification.Payload, notes string) (*verification.Stage, error)
	UploadCredentials(ctx context.Context, tutorID string, files []verification.FileUpload) (*verification.Stage, error)
}

// StageController drives one verification stage page: load the tutor's current
// state, validate and submit the stage payload, and expose the resulting phase,
// messages, and redirect signal for rendering. One controller instance per
// stage page; all seven pages share this implementation.
type StageController struct {
	key      verification.StageKey
	api      API
	sessions session.Store
	logger   logger.Logger

	mu           sync.Mutex
	busy         bool
	phase        Phase
	profile      *verification.Profile
	errorMessage string
	confirmation string
	redirect     bool
}

func NewStageController(key verification.StageKey, api API, sessions session.Store, log logger.Logger) *StageController {
	return &StageController{
		key:      key,
		api:      api,
		sessions: sessions,
		phase:    PhaseIdle,
		logger: log.WithFields(map[string]interface{}{
			"component": "stage_controller",
			"stage":     string(key),
		}),
	}
}

// Load resolves the signed-in tutor and their verification state. A missing or
// rejected session flips the redirect signal instead of rendering an error,
// and a missing tutor profile is a terminal error for the page.
func (c *StageController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.phase = PhaseLoading
	c.errorMessage = ""
	c.redirect = false
	c.mu.Unlock()

	sess, err := c.sessions.Load(ctx)
	if err != nil {
		c.fail(err)
		return err
	}

	profile, err := c.api.TutorByUser(ctx, sess.UserID)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.profile = profile
	c.phase = PhaseIdle
	c.mu.Unlock()

	c.logger.Debug("stage state loaded", map[string]interface{}{
		"tutorId": profile.TutorID,
		"status":  string(profile.State.Stage(c.key).Status),
	})
	return nil
}

// Submit validates the payload locally, then sends it. Validation failures
// never reach the network; a submit already in flight rejects immediately
// without touching the current state.
func (c *StageController) Submit(ctx context.Context, payload verification.Payload, notes string) error {
	if payload.StageKey() != c.key {
		err := errors.NewValidationError("This form does not belong to the current stage")
		c.fail(err)
		return err
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.profile == nil {
		c.mu.Unlock()
		err := errors.NewUnauthorizedError("stage state not loaded")
		c.fail(err)
		return err
	}
	tutorID := c.profile.TutorID
	c.busy = true
	c.phase = PhaseSubmitting
	c.errorMessage = ""
	c.confirmation = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if err := payload.Validate(); err != nil {
		c.fail(err)
		return err
	}
	if err := verification.ValidateSchema(payload); err != nil {
		c.fail(err)
		return err
	}

	var (
		updated *verification.Stage
		err     error
	)
	if creds, ok := payload.(verification.CredentialsPayload); ok {
		updated, err = c.api.UploadCredentials(ctx, tutorID, creds.Files)
	} else {
		updated, err = c.api.SubmitStage(ctx, tutorID, payload, notes)
	}
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.profile.State.Apply(*updated)
	c.phase = PhaseSuccess
	c.confirmation = confirmationFor(c.key)
	c.mu.Unlock()

	c.logger.Info("stage submitted", map[string]interface{}{
		"tutorId": tutorID,
		"status":  string(updated.Status),
	})
	return nil
}

// Retry reloads the page state after an error.
func (c *StageController) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// Stage returns the current record for this controller's stage, for rendering
// status and pre-filling form inputs. Safe before Load; it yields pending.
func (c *StageController) Stage() verification.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return verification.Stage{Key: c.key, Status: verification.StatusPending}
	}
	return c.profile.State.Stage(c.key)
}

// State returns a copy of the full verification state for progress rendering.
func (c *StageController) State() verification.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return verification.NewState(verification.OverallPending, nil)
	}
	return c.profile.State
}

// CanAdvance reports whether the tutor may move on: only when this stage is
// approved and a next stage exists.
func (c *StageController) CanAdvance() (verification.StageKey, bool) {
	if c.Stage().Status != verification.StatusApproved {
		return "", false
	}
	return verification.NextStage(c.key)
}

func (c *StageController) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *StageController) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

func (c *StageController) Confirmation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

// RedirectToSignIn reports whether the last operation hit an auth failure.
func (c *StageController) RedirectToSignIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redirect
}

// fail records an error outcome. Auth failures raise the redirect signal; all
// others become an inline message via the error taxonomy.
func (c *StageController) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseError
	c.errorMessage = errors.UserMessage(err)
	if errors.IsUnauthorized(err) {
		c.redirect = true
	}
}

func confirmationFor(key verification.StageKey) string {
	if key == verification.StageIntroCall {
		return "Your intro call is booked. We will email you a meeting link."
	}
	return "Submitted. Your stage is now under review."
}
