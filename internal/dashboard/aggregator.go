// internal/dashboard/aggregator.go
package dashboard

import (
	"context"
	"encoding/json"
	"sync"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/session"
)

// Fetcher is the slice of the platform client the aggregator needs: raw
// bodies only, normalization happens here.
type Fetcher interface {
	DashboardProfile(ctx context.Context, userID string) (json.RawMessage, error)
	Classes(ctx context.Context, userID string) (json.RawMessage, error)
	Assignments(ctx context.Context, userID string) (json.RawMessage, error)
	Payments(ctx context.Context, userID string) (json.RawMessage, error)
	Messages(ctx context.Context, userID string) (json.RawMessage, error)
}

// Aggregator assembles the role-specific dashboard view. The profile is
// load-bearing: without it the page cannot render and the whole build fails.
// Each collection degrades independently to an empty section plus an entry in
// ViewModel.Errors.
type Aggregator struct {
	fetcher  Fetcher
	sessions session.Store
	logger   logger.Logger
}

func NewAggregator(fetcher Fetcher, sessions session.Store, log logger.Logger) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		sessions: sessions,
		logger:   log.WithFields(map[string]interface{}{"component": "dashboard"}),
	}
}

// BuildView fetches and normalizes everything one dashboard render needs.
// Collection fetches run concurrently; each goroutine writes only its own
// ViewModel field, and error map writes are serialized.
func (a *Aggregator) BuildView(ctx context.Context) (*ViewModel, error) {
	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	rawProfile, err := a.fetcher.DashboardProfile(ctx, sess.UserID)
	if err != nil {
		a.logger.Error("profile fetch failed", map[string]interface{}{
			"userId": sess.UserID,
			"error":  err.Error(),
		})
		return nil, err
	}

	vm := &ViewModel{
		Profile:     NormalizeProfile(rawProfile),
		Classes:     []Class{},
		Assignments: []Assignment{},
		Payments:    []Payment{},
		Messages:    []Message{},
		Errors:      map[string]string{},
	}
	vm.Role = vm.Profile.Role
	if vm.Role == "" {
		vm.Role = sess.UserRole
	}

	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
	)
	sectionErr := func(name string, err error) {
		errMu.Lock()
		vm.Errors[name] = errors.UserMessage(err)
		errMu.Unlock()
		a.logger.Warn("dashboard section failed", map[string]interface{}{
			"section": name,
			"error":   err.Error(),
		})
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		raw, err := a.fetcher.Classes(ctx, sess.UserID)
		if err != nil {
			sectionErr("classes", err)
			return
		}
		vm.Classes = NormalizeClasses(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := a.fetcher.Assignments(ctx, sess.UserID)
		if err != nil {
			sectionErr("assignments", err)
			return
		}
		vm.Assignments = NormalizeAssignments(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := a.fetcher.Payments(ctx, sess.UserID)
		if err != nil {
			sectionErr("payments", err)
			return
		}
		vm.Payments = NormalizePayments(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := a.fetcher.Messages(ctx, sess.UserID)
		if err != nil {
			sectionErr("messages", err)
			return
		}
		vm.Messages = NormalizeMessages(raw)
	}()
	wg.Wait()

	vm.Stats = computeStats(vm)
	if len(vm.Errors) == 0 {
		vm.Errors = nil
	}
	return vm, nil
}
