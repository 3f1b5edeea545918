// cmd/portal/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tutorlink-client/internal/api"
	"tutorlink-client/internal/auth"
	"tutorlink-client/internal/common/config"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/common/metrics"
	"tutorlink-client/internal/dashboard"
	"tutorlink-client/internal/payments"
	"tutorlink-client/internal/session"
	"tutorlink-client/internal/verification"
	"tutorlink-client/internal/verification/controller"
)

const usage = `usage: portal <command> [args]

commands:
  login <email> <password>        sign in and persist the session
  logout                          clear the stored session
  status                          show verification progress for the signed-in tutor
  dashboard                       print the role-specific dashboard view
  checkout <classId>              request a hosted-checkout URL for a class
`

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := cfg.Validate(); err != nil {
		zapLog.Fatal("invalid config", zap.Error(err))
	}

	ctx := context.Background()

	// --- Session store ---
	var sessions session.Store
	switch cfg.Session.Backend {
	case "redis":
		store := session.NewRedisStore(cfg.Session.Redis, config.SessionTTL(cfg))
		err = retryWithBackoff(func() error {
			return store.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer store.Close()
		sessions = store
		zapLog.Info("Redis session store connected")
	default:
		sessions = session.NewMemoryStore()
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.Handle("/metrics", metrics.Handler(registry))
			zapLog.Info("Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	client := api.NewClient(cfg.API.BaseURL, config.GetDuration(cfg.API.Timeout), sessions, m, log)

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		svc := auth.NewService(client, sessions, log)
		sess, err := svc.SignIn(ctx, args[1], args[2])
		if err != nil {
			zapLog.Fatal("sign-in failed", zap.Error(err))
		}
		fmt.Printf("signed in as %s (%s)\n", sess.UserID, sess.UserRole)

	case "logout":
		svc := auth.NewService(client, sessions, log)
		if err := svc.Logout(ctx); err != nil {
			zapLog.Fatal("logout failed", zap.Error(err))
		}
		fmt.Println("signed out")

	case "status":
		runStatus(ctx, client, sessions, log, zapLog)

	case "dashboard":
		agg := dashboard.NewAggregator(client, sessions, log)
		vm, err := agg.BuildView(ctx)
		if err != nil {
			zapLog.Fatal("dashboard build failed", zap.Error(err))
		}
		out, err := json.MarshalIndent(vm, "", "  ")
		if err != nil {
			zapLog.Fatal("encode failed", zap.Error(err))
		}
		fmt.Println(string(out))

	case "checkout":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		svc := payments.NewService(client, cfg.Payments, log)
		url, err := svc.Checkout(ctx, args[1])
		if err != nil {
			zapLog.Fatal("checkout failed", zap.Error(err))
		}
		fmt.Println(url)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runStatus(ctx context.Context, client *api.Client, sessions session.Store, log logger.Logger, zapLog *zap.Logger) {
	ctrl := controller.NewStageController(verification.StageCredentials, client, sessions, log)
	if err := ctrl.Load(ctx); err != nil {
		if ctrl.RedirectToSignIn() {
			fmt.Println("not signed in; run: portal login <email> <password>")
			os.Exit(1)
		}
		zapLog.Fatal("status load failed", zap.Error(err))
	}

	state := ctrl.State()
	fmt.Printf("overall: %s (%d/%d approved)\n", state.OverallStatus, state.ApprovedCount(), len(verification.StageOrder))
	for _, st := range state.Stages() {
		line := fmt.Sprintf("  %d. %-12s %s", verification.Position(st.Key), st.Key, st.Status)
		if st.Notes != "" {
			line += " (" + st.Notes + ")"
		}
		fmt.Println(line)
	}
}
