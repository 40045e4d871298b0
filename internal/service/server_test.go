package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fintrack/internal/api/apiconnect"
	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/metrics"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
)

// testNow is the fixed wall clock of every test server.
var testNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

type testServer struct {
	ledger   apiconnect.LedgerServiceClient
	groups   apiconnect.GroupServiceClient
	goals    apiconnect.GoalServiceClient
	auth     apiconnect.AuthServiceClient
	recorder *events.Recorder
	metrics  *metrics.Metrics
	jwt      *auth.JWTManager
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fintrack-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServer(t *testing.T, strict bool) *testServer {
	t.Helper()

	store := newTestStore(t)
	recorder := &events.Recorder{}
	m := metrics.New()
	opts := Options{
		Events:            events.NewEmitter(recorder),
		Metrics:           m,
		IDs:               ids.NewSequence("id"),
		Clock:             ids.FixedClock(testNow),
		StrictPercentages: strict,
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	interceptors := connect.WithInterceptors(middleware.OptionalAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewLedgerServiceHandler(NewLedgerService(store, opts), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, opts), interceptors))
	mux.Handle(apiconnect.NewGoalServiceHandler(NewGoalService(store, opts), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, store, jwtManager, nil), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		ledger:   apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		goals:    apiconnect.NewGoalServiceClient(http.DefaultClient, server.URL),
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		recorder: recorder,
		metrics:  m,
		jwt:      jwtManager,
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%v)", want, connectErr.Code(), connectErr.Message())
	}
}
