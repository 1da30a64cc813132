//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"eventpay/cmd/bootstrap"
	"eventpay/cmd/bootstrap/components"
	"eventpay/internal/infra/push"
	"eventpay/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// Per-process environment setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, *FakeBackend, *push.Hub, config.Config) {
	redisInfo := startContainers(t)

	backend := NewFakeBackend()
	t.Cleanup(backend.Close)

	cfg := config.NewTestConfig()
	cfg.Backend.BaseURL = backend.URL()
	cfg.Redis.Addr = redisInfo.Host + ":" + redisInfo.Port.Port()

	router, hub, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return router, backend, hub, cfg
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)

	redisInfo, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "failed to resolve redis container address")

	return redisInfo
}

// ------------------------------------------------------------
// Application assembly for e2e (fake backend + containerized redis)
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *push.Hub, *fx.App) {
	var router *gin.Engine
	var hub *push.Hub

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.RedisModule,
		components.GatewayModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &hub),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}

	return router, hub, app
}

// ------------------------------------------------------------
// Redis container, started once and shared by the process
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForListeningPort("6379/tcp").
				WithStartupTimeout(60 * time.Second),
			Name:   "redis-e2e",
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		redisTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start redis container")

		t.Cleanup(func() {
			if redisTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := redisTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate redis container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// FakeBackend scripts the booking backend's REST contract
// ------------------------------------------------------------
type backendTransaction struct {
	Status           string
	ConfirmationCode string
	FailureReason    string
	CorrelationToken string
}

type FakeBackend struct {
	mu                sync.Mutex
	server            *httptest.Server
	nextTx            int
	transactions      map[string]*backendTransaction
	lastTransactionID string
	available         bool
	conflictReason    string
	rejectSubmissions bool
	failProviderQuery bool
}

func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{
		transactions: make(map[string]*backendTransaction),
		available:    true,
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	return b
}

func (b *FakeBackend) URL() string { return b.server.URL }
func (b *FakeBackend) Close()      { b.server.Close() }

// Reset returns the backend to its default, accepting state. Existing
// transactions are kept; flows created by earlier tests keep resolving.
func (b *FakeBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.available = true
	b.conflictReason = ""
	b.rejectSubmissions = false
	b.failProviderQuery = false
}

func (b *FakeBackend) SetAvailability(available bool, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.available = available
	b.conflictReason = reason
}

func (b *FakeBackend) RejectSubmissions(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectSubmissions = reject
}

func (b *FakeBackend) FailProviderQuery(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failProviderQuery = fail
}

// Resolve scripts the status reported for a transaction from now on.
func (b *FakeBackend) Resolve(transactionID, status, confirmationCode, failureReason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if tx, ok := b.transactions[transactionID]; ok {
		tx.Status = status
		tx.ConfirmationCode = confirmationCode
		tx.FailureReason = failureReason
	}
}

func (b *FakeBackend) LastTransactionID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastTransactionID
}

func (b *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/bookings":
		b.handleSubmit(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/bookings/") && strings.HasSuffix(r.URL.Path, "/status"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/bookings/"), "/status")
		b.handleStatus(w, id)
	case r.Method == http.MethodPost && r.URL.Path == "/payment/query":
		b.handleQuery(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/availability":
		b.handleAvailability(w)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *FakeBackend) handleSubmit(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rejectSubmissions {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	b.nextTx++
	id := fmt.Sprintf("tx-%06d", b.nextTx)
	token := fmt.Sprintf("chk-%06d", b.nextTx)
	b.transactions[id] = &backendTransaction{Status: "pending", CorrelationToken: token}
	b.lastTransactionID = id

	_ = json.NewEncoder(w).Encode(map[string]string{
		"transactionId":    id,
		"correlationToken": token,
	})
}

func (b *FakeBackend) handleStatus(w http.ResponseWriter, id string) {
	b.mu.Lock()
	tx, ok := b.transactions[id]
	var snapshot backendTransaction
	if ok {
		snapshot = *tx
	}
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":           snapshot.Status,
		"confirmationCode": snapshot.ConfirmationCode,
		"failureReason":    snapshot.FailureReason,
	})
}

func (b *FakeBackend) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	fail := b.failProviderQuery
	b.mu.Unlock()
	if fail {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	b.handleStatus(w, req.TransactionID)
}

func (b *FakeBackend) handleAvailability(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"available": b.available,
		"reason":    b.conflictReason,
	})
}

// ------------------------------------------------------------
// Shared suite scaffolding
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	Backend *FakeBackend
	Hub     *push.Hub
	Config  config.Config
}

func (s *SharedSuite) SetupSuite() {
	router, backend, hub, cfg := setupE2EEnvironment(s.T())
	s.Router = router
	s.Backend = backend
	s.Hub = hub
	s.Config = cfg
}

func (s *SharedSuite) SetupTest() {
	s.Backend.Reset()
}

// PublishUpdate emits a payment update on the shared push channel the way
// the backend does in production.
func (s *SharedSuite) PublishUpdate(transactionID, status, reason, confirmationCode string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.Hub.Publish(ctx, push.Event{
		TransactionID:    transactionID,
		Status:           status,
		Reason:           reason,
		ConfirmationCode: confirmationCode,
	})
	require.NoError(s.T(), err, "failed to publish push event")
}
