package roundapplication_integration_tests

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/golfcard/integration_tests/testutils"
	roundmetrics "github.com/Black-And-White-Club/golfcard/pkg/observability/metrics/round"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	sharedEnv    *testutils.TestEnvironment
	sharedEnvErr error
	sharedOnce   sync.Once
)

// TestMain initializes and cleans up the shared test environment.
func TestMain(m *testing.M) {
	exitCode := m.Run()
	if sharedEnv != nil {
		log.Println("TestMain: Cleaning up shared test environment...")
		sharedEnv.Cleanup()
	}
	os.Exit(exitCode)
}

type RoundTestDeps struct {
	Env     *testutils.TestEnvironment
	Repo    rounddb.Repository
	Cache   *roundcache.MemoryCache
	Service *roundservice.RoundService
}

func SetupTestRoundService(t *testing.T) RoundTestDeps {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	sharedOnce.Do(func() {
		sharedEnv, sharedEnvErr = testutils.NewTestEnvironment(t)
	})
	if sharedEnvErr != nil {
		t.Fatalf("test environment initialization failed: %v", sharedEnvErr)
	}
	if err := sharedEnv.ResetDatabase(sharedEnv.Ctx); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}

	repo := rounddb.NewRepository(sharedEnv.DB)
	cache := roundcache.NewMemoryCache()
	service := roundservice.NewRoundService(
		repo,
		cache,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&roundmetrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		sharedEnv.DB,
		rounddomain.Defaults{HandicapPercentage: 100, SindicatoHandicapPercentage: 75},
		roundservice.WithClock(fixedClock{t: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)}),
	)

	return RoundTestDeps{Env: sharedEnv, Repo: repo, Cache: cache, Service: service}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
