package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tramova/tramova/modules/tariffs/domain/aggregates/tariff"
	"github.com/tramova/tramova/pkg/composables"
)

// fakeTx satisfies pgx.Tx for context plumbing; none of its methods are
// expected to be called because the repository is mocked.
type fakeTx struct {
	pgx.Tx
}

func testCtx() context.Context {
	ctx := composables.WithTx(context.Background(), fakeTx{})
	return composables.WithOwnerID(ctx, uuid.New())
}

type memoryTariffRepo struct {
	records map[uuid.UUID]tariff.Tariff
	order   []uuid.UUID
}

func newMemoryTariffRepo() *memoryTariffRepo {
	return &memoryTariffRepo{records: make(map[uuid.UUID]tariff.Tariff)}
}

func (m *memoryTariffRepo) GetByID(ctx context.Context, id uuid.UUID) (tariff.Tariff, error) {
	record, ok := m.records[id]
	if !ok {
		return tariff.Tariff{}, tariff.ErrNotFound
	}
	return record, nil
}

func (m *memoryTariffRepo) GetByKey(ctx context.Context, params *tariff.FindParams) ([]tariff.Tariff, error) {
	var out []tariff.Tariff
	for _, id := range m.order {
		record := m.records[id]
		if record.RouteID() == params.RouteID &&
			record.RateType() == params.RateType &&
			record.Method() == params.Method {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *memoryTariffRepo) GetByRoute(ctx context.Context, routeID uuid.UUID) ([]tariff.Tariff, error) {
	var out []tariff.Tariff
	for _, id := range m.order {
		if m.records[id].RouteID() == routeID {
			out = append(out, m.records[id])
		}
	}
	return out, nil
}

func (m *memoryTariffRepo) Create(ctx context.Context, t tariff.Tariff) (tariff.Tariff, error) {
	created := tariff.Hydrate(
		uuid.New(), t.OwnerID(), t.RouteID(), t.RateType(), t.Method(),
		t.BaseValue(), t.SurchargeValue(), t.Window(), time.Now(), time.Now(),
	)
	m.records[created.ID()] = created
	m.order = append(m.order, created.ID())
	return created, nil
}

func (m *memoryTariffRepo) Update(ctx context.Context, t tariff.Tariff) error {
	if _, ok := m.records[t.ID()]; !ok {
		return tariff.ErrNotFound
	}
	m.records[t.ID()] = t
	return nil
}

// seed bypasses the service gate, for constructing corrupted states.
func (m *memoryTariffRepo) seed(t tariff.Tariff) {
	m.records[t.ID()] = t
	m.order = append(m.order, t.ID())
}

type stubPublisher struct {
	events []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})     { s.events = append(s.events, args...) }
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func createDTO(routeID uuid.UUID, rateType, method, from string, until *string) *tariff.CreateDTO {
	return &tariff.CreateDTO{
		RouteID:    routeID.String(),
		RateType:   rateType,
		Method:     method,
		BaseValue:  "125.50",
		ValidFrom:  from,
		ValidUntil: until,
	}
}

func strPtr(s string) *string { return &s }

func TestTariffService_CreateRejectsOverlap(t *testing.T) {
	repo := newMemoryTariffRepo()
	svc := NewTariffService(repo, &stubPublisher{})
	ctx := testCtx()
	routeID := uuid.New()

	first, err := svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-01-01", strPtr("2024-06-30")))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-06-15", strPtr("2024-12-31")))
	var conflict *tariff.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID(), conflict.ConflictingID)

	// Same window under the other rate type must succeed.
	_, err = svc.Create(ctx, createDTO(routeID, "incidental", "per_distance", "2024-06-15", strPtr("2024-12-31")))
	require.NoError(t, err)
}

func TestTariffService_CreateRejectsMalformedWindow(t *testing.T) {
	repo := newMemoryTariffRepo()
	svc := NewTariffService(repo, &stubPublisher{})

	_, err := svc.Create(testCtx(), createDTO(uuid.New(), "contracted", "fixed", "2024-06-01", strPtr("2024-05-01")))
	require.ErrorIs(t, err, tariff.ErrInvalidWindow)
	assert.Empty(t, repo.order, "nothing must be persisted")
}

func TestTariffService_UpdateExcludesSelf(t *testing.T) {
	repo := newMemoryTariffRepo()
	svc := NewTariffService(repo, &stubPublisher{})
	ctx := testCtx()
	routeID := uuid.New()

	created, err := svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-01-01", strPtr("2024-06-30")))
	require.NoError(t, err)

	// Extending the record's own window is not a conflict with itself.
	updated, err := svc.Update(ctx, created.ID(), &tariff.UpdateDTO{
		BaseValue: "130.00",
		ValidFrom: "2024-01-01",
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Window().Until())
}

func TestTariffService_UpdateRejectsOverlapWithSibling(t *testing.T) {
	repo := newMemoryTariffRepo()
	svc := NewTariffService(repo, &stubPublisher{})
	ctx := testCtx()
	routeID := uuid.New()

	_, err := svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-01-01", strPtr("2024-06-30")))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-07-01", strPtr("2024-12-31")))
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID(), &tariff.UpdateDTO{
		BaseValue: "99.00",
		ValidFrom: "2024-06-30",
	})
	var conflict *tariff.ConflictError
	require.ErrorAs(t, err, &conflict)
}

// The no-overlap invariant holds for any sequence of individually successful
// operations.
func TestTariffService_NoOverlapInvariant(t *testing.T) {
	repo := newMemoryTariffRepo()
	svc := NewTariffService(repo, &stubPublisher{})
	ctx := testCtx()
	routeID := uuid.New()

	windows := [][2]string{
		{"2024-01-01", "2024-02-15"},
		{"2024-02-01", "2024-03-15"}, // overlaps the first
		{"2024-02-16", "2024-04-30"},
		{"2024-04-30", "2024-05-31"}, // touches the third
		{"2024-05-01", ""},
		{"2024-06-01", ""}, // open-ended vs open-ended
	}
	for _, w := range windows {
		var until *string
		if w[1] != "" {
			until = strPtr(w[1])
		}
		_, _ = svc.Create(ctx, createDTO(routeID, "contracted", "fixed", w[0], until))
	}

	surviving, err := repo.GetByKey(ctx, &tariff.FindParams{
		RouteID: routeID, RateType: tariff.RateContracted, Method: tariff.MethodFixed,
	})
	require.NoError(t, err)
	for i := range surviving {
		for j := i + 1; j < len(surviving); j++ {
			assert.False(
				t,
				surviving[i].Window().Overlaps(surviving[j].Window()),
				"records %d and %d overlap", i, j,
			)
		}
	}
}

func TestTariffService_ResolveApplicable(t *testing.T) {
	repo := newMemoryTariffRepo()
	svc := NewTariffService(repo, &stubPublisher{})
	ctx := testCtx()
	routeID := uuid.New()

	_, err := svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-01-01", strPtr("2024-06-30")))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createDTO(routeID, "contracted", "per_distance", "2024-07-01", nil))
	require.NoError(t, err)

	resolved, err := svc.ResolveApplicable(
		ctx, routeID, tariff.RateContracted, tariff.MethodPerDistance,
		time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, second.ID(), resolved.ID())

	_, err = svc.ResolveApplicable(
		ctx, routeID, tariff.RateContracted, tariff.MethodPerDistance,
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.ErrorIs(t, err, tariff.ErrNoApplicable)
}

// Resolution must not depend on insertion order.
func TestTariffService_ResolutionDeterminism(t *testing.T) {
	routeID := uuid.New()
	ownerID := uuid.New()
	mkRecord := func(from, until string) tariff.Tariff {
		f, _ := time.Parse("2006-01-02", from)
		var u *time.Time
		if until != "" {
			parsed, _ := time.Parse("2006-01-02", until)
			u = &parsed
		}
		return tariff.Hydrate(
			uuid.New(), ownerID, routeID,
			tariff.RateContracted, tariff.MethodPerDistance,
			decimal.NewFromInt(100), decimal.Zero,
			tariff.MustWindow(f, u),
			time.Now(), time.Now(),
		)
	}
	records := []tariff.Tariff{
		mkRecord("2024-01-01", "2024-03-31"),
		mkRecord("2024-04-01", "2024-06-30"),
		mkRecord("2024-07-01", ""),
	}

	onDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	var want uuid.UUID
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]tariff.Tariff, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		repo := newMemoryTariffRepo()
		for _, r := range shuffled {
			repo.seed(r)
		}
		svc := NewTariffService(repo, &stubPublisher{})
		resolved, err := svc.ResolveApplicable(testCtx(), routeID, tariff.RateContracted, tariff.MethodPerDistance, onDate)
		require.NoError(t, err)
		if trial == 0 {
			want = resolved.ID()
		} else {
			assert.Equal(t, want, resolved.ID(), "resolution depends on insertion order")
		}
	}
}

func TestTariffService_ResolveDetectsInvariantViolation(t *testing.T) {
	routeID := uuid.New()
	ownerID := uuid.New()
	repo := newMemoryTariffRepo()
	// Two overlapping records seeded behind the gate's back, as a buggy
	// migration would.
	for i := 0; i < 2; i++ {
		repo.seed(tariff.Hydrate(
			uuid.New(), ownerID, routeID,
			tariff.RateContracted, tariff.MethodFixed,
			decimal.NewFromInt(int64(100+i)), decimal.Zero,
			tariff.MustWindow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil),
			time.Now(), time.Now(),
		))
	}
	svc := NewTariffService(repo, &stubPublisher{})

	_, err := svc.ResolveApplicable(
		testCtx(), routeID, tariff.RateContracted, tariff.MethodFixed,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	)
	var violation *tariff.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Len(t, violation.MatchIDs, 2)
}

func TestTariffService_CurrentForDisplay(t *testing.T) {
	ctx := testCtx()
	routeID := uuid.New()

	t.Run("prefers latest unexpired", func(t *testing.T) {
		repo := newMemoryTariffRepo()
		svc := NewTariffService(repo, &stubPublisher{})
		_, err := svc.Create(ctx, createDTO(routeID, "contracted", "fixed", "2024-01-01", strPtr("2024-06-30")))
		require.NoError(t, err)
		open, err := svc.Create(ctx, createDTO(routeID, "contracted", "fixed", "2024-07-01", nil))
		require.NoError(t, err)

		got, stale, err := svc.CurrentForDisplay(
			ctx, routeID, tariff.RateContracted, tariff.MethodFixed,
			time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.False(t, stale)
		assert.Equal(t, open.ID(), got.ID())
	})

	t.Run("falls back to most recently expired and flags stale", func(t *testing.T) {
		repo := newMemoryTariffRepo()
		svc := NewTariffService(repo, &stubPublisher{})
		_, err := svc.Create(ctx, createDTO(routeID, "contracted", "fixed", "2023-01-01", strPtr("2023-06-30")))
		require.NoError(t, err)
		newer, err := svc.Create(ctx, createDTO(routeID, "contracted", "fixed", "2023-07-01", strPtr("2023-12-31")))
		require.NoError(t, err)

		got, stale, err := svc.CurrentForDisplay(
			ctx, routeID, tariff.RateContracted, tariff.MethodFixed,
			time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.True(t, stale)
		assert.Equal(t, newer.ID(), got.ID())
	})

	t.Run("not found when no versions exist", func(t *testing.T) {
		repo := newMemoryTariffRepo()
		svc := NewTariffService(repo, &stubPublisher{})
		_, _, err := svc.CurrentForDisplay(
			ctx, routeID, tariff.RateContracted, tariff.MethodFixed, time.Now(),
		)
		require.ErrorIs(t, err, tariff.ErrNotFound)
	})
}
