package tariff

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTariff(t *testing.T, rateType RateType, method Method, from time.Time, until *time.Time) Tariff {
	t.Helper()
	w, err := NewWindow(from, until)
	require.NoError(t, err)
	return Hydrate(
		uuid.New(),
		uuid.New(),
		uuid.New(),
		rateType,
		method,
		decimal.NewFromInt(100),
		decimal.Zero,
		w,
		time.Now(),
		time.Now(),
	)
}

func TestFindOverlap_SameKeyCollides(t *testing.T) {
	existing := testTariff(t, RateContracted, MethodPerDistance, date(2024, 1, 1), datePtr(2024, 6, 30))
	candidate := Candidate{
		RateType: RateContracted,
		Method:   MethodPerDistance,
		Window:   MustWindow(date(2024, 6, 15), datePtr(2024, 12, 31)),
	}

	hit, found := FindOverlap(candidate, []Tariff{existing}, uuid.Nil)
	require.True(t, found)
	assert.Equal(t, existing.ID(), hit.ID())
}

func TestFindOverlap_DifferentRateTypeDoesNot(t *testing.T) {
	existing := testTariff(t, RateContracted, MethodPerDistance, date(2024, 1, 1), datePtr(2024, 6, 30))
	candidate := Candidate{
		RateType: RateIncidental,
		Method:   MethodPerDistance,
		Window:   MustWindow(date(2024, 6, 15), datePtr(2024, 12, 31)),
	}

	_, found := FindOverlap(candidate, []Tariff{existing}, uuid.Nil)
	assert.False(t, found)
}

func TestFindOverlap_DifferentMethodDoesNot(t *testing.T) {
	existing := testTariff(t, RateContracted, MethodPerDistance, date(2024, 1, 1), nil)
	candidate := Candidate{
		RateType: RateContracted,
		Method:   MethodFixed,
		Window:   MustWindow(date(2024, 6, 15), nil),
	}

	_, found := FindOverlap(candidate, []Tariff{existing}, uuid.Nil)
	assert.False(t, found)
}

func TestFindOverlap_ExcludesRecordBeingEdited(t *testing.T) {
	existing := testTariff(t, RateContracted, MethodPerDistance, date(2024, 1, 1), datePtr(2024, 6, 30))
	candidate := Candidate{
		RateType: RateContracted,
		Method:   MethodPerDistance,
		Window:   MustWindow(date(2024, 2, 1), datePtr(2024, 7, 31)),
	}

	_, found := FindOverlap(candidate, []Tariff{existing}, existing.ID())
	assert.False(t, found)
}

func TestFindOverlap_ReturnsFirstMatch(t *testing.T) {
	first := testTariff(t, RateContracted, MethodPerDistance, date(2024, 1, 1), datePtr(2024, 3, 31))
	second := testTariff(t, RateContracted, MethodPerDistance, date(2024, 4, 1), datePtr(2024, 6, 30))
	candidate := Candidate{
		RateType: RateContracted,
		Method:   MethodPerDistance,
		Window:   MustWindow(date(2024, 3, 1), datePtr(2024, 5, 1)),
	}

	hit, found := FindOverlap(candidate, []Tariff{first, second}, uuid.Nil)
	require.True(t, found)
	assert.Equal(t, first.ID(), hit.ID())
}

func TestFindOverlap_AdjacentWindowsDoNotConflict(t *testing.T) {
	existing := testTariff(t, RateContracted, MethodPerDistance, date(2024, 1, 1), datePtr(2024, 6, 30))
	candidate := Candidate{
		RateType: RateContracted,
		Method:   MethodPerDistance,
		Window:   MustWindow(date(2024, 7, 1), nil),
	}

	_, found := FindOverlap(candidate, []Tariff{existing}, uuid.Nil)
	assert.False(t, found)
}
