package tariff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestNewWindow_Validation(t *testing.T) {
	t.Run("missing valid_from", func(t *testing.T) {
		_, err := NewWindow(time.Time{}, nil)
		require.ErrorIs(t, err, ErrMissingValidFrom)
	})

	t.Run("until before from", func(t *testing.T) {
		_, err := NewWindow(date(2024, 6, 1), datePtr(2024, 5, 31))
		require.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("single day window is allowed", func(t *testing.T) {
		w, err := NewWindow(date(2024, 6, 1), datePtr(2024, 6, 1))
		require.NoError(t, err)
		assert.True(t, w.Contains(date(2024, 6, 1)))
		assert.False(t, w.Contains(date(2024, 6, 2)))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		w, err := NewWindow(
			time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC),
			nil,
		)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC)))
	})
}

func TestWindow_Contains(t *testing.T) {
	bounded := MustWindow(date(2024, 1, 1), datePtr(2024, 6, 30))
	assert.False(t, bounded.Contains(date(2023, 12, 31)))
	assert.True(t, bounded.Contains(date(2024, 1, 1)))
	assert.True(t, bounded.Contains(date(2024, 6, 30)))
	assert.False(t, bounded.Contains(date(2024, 7, 1)))

	open := MustWindow(date(2024, 1, 1), nil)
	assert.True(t, open.Contains(date(2030, 1, 1)))
	assert.False(t, open.Contains(date(2023, 12, 31)))
}

func TestWindow_Overlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Window
		want bool
	}{
		{
			name: "disjoint",
			a:    MustWindow(date(2024, 1, 1), datePtr(2024, 6, 30)),
			b:    MustWindow(date(2024, 7, 1), datePtr(2024, 12, 31)),
			want: false,
		},
		{
			name: "partial overlap",
			a:    MustWindow(date(2024, 1, 1), datePtr(2024, 6, 30)),
			b:    MustWindow(date(2024, 6, 15), datePtr(2024, 12, 31)),
			want: true,
		},
		{
			name: "touching at inclusive boundary",
			a:    MustWindow(date(2024, 1, 1), datePtr(2024, 6, 30)),
			b:    MustWindow(date(2024, 6, 30), datePtr(2024, 12, 31)),
			want: true,
		},
		{
			name: "contained",
			a:    MustWindow(date(2024, 1, 1), datePtr(2024, 12, 31)),
			b:    MustWindow(date(2024, 3, 1), datePtr(2024, 4, 1)),
			want: true,
		},
		{
			name: "open ended vs later bounded",
			a:    MustWindow(date(2024, 1, 1), nil),
			b:    MustWindow(date(2030, 1, 1), datePtr(2030, 12, 31)),
			want: true,
		},
		{
			name: "bounded ends before open ended starts",
			a:    MustWindow(date(2024, 1, 1), datePtr(2024, 6, 30)),
			b:    MustWindow(date(2024, 7, 1), nil),
			want: false,
		},
		{
			name: "two open ended always overlap",
			a:    MustWindow(date(2024, 1, 1), nil),
			b:    MustWindow(date(2050, 1, 1), nil),
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestWindow_ExpiredBy(t *testing.T) {
	w := MustWindow(date(2024, 1, 1), datePtr(2024, 6, 30))
	assert.False(t, w.ExpiredBy(date(2024, 6, 30)))
	assert.True(t, w.ExpiredBy(date(2024, 7, 1)))
	assert.False(t, MustWindow(date(2024, 1, 1), nil).ExpiredBy(date(2100, 1, 1)))
}
