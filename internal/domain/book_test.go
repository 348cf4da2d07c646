package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_TakeAndGive(t *testing.T) {
	a := Availability{Total: 2, Available: 1}

	require.True(t, a.Take())
	assert.Equal(t, 0, a.Available)
	assert.False(t, a.InStock())

	assert.False(t, a.Take(), "cannot take below zero")
	assert.Equal(t, 0, a.Available)

	a.Give()
	a.Give()
	a.Give()
	assert.Equal(t, 2, a.Available, "give is capped at total")
	require.NoError(t, a.Validate())
}

func TestAvailability_Validate(t *testing.T) {
	assert.NoError(t, Availability{Total: 3, Available: 3}.Validate())
	assert.NoError(t, Availability{}.Validate())
	assert.Error(t, Availability{Total: 1, Available: 2}.Validate())
	assert.Error(t, Availability{Total: -1}.Validate())
}

func TestAvailability_Resize(t *testing.T) {
	tests := []struct {
		name  string
		start Availability
		total int
		want  Availability
	}{
		{"grow keeps lent copies", Availability{Total: 5, Available: 3}, 8, Availability{Total: 8, Available: 6}},
		{"shrink keeps lent copies", Availability{Total: 5, Available: 3}, 4, Availability{Total: 4, Available: 2}},
		{"shrink below lent clamps to zero", Availability{Total: 5, Available: 1}, 2, Availability{Total: 2, Available: 0}},
		{"negative total", Availability{Total: 5, Available: 5}, -3, Availability{Total: 0, Available: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.start
			a.Resize(tt.total)
			assert.Equal(t, tt.want, a)
			assert.NoError(t, a.Validate())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Run("decodes date only", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2023-01-15"`), &d))
		assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), d.Time)
	})

	t.Run("decodes rfc3339", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-15T10:00:00Z"`), &d))
		assert.Equal(t, 10, d.Hour())
	})

	t.Run("null and empty are zero", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"15/01/2023"`), &d))
	})

	t.Run("encodes midnight as date only", func(t *testing.T) {
		out, err := json.Marshal(NewDate("2020-09-08"))
		require.NoError(t, err)
		assert.JSONEq(t, `"2020-09-08"`, string(out))
	})
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		page, limit, total int
		wantStart, wantEnd int
		wantNext, wantPrev bool
		wantTotalPages     int
	}{
		{"first page", 1, 12, 60, 0, 12, true, false, 5},
		{"last full page", 5, 12, 60, 48, 60, false, true, 5},
		{"partial last page", 3, 25, 60, 50, 60, false, true, 3},
		{"past the end", 7, 12, 60, 0, 0, false, true, 5},
		{"empty set", 1, 10, 0, 0, 0, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			start, end := p.Window()

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
		})
	}
}
