package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrequencyGridDecade(t *testing.T) {
	points := FrequencyGrid(1, 1e6, 7, Decade)
	require.Len(t, points, 7)
	require.InDelta(t, 1, points[0], 1e-9)
	require.InDelta(t, 1e6, points[6], 1e-3)
	require.InDelta(t, 1000, points[3], 1e-6)
}

func TestFrequencyGridLinear(t *testing.T) {
	points := FrequencyGrid(0, 100, 5, Linear)
	require.Equal(t, []float64{0, 25, 50, 75, 100}, points)
}

func TestFrequencyGridSinglePoint(t *testing.T) {
	points := FrequencyGrid(42, 42, 1, Decade)
	require.Equal(t, []float64{42}, points)
}

func TestValidateFrequenciesRejectsEmpty(t *testing.T) {
	require.ErrorIs(t, validateFrequencies(nil), ErrDimensionMismatch)
}

func TestValidateFrequenciesRejectsNonMonotonic(t *testing.T) {
	require.ErrorIs(t, validateFrequencies([]float64{1, 5, 3}), ErrDimensionMismatch)
}

func TestValidateFrequenciesRejectsNonPositive(t *testing.T) {
	require.ErrorIs(t, validateFrequencies([]float64{-1, 5}), ErrDimensionMismatch)
}

func TestSweepPreservesOrderRegardlessOfCompletionOrder(t *testing.T) {
	freqs := make([]float64, 200)
	for i := range freqs {
		freqs[i] = float64(i + 1)
	}

	results, err := sweep(context.Background(), freqs, func(_ context.Context, f float64) (float64, error) {
		return f * 2, nil
	}, nil)
	require.NoError(t, err)

	for i, f := range freqs {
		require.Equal(t, f*2, results[i])
	}
}

func TestSweepPropagatesFirstError(t *testing.T) {
	freqs := []float64{1, 2, 3, 4, 5}
	sentinel := errors.New("boom")

	_, err := sweep(context.Background(), freqs, func(_ context.Context, f float64) (int, error) {
		if f == 3 {
			return 0, sentinel
		}
		return int(f), nil
	}, nil)
	require.ErrorIs(t, err, sentinel)
}

func TestSweepReportsProgress(t *testing.T) {
	freqs := make([]float64, 10)
	for i := range freqs {
		freqs[i] = float64(i + 1)
	}

	var calls int
	_, err := sweep(context.Background(), freqs, func(_ context.Context, f float64) (float64, error) {
		return f, nil
	}, func(done, total int) {
		calls++
		require.Equal(t, 10, total)
	})
	require.NoError(t, err)
	require.Equal(t, 10, calls)
}
