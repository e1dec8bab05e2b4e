package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/printwatch"
	"github.com/fwojciec/printwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ResultWriter is expected
	var _ printwatch.ResultWriter = &mock.ResultWriter{}
}

func TestResultWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteResultFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *printwatch.ExtractionResult
		w := &mock.ResultWriter{
			WriteResultFn: func(_ context.Context, result *printwatch.ExtractionResult) error {
				calledWith = result
				return nil
			},
		}

		mm := 1234.5
		result := &printwatch.ExtractionResult{
			SourceFile: "benchy.gcode",
			Slicer:     printwatch.SlicerPrusa,
			FilamentMM: &mm,
		}

		err := w.WriteResult(context.Background(), result)

		require.NoError(t, err)
		assert.Equal(t, result, calledWith)
	})
}
