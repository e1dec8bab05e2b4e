package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/printwatch"
	main "github.com/fwojciec/printwatch/cmd/printwatch"
	"github.com/fwojciec/printwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes result by ID", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		results := &mock.ResultService{
			DeleteResultFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: results,
		}

		cmd := &main.DeleteCmd{ID: "res-123"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "res-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted result")
	})

	t.Run("reports missing result", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			DeleteResultFn: func(_ context.Context, id string) error {
				return printwatch.Errorf(printwatch.ENOTFOUND, "result %q not found", id)
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: results,
		}

		cmd := &main.DeleteCmd{ID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, printwatch.ENOTFOUND, printwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
