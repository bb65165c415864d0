package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/worker"
)

func newTestFormatter(jsonOutput, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewFormatter(jsonOutput, quiet, &out, &errOut), &out, &errOut
}

func TestSuccess_Modes(t *testing.T) {
	project := models.Project{ID: "p1", Name: "Alpha"}
	human := func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "human Alpha")
		return err
	}

	t.Run("human", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, false)
		require.NoError(t, f.Success(project, human))
		assert.Equal(t, "human Alpha\n", out.String())
	})

	t.Run("json envelope", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		require.NoError(t, f.Success(project, human))

		var got struct {
			Success bool           `json:"success"`
			Data    models.Project `json:"data"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.True(t, got.Success)
		assert.Equal(t, project, got.Data)
	})

	t.Run("quiet entity", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		require.NoError(t, f.Success(project, human))
		assert.Equal(t, "p1\n", out.String())
	})

	t.Run("quiet list", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		list := List[models.Task]{{ID: "t1"}, {ID: "t2"}}
		require.NoError(t, f.Success(list, nil))
		assert.Equal(t, "t1\nt2\n", out.String())
	})

	t.Run("quiet empty list prints nothing", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		require.NoError(t, f.Success(List[models.Task]{}, nil))
		assert.Empty(t, out.String())
	})

	t.Run("quiet wins over json", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, true)
		require.NoError(t, f.Success([]string{"a", "b"}, nil))
		assert.Equal(t, "a\nb\n", out.String())
	})
}

func TestErrorWithSuggestion(t *testing.T) {
	t.Run("human goes to stderr", func(t *testing.T) {
		f, out, errOut := newTestFormatter(false, false)
		require.NoError(t, f.ErrorWithSuggestion("X", "broken", "try again"))
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "Error: broken")
		assert.Contains(t, errOut.String(), "Suggestion: try again")
	})

	t.Run("json omits an empty suggestion", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		require.NoError(t, f.Error("X", "broken"))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, false, got["success"])
		assert.Equal(t, map[string]any{"code": "X", "message": "broken"}, got["error"])
	})
}

func TestFail_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantName string
	}{
		{"api 404", fmt.Errorf("failed: %w", &api.StatusError{StatusCode: 404}), ExitNotFound, "NOT_FOUND"},
		{"store miss", fmt.Errorf("task x: %w", ErrNotFound), ExitNotFound, "NOT_FOUND"},
		{"bad status", fmt.Errorf("%w %q", models.ErrInvalidStatus, "Paused"), ExitValidation, "VALIDATION_ERROR"},
		{"reserved field", worker.ErrReservedField, ExitValidation, "VALIDATION_ERROR"},
		{"bad field", fmt.Errorf("%w: x", ErrInvalidField), ExitDataErr, "DATA_ERROR"},
		{"bad config", fmt.Errorf("%w: backend", config.ErrInvalidConfig), ExitDataErr, "DATA_ERROR"},
		{"anything else", errors.New("Failed to fetch projects"), ExitError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, _ := newTestFormatter(true, false)
			err := f.Fail(tt.err)

			assert.Equal(t, tt.wantCode, ExitCodeOf(err))
			assert.ErrorIs(t, err, tt.err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			assert.Equal(t, tt.wantName, got["error"].(map[string]any)["code"])
		})
	}
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, ExitUsage, ExitCodeOf(errors.New(`required flag(s) "name" not set`)))
	assert.Equal(t, ExitNotFound, ExitCodeOf(fmt.Errorf("wrapped: %w", &CommandError{Code: ExitNotFound})))

	f, _, _ := newTestFormatter(false, false)
	assert.Equal(t, ExitUsage, ExitCodeOf(f.Usage("nothing to update", "")))
}
