package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"lats/trajectory"
)

func echoTool() Tool {
	return NewFunc("echo", "Echo the arguments back.", json.RawMessage(`{"type":"object"}`),
		func(ctx context.Context, arguments string) (string, error) {
			return "echo: " + arguments, nil
		})
}

func failingTool() Tool {
	return NewFunc("flaky", "Always fails.", json.RawMessage(`{"type":"object"}`),
		func(ctx context.Context, arguments string) (string, error) {
			return "", errors.New("upstream timeout")
		})
}

func TestRegistry(t *testing.T) {
	t.Run("lookup by name", func(t *testing.T) {
		registry := NewRegistry(echoTool(), failingTool())

		tool, ok := registry.Lookup("echo")
		require.True(t, ok)
		require.Equal(t, "echo", tool.Name())

		_, ok = registry.Lookup("missing")
		require.False(t, ok)
	})

	t.Run("rejecting duplicate names", func(t *testing.T) {
		registry := NewRegistry(echoTool())
		require.Error(t, registry.Register(echoTool()), "Duplicate registration should fail")
	})

	t.Run("listing in name order", func(t *testing.T) {
		registry := NewRegistry(failingTool(), echoTool())

		all := registry.All()

		require.Len(t, all, 2)
		require.Equal(t, "echo", all[0].Name())
		require.Equal(t, "flaky", all[1].Name())
	})
}

func TestExecutorExecute(t *testing.T) {
	t.Run("results align with the input calls", func(t *testing.T) {
		executor := NewExecutor(NewRegistry(echoTool()))
		calls := make([]trajectory.ToolCall, 8)
		for i := range calls {
			calls[i] = trajectory.ToolCall{
				ID:        fmt.Sprintf("call-%d", i),
				Name:      "echo",
				Arguments: fmt.Sprintf(`{"i":%d}`, i),
			}
		}

		results, err := executor.Execute(context.Background(), calls)

		require.NoError(t, err)
		require.Len(t, results, len(calls))
		for i, result := range results {
			require.Equal(t, trajectory.RoleTool, result.Role)
			require.Equal(t, calls[i].ID, result.ToolID, "Result %d should answer call %d", i, i)
			require.Equal(t, fmt.Sprintf(`echo: {"i":%d}`, i), result.Content)
		}
	})

	t.Run("a failed tool surfaces its error as content", func(t *testing.T) {
		executor := NewExecutor(NewRegistry(failingTool()))

		results, err := executor.Execute(context.Background(), []trajectory.ToolCall{
			{ID: "1", Name: "flaky"},
		})

		require.NoError(t, err, "A tool failure is a result, not an executor failure")
		require.Equal(t, "error: upstream timeout", results[0].Content)
	})

	t.Run("an unknown tool surfaces as content", func(t *testing.T) {
		executor := NewExecutor(NewRegistry())

		results, err := executor.Execute(context.Background(), []trajectory.ToolCall{
			{ID: "1", Name: "nonexistent"},
		})

		require.NoError(t, err)
		require.Equal(t, `error: unknown tool "nonexistent"`, results[0].Content)
	})

	t.Run("empty batch", func(t *testing.T) {
		executor := NewExecutor(NewRegistry(echoTool()))

		results, err := executor.Execute(context.Background(), nil)

		require.NoError(t, err)
		require.Empty(t, results)
	})

	t.Run("cancellation fails the batch", func(t *testing.T) {
		executor := NewExecutor(NewRegistry(echoTool()))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := executor.Execute(ctx, []trajectory.ToolCall{{ID: "1", Name: "echo"}})

		require.ErrorIs(t, err, context.Canceled)
	})
}
