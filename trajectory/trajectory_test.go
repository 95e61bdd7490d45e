package trajectory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReflection(t *testing.T) {
	t.Run("normalizing the raw score", func(t *testing.T) {
		require.Equal(t, 0.6, Reflection{Score: 6}.Normalized())
		require.Equal(t, 0.0, Reflection{Score: 0}.Normalized())
		require.Equal(t, 1.0, Reflection{Score: MaxScore}.Normalized())
	})

	t.Run("validating the score range", func(t *testing.T) {
		require.NoError(t, Reflection{Score: 0}.Validate())
		require.NoError(t, Reflection{Score: 10}.Validate())
		require.Error(t, Reflection{Score: -1}.Validate(), "Negative scores are out of range")
		require.Error(t, Reflection{Score: 11}.Validate(), "Scores above the scale are out of range")
	})

	t.Run("rendering as an entry", func(t *testing.T) {
		entry := Reflection{Critique: "solid reasoning", Score: 7}.AsEntry()

		require.Equal(t, RoleUser, entry.Role, "Reflections read back as user input")
		require.Contains(t, entry.Content, "solid reasoning")
		require.Contains(t, entry.Content, "7/10")
	})
}

func TestTrajectory(t *testing.T) {
	t.Run("last entry of an empty trajectory", func(t *testing.T) {
		_, ok := Trajectory{}.Last()
		require.False(t, ok)
	})

	t.Run("ends with assistant", func(t *testing.T) {
		call := ToolCall{ID: "1", Name: "fetch"}

		answered := Trajectory{User("question"), Assistant("answer")}
		require.True(t, answered.EndsWithAssistant())

		dangling := Trajectory{Assistant("checking", call), ToolResult(call, "data")}
		require.False(t, dangling.EndsWithAssistant(),
			"A trajectory ending in a tool result is not a terminal answer")

		require.False(t, Trajectory{}.EndsWithAssistant())
	})

	t.Run("rendering a transcript", func(t *testing.T) {
		call := ToolCall{ID: "1", Name: "fetch", Arguments: `{"url":"x"}`}
		trajectory := Trajectory{
			Assistant("let me check", call),
			ToolResult(call, "42"),
			Assistant("the answer is 42"),
		}

		got := trajectory.String()

		require.Contains(t, got, "assistant: let me check")
		require.Contains(t, got, `call[fetch]: {"url":"x"}`)
		require.Contains(t, got, "tool[fetch]: 42")
		require.Contains(t, got, "assistant: the answer is 42")
	})
}
