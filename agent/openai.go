package agent

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"lats/tools"
	"lats/trajectory"
)

const generateSystemPrompt = "You are an AI assistant solving the " +
	"user's task one step at a time. You may call the provided tools " +
	"to gather information. When you have the complete answer, state " +
	"it directly."

const reflectSystemPrompt = `You are grading a candidate trajectory for the given task. ` +
	`Respond with a JSON object {"critique": string, "score": integer 0-10, "found_solution": boolean} ` +
	`where found_solution is true only if the trajectory fully answers the task.`

type OpenAIOption func(o *OpenAI)

func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		if model != "" {
			o.model = model
		}
	}
}

// WithRegistry exposes the registry's tools to the model during
// generation.
func WithRegistry(registry *tools.Registry) OpenAIOption {
	return func(o *OpenAI) {
		if registry != nil {
			o.tools = definitions(registry)
		}
	}
}

// OpenAI implements Generator and Evaluator over a chat-completion
// API: one multi-choice request per generation batch and one JSON-mode
// request per reflection.
type OpenAI struct {
	client *openai.Client
	model  string
	tools  []openai.Tool
}

func NewOpenAI(apiKey string, options ...OpenAIOption) *OpenAI {
	o := &OpenAI{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *OpenAI) Generate(ctx context.Context, task string, history trajectory.Trajectory, n int) ([]trajectory.Entry, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: generateSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: task},
	}
	messages = append(messages, chatMessages(history)...)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
		N:        n,
		Tools:    o.tools,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) != n {
		return nil, fmt.Errorf("want %d choices, got %d", n, len(resp.Choices))
	}

	entries := make([]trajectory.Entry, n)
	for i, choice := range resp.Choices {
		entries[i] = toEntry(choice.Message)
	}
	return entries, nil
}

func (o *OpenAI) Reflect(ctx context.Context, task string, candidate trajectory.Trajectory) (trajectory.Reflection, error) {
	prompt := fmt.Sprintf("Task:\n%s\n\nTrajectory:\n%s", task, candidate)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: reflectSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return trajectory.Reflection{}, fmt.Errorf("reflection completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return trajectory.Reflection{}, fmt.Errorf("reflection returned no choices")
	}

	return parseReflection(resp.Choices[0].Message.Content)
}

type reflectionPayload struct {
	Critique      string `json:"critique"`
	Score         int    `json:"score"`
	FoundSolution bool   `json:"found_solution"`
}

func parseReflection(content string) (trajectory.Reflection, error) {
	var payload reflectionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return trajectory.Reflection{}, fmt.Errorf("unparsable reflection %q: %w", content, err)
	}

	reflection := trajectory.Reflection{
		Critique:      payload.Critique,
		Score:         payload.Score,
		FoundSolution: payload.FoundSolution,
	}
	if err := reflection.Validate(); err != nil {
		return trajectory.Reflection{}, err
	}
	return reflection, nil
}

// chatMessages maps trajectory entries onto the wire message format.
func chatMessages(history trajectory.Trajectory) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, entry := range history {
		switch entry.Role {
		case trajectory.RoleAssistant:
			message := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: entry.Content,
			}
			for _, call := range entry.ToolCalls {
				message.ToolCalls = append(message.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
			messages[i] = message
		case trajectory.RoleTool:
			messages[i] = openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    entry.Content,
				Name:       entry.ToolName,
				ToolCallID: entry.ToolID,
			}
		default:
			messages[i] = openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: entry.Content,
			}
		}
	}
	return messages
}

func toEntry(message openai.ChatCompletionMessage) trajectory.Entry {
	calls := make([]trajectory.ToolCall, len(message.ToolCalls))
	for i, call := range message.ToolCalls {
		calls[i] = trajectory.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return trajectory.Assistant(message.Content, calls...)
}

func definitions(registry *tools.Registry) []openai.Tool {
	all := registry.All()
	defs := make([]openai.Tool, len(all))
	for i, tool := range all {
		defs[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		}
	}
	return defs
}
