package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"lats/agent"
	"lats/engine"
	"lats/experiments"
	"lats/searcher"
	"lats/tools"
)

func main() {
	if len(os.Args) > 1 {
		runSearch(strings.Join(os.Args[1:], " "))
		return
	}

	// Without a task, benchmark the search under a scripted agent
	experiments.RunBreadthExperiment()
}

func runSearch(task string) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is not set")
	}

	registry := tools.NewRegistry(fetchTool())
	llm := agent.NewOpenAI(apiKey, agent.WithRegistry(registry))
	eng := engine.New(llm, tools.NewExecutor(registry), llm, searcher.WithMetrics())

	trajectory, solved, err := eng.Run(context.Background(), task)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}

	fmt.Printf("solved: %v\n\n%s\n", solved, trajectory)
}

const fetchLimit = 64 << 10 // Cap tool output fed back into prompts

func fetchTool() tools.Tool {
	parameters := json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": {"type": "string", "description": "URL to fetch"}
		},
		"required": ["url"]
	}`)

	client := &http.Client{Timeout: 30 * time.Second}

	return tools.NewFunc("fetch", "Fetch a URL and return its body as text.", parameters,
		func(ctx context.Context, arguments string) (string, error) {
			var args struct {
				URL string `json:"url"`
			}
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return "", fmt.Errorf("bad arguments: %w", err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, args.URL, nil)
			if err != nil {
				return "", err
			}
			resp, err := client.Do(req)
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(io.LimitReader(resp.Body, fetchLimit))
			if err != nil {
				return "", err
			}
			return string(body), nil
		})
}
