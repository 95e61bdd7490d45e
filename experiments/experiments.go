package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lats/agent"
	"lats/experiments/metrics"
	"lats/searcher"
	"lats/tools"
)

const (
	NumRuns     = 30 // Per configuration
	Task        = "synthetic benchmark task"
	SolveChance = 0.02 // Per-candidate chance of a scripted solved verdict
)

var breadthConfigs = []metrics.RunConfig{
	{ID: 1, Breadth: 2, MaxDepth: 5, Seed: 1},
	{ID: 2, Breadth: 3, MaxDepth: 5, Seed: 2},
	{ID: 3, Breadth: 5, MaxDepth: 5, Seed: 3},
	{ID: 4, Breadth: 8, MaxDepth: 5, Seed: 4},
	{ID: 5, Breadth: 13, MaxDepth: 5, Seed: 5},
}

var depthConfigs = []metrics.RunConfig{
	{ID: 1, Breadth: 5, MaxDepth: 2, Seed: 1},
	{ID: 2, Breadth: 5, MaxDepth: 3, Seed: 2},
	{ID: 3, Breadth: 5, MaxDepth: 4, Seed: 3},
	{ID: 4, Breadth: 5, MaxDepth: 5, Seed: 4},
	{ID: 5, Breadth: 5, MaxDepth: 6, Seed: 5},
}

// RunBreadthExperiment measures how the expansion breadth affects
// solve rate and tree size under a scripted agent.
func RunBreadthExperiment() {
	runExperiment("breadth_to_quality", breadthConfigs)
}

// RunDepthExperiment measures how the depth bound affects solve rate
// and run time under a scripted agent.
func RunDepthExperiment() {
	runExperiment("depth_to_quality", depthConfigs)
}

func runExperiment(name string, configs []metrics.RunConfig) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteRunConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store run configs: %v", err))
	}

	executor := tools.NewExecutor(tools.NewRegistry())

	log.Info().Msgf("starting %s experiment...", name)

	records := []metrics.RunRecord{}
	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(configs), config)

		for i := 0; i < NumRuns; i++ {
			// A fresh seed per run keeps runs independent but
			// reproducible
			scripted := agent.NewScripted(config.Seed+uint64(i)*1000, SolveChance)
			lats := searcher.NewLATS(scripted, executor, scripted,
				searcher.WithBreadth(config.Breadth),
				searcher.WithMaxDepth(config.MaxDepth),
				searcher.WithMetrics(),
			)

			result, err := lats.Run(context.Background(), Task)
			if err != nil {
				log.Error().Err(err).Msgf("run %d of config %d failed", i+1, config.ID)
				continue
			}
			records = append(records, metrics.NewRunRecord(config.ID, Task, result.Metric))
		}

		log.Info().Msgf("completed config %d of %d", ci+1, len(configs))
	}

	err = writer.WriteRunRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to store run records: %v", err))
	}

	log.Info().Msgf("completed %s experiment", name)
}
