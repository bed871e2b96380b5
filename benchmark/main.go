// Package main measures workwell report latency on seeded record stores.
// It seeds SQLite databases of several sizes, then runs each report command
// several times without a cache and with a SQLite cache, treating the first
// cached run as cold and averaging the rest as warm. Results go to a CSV file.
//
// Prerequisites:
// - workwell binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the seeded databases (defaults to a temp dir)
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/huangsam/workwell/internal/iocache"
	"github.com/huangsam/workwell/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Sectors     []string
	Datasets    map[string]int // name -> records per sector
	Commands    [][]string
}

// datasetOrder keeps the output stable.
var datasetOrder = []string{"small", "medium", "large"}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "workwell-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sectors:     []string{"Comercial", "Financeiro", "Operações", "RH", "TI"},
		Datasets:    map[string]int{"small": 100, "medium": 2000, "large": 20000},
		Commands: [][]string{
			{"heatmap"},
			{"heatmap", "--metric", "motivation", "--sort-metric"},
			{"stats"},
		},
	}

	if _, err := exec.LookPath("workwell"); err != nil {
		fmt.Printf("Prerequisites check failed: workwell binary not found in PATH\n")
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// seedDataset writes one SQLite record database with perSector records in every sector.
func seedDataset(ctx context.Context, path string, sectors []string, perSector int) error {
	_ = os.Remove(path)
	store, err := iocache.NewRecordStore(schema.SQLiteBackend, path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rng := rand.New(rand.NewPCG(42, uint64(perSector)))
	now := time.Now().UTC()
	var employee int64
	for _, name := range sectors {
		sector, err := store.AddSector(ctx, 1, name, "")
		if err != nil {
			return err
		}
		for range perSector {
			employee++
			_, err := store.InsertRecord(ctx, schema.Record{
				EmployeeID: employee,
				CompanyID:  1,
				SectorID:   sector.ID,
				Ratings: schema.Ratings{
					Stress:     rng.IntN(11),
					Happiness:  rng.IntN(11),
					Anxiety:    rng.IntN(11),
					Motivation: rng.IntN(11),
				},
				CreatedAt: now.Add(-time.Duration(rng.IntN(60*24)) * time.Hour),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// runBenchmarks seeds every dataset and times each command against it.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult
	ctx := context.Background()

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, name := range datasetOrder {
		perSector := config.Datasets[name]
		recordDB := filepath.Join(config.WorkDir, name+".records.db")
		fmt.Printf("Seeding %s (%d records)\n", name, perSector*len(config.Sectors))
		if err := seedDataset(ctx, recordDB, config.Sectors, perSector); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", name, err)
		}

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, name, recordDB, command))
		}
	}
	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, dataset, recordDB string, command []string) BenchmarkResult {
	label := fmt.Sprint(command)
	fmt.Printf("Running %s on %s\n", label, dataset)

	cacheDB := filepath.Join(config.WorkDir, dataset+".cache.db")
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, recordDB, cacheDB, command, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	_ = os.Remove(cacheDB)
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     label,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a workwell command numRuns times and returns the cold time and warm times.
func runBenchmark(config BenchmarkConfig, recordDB, cacheDB string, command []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, command...)
	args = append(args,
		"--company", "1",
		"--days", "90",
		"--output", "json",
		"--record-db-connect", recordDB,
		"--cache-backend", cacheBackend,
	)
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", cacheDB)
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		err := exec.CommandContext(ctx, "workwell", args...).Run()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("workwell_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, name := range datasetOrder {
		fmt.Printf("%s:\n", name)
		for _, result := range results {
			if result.Dataset == name {
				fmt.Printf("  %-40s: No-cache: %s, Cold: %s, Warm: %s\n", result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
