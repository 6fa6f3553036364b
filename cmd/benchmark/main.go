package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/limaJavier/handbook/pkg/catalog"
	"github.com/limaJavier/handbook/pkg/requirements"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	catalogFile        = "../../test/data/coursesProcessed.json"
	resultsFile        = "benchmark_results.csv"
	defaultRepetitions = 100
)

type ResultType int

const (
	parsed ResultType = iota
	empty
	failed
)

var resultTypes = map[ResultType]string{
	parsed: "parsed",
	empty:  "empty",
	failed: "failed",
}

type BenchmarkResult struct {
	Course   string
	Raw      string
	Tokens   int
	Duration int64 // Mean nanoseconds per parse
	Result   ResultType
	Error    string
}

func main() {
	catalogPtr := flag.String("catalog", catalogFile, "Path to the processed course catalog")
	outPtr := flag.String("out", resultsFile, "Path to the CSV file where the results will be written")
	repetitionsPtr := flag.Int("repetitions", defaultRepetitions, "Number of parses averaged per requirement")
	flag.Parse()

	if *repetitionsPtr <= 0 {
		log.Fatalf("repetitions must be positive: %v", *repetitionsPtr)
	}

	rawCourses, err := catalog.RawCoursesFromJson(*catalogPtr)
	if err != nil {
		log.Fatalf("cannot read catalog: %v", err)
	}

	results := benchmark(rawCourses, *repetitionsPtr)

	file, err := os.Create(*outPtr)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}

	counts := lo.CountValuesBy(results, func(result BenchmarkResult) string { return resultTypes[result.Result] })
	log.WithFields(log.Fields{
		"courses": len(results),
		"parsed":  counts[resultTypes[parsed]],
		"empty":   counts[resultTypes[empty]],
		"failed":  counts[resultTypes[failed]],
		"file":    *outPtr,
	}).Info("benchmark finished")
}

// benchmark measures every course's requirement text, ordered by course code
func benchmark(rawCourses map[string]catalog.RawCourse, repetitions int) []BenchmarkResult {
	codes := lo.Keys(rawCourses)
	slices.Sort(codes)

	return lo.Map(codes, func(key string, _ int) BenchmarkResult {
		raw := rawCourses[key]
		log.WithField("course", raw.Code).Debug("benchmarking requirement")
		return measure(raw.Code, raw.RawRequirements, repetitions)
	})
}

func measure(course string, raw string, repetitions int) BenchmarkResult {
	result := BenchmarkResult{
		Course: course,
		Raw:    raw,
		Tokens: len(requirements.Tokenize(requirements.Clean(raw))),
	}

	var (
		parsedRequirements *requirements.Requirements
		err                error
	)
	start := time.Now()
	for range repetitions {
		parsedRequirements, err = requirements.New(raw)
	}
	result.Duration = time.Since(start).Nanoseconds() / int64(repetitions)

	switch {
	case err != nil:
		result.Result = failed
		result.Error = err.Error()
	case parsedRequirements.IsEmpty():
		result.Result = empty
	default:
		result.Result = parsed
	}
	return result
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Course", "Requirement", "Tokens", "Duration(ns)", "Result", "Error"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Course,
			result.Raw,
			fmt.Sprintf("%d", result.Tokens),
			fmt.Sprintf("%d", result.Duration),
			resultTypes[result.Result],
			result.Error,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
