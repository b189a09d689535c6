package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/progress"
	"github.com/drillhq/drill/internal/runner"
)

// cmdRun grades a directory of submissions against a pack
func cmdRun(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: drill run <pack> --dir <path> [--hints n]")
	}

	packID := args[0]
	dir := "."
	hints := 0

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a path")
			}
			i++
			dir = args[i]
		case "--hints":
			if i+1 >= len(args) {
				return fmt.Errorf("--hints requires a number")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 {
				return fmt.Errorf("--hints must be a non-negative number")
			}
			hints = n
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ids, err := a.registry.PackIDs(packID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := runner.New(a.logger)
	var metas []domain.Metadata

	for _, id := range ids {
		ex, err := a.registry.Get(id)
		if err != nil {
			return err
		}
		for i := 0; i < hints; i++ {
			if _, ok := ex.NextHint(); !ok {
				break
			}
		}
		run.Add(ex)
		metas = append(metas, ex.Meta())
	}

	fmt.Printf("Running %d exercises from %s\n\n", len(ids), packID)

	for i, ex := range run.Exercises() {
		id := ids[i]
		// A missing file is graded as an empty submission so the attempt
		// is still recorded against this exercise.
		code, err := readSubmission(dir, packID, id)
		if err != nil {
			a.logger.Warn("grading empty submission", "exercise", id, "reason", err)
			code = ""
		}

		result, err := run.Run(ctx, ex, code)
		if err != nil {
			var setupErr *domain.SetupError
			if errors.As(err, &setupErr) {
				return fmt.Errorf("setup failed for %s: %w", id, err)
			}
			return err
		}
		renderResult(id, result)
	}

	renderReport(progress.Build(metas, run.Results()))
	return nil
}

// readSubmission locates the learner's file for an exercise: <dir>/<slug>.go,
// where slug is the exercise ID without the pack prefix.
func readSubmission(dir, packID, id string) (string, error) {
	slug := strings.TrimPrefix(id, packID+"/")
	path := filepath.Join(dir, filepath.FromSlash(slug)+".go")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no submission at %s", path)
		}
		return "", err
	}
	return string(data), nil
}

func renderResult(id string, result *domain.Result) {
	status := "PASS"
	if !result.Success {
		status = "FAIL"
	}

	fmt.Printf("--- %s\n", id)
	fmt.Printf("    %s  score %s %.0f%%  time %s  hints %d\n",
		status, renderProgressBar(result.Score, 20), result.Score*100,
		result.TimeTaken.Round(10*time.Millisecond), result.HintsUsed)
	for _, msg := range result.Errors {
		fmt.Printf("    - %s\n", msg)
	}
	fmt.Println()
}

func renderReport(report *progress.Report) {
	fmt.Println("Progress Report")
	fmt.Println("===============")

	if report.Empty {
		fmt.Println(report.Message)
		return
	}

	fmt.Printf("Attempts:      %d\n", report.Attempts)
	fmt.Printf("Successful:    %d (%.1f%%)\n", report.Successful, report.SuccessRate*100)
	fmt.Printf("Average score: %.0f%%\n", report.AvgScore*100)
	fmt.Printf("Average time:  %s\n", report.AvgTime.Round(10*time.Millisecond))
	fmt.Printf("Hints used:    %d\n", report.HintsUsed)

	if len(report.Levels) > 0 {
		fmt.Println("\nBy Level")
		fmt.Println("--------")
		for _, level := range report.Levels {
			bar := renderProgressBar(level.AvgScore, 20)
			fmt.Printf("%-25s %s %.0f%%  %d/%d completed, %d passed\n",
				level.Level, bar, level.AvgScore*100,
				level.Completed, level.Total, level.Successful)
		}
	}
}
