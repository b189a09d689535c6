package main

import (
	"fmt"
	"strconv"
	"strings"
)

// cmdExercise manages exercises
func cmdExercise(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Exercise commands:

  drill exercise list              List all exercise packs
  drill exercise info <id>         Show exercise details
  drill exercise template <id>     Print the starter template
  drill exercise solution <id>     Print the reference solution
  drill exercise hints <id> [n]    Reveal the first n hints`)
		return nil
	}

	switch args[0] {
	case "list":
		return cmdExerciseList()
	case "info":
		if len(args) < 2 {
			return fmt.Errorf("exercise ID required (e.g., ai-v1/basics/first-contact)")
		}
		return cmdExerciseInfo(args[1])
	case "template":
		if len(args) < 2 {
			return fmt.Errorf("exercise ID required")
		}
		return cmdExerciseTemplate(args[1])
	case "solution":
		if len(args) < 2 {
			return fmt.Errorf("exercise ID required")
		}
		return cmdExerciseSolution(args[1])
	case "hints":
		if len(args) < 2 {
			return fmt.Errorf("exercise ID required")
		}
		count := 1
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil || n < 1 {
				return fmt.Errorf("hint count must be a positive number")
			}
			count = n
		}
		return cmdExerciseHints(args[1], count)
	default:
		return fmt.Errorf("unknown exercise command: %s", args[0])
	}
}

func cmdExerciseList() error {
	a, err := newApp()
	if err != nil {
		return err
	}

	fmt.Println("Available Exercise Packs:")
	for _, pack := range a.registry.Packs() {
		fmt.Printf("  %s (%s)\n", pack.Name, pack.ID)
		fmt.Printf("    %s\n", pack.Description)
		fmt.Printf("    Exercises: %d\n\n", len(pack.ExerciseIDs))

		for _, id := range pack.ExerciseIDs {
			def, err := a.registry.Definition(id)
			if err != nil {
				return err
			}
			fmt.Printf("    %-40s %s / %s\n", id, def.Level, def.Metadata().Difficulty)
		}
		fmt.Println()
	}

	fmt.Println("Use 'drill exercise info <id>' for details")
	return nil
}

func cmdExerciseInfo(id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	def, err := a.registry.Definition(id)
	if err != nil {
		return err
	}
	meta := def.Metadata()

	fmt.Printf("Exercise: %s\n\n", meta.Name)
	fmt.Printf("Level:      %s\n", meta.Level)
	fmt.Printf("Difficulty: %s\n", meta.Difficulty)
	fmt.Printf("Max hints:  %d\n", def.MaxHints)
	fmt.Printf("\nDescription:\n%s\n", meta.Description)
	if len(meta.Objectives) > 0 {
		fmt.Println("\nObjectives:")
		for _, obj := range meta.Objectives {
			fmt.Printf("  - %s\n", obj)
		}
	}
	return nil
}

func cmdExerciseTemplate(id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	def, err := a.registry.Definition(id)
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimRight(def.Template, "\n"))
	return nil
}

func cmdExerciseSolution(id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	def, err := a.registry.Definition(id)
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimRight(def.Solution, "\n"))
	return nil
}

func cmdExerciseHints(id string, count int) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ex, err := a.registry.Get(id)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		hint, ok := ex.NextHint()
		if !ok {
			if i == 0 {
				fmt.Println("No hints available.")
			} else {
				fmt.Printf("\nNo more hints (%d of %d used).\n", ex.HintsUsed(), ex.MaxHints())
			}
			return nil
		}
		fmt.Printf("Hint %d: %s\n", i+1, hint)
	}
	return nil
}
