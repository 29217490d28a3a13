package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/promptform/promptform/pkg/classify"
	"github.com/promptform/promptform/pkg/classify/gemini"
	"github.com/promptform/promptform/pkg/model"
	"github.com/promptform/promptform/pkg/present"
	"github.com/promptform/promptform/pkg/renderers/tui"
)

func main() {
	prompt := flag.String("prompt", "", "describe the form you need")
	useExternal := flag.Bool("external", false, "let an external generator draft the form when no template matches")
	output := flag.String("output", present.FileName, "path for the JSON export")
	flag.Parse()

	ctx := context.Background()

	spec, err := buildSpec(ctx, *prompt, *useExternal)
	if err != nil {
		if errors.Is(err, classify.ErrEmptyPrompt) {
			log.Fatal("Please describe what form you need.")
		}
		log.Fatalf("Failed to generate form: %v", err)
	}

	collector, err := tui.New()
	if err != nil {
		log.Fatalf("Failed to start terminal UI: %v", err)
	}

	state, submitted, err := collector.Collect(ctx, spec, nil)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("Aborted; nothing written.")
			return
		}
		log.Fatalf("Failed to collect values: %v", err)
	}
	if !submitted {
		fmt.Println("Submission declined; nothing written.")
		return
	}

	record := model.NewSubmissionRecord(spec, state, time.Now().UTC())

	fmt.Println()
	fmt.Print(present.HumanView(record))

	payload, err := present.ExportJSON(record)
	if err != nil {
		log.Fatalf("Failed to export submission: %v", err)
	}
	if err := os.WriteFile(*output, payload, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	fmt.Printf("Submission written to %s\n", *output)
}

func buildSpec(ctx context.Context, prompt string, useExternal bool) (model.FormSpec, error) {
	var options []classify.Option
	if useExternal {
		generator, err := gemini.New(ctx, os.Getenv("GEMINI_API_KEY"),
			gemini.WithModel(os.Getenv("GEMINI_MODEL")))
		if err != nil {
			return model.FormSpec{}, err
		}
		options = append(options, classify.WithGenerator(generator))
	}

	classifier, err := classify.New(options...)
	if err != nil {
		return model.FormSpec{}, err
	}
	return classifier.Classify(ctx, prompt, useExternal)
}
