package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaswanthpalla/resume-pilot/internal/config"
	"github.com/jaswanthpalla/resume-pilot/internal/llm"
	"github.com/jaswanthpalla/resume-pilot/internal/pipeline"
	"github.com/jaswanthpalla/resume-pilot/internal/profile"
	"github.com/jaswanthpalla/resume-pilot/internal/types"
)

var (
	genConfigPath      string
	genProfilePath     string
	genJobTitle        string
	genCompany         string
	genDescription     string
	genDescriptionFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume and cover letter for one job posting",
	Long: `Runs the full generation flow once: fetches required skills from the
extraction server, generates the documents with Gemini, and writes
the resume and cover letter to the configured output paths.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", config.DefaultPath, "Path to config.yaml")
	generateCmd.Flags().StringVar(&genProfilePath, "profile", profile.DefaultPath, "Path to the user profile JSON")
	generateCmd.Flags().StringVarP(&genJobTitle, "job-title", "t", "", "Job title (required)")
	generateCmd.Flags().StringVarP(&genCompany, "company", "c", "", "Company name (required)")
	generateCmd.Flags().StringVarP(&genDescription, "description", "d", "", "Job description text (mutually exclusive with --description-file)")
	generateCmd.Flags().StringVar(&genDescriptionFile, "description-file", "", "Path to a file holding the job description")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(genConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	description := genDescription
	if genDescriptionFile != "" {
		if description != "" {
			return fmt.Errorf("--description and --description-file are mutually exclusive")
		}
		data, err := os.ReadFile(genDescriptionFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		description = string(data)
	}

	userProfile, err := profile.NewStore(genProfilePath).Load()
	if err != nil {
		return fmt.Errorf("failed to load user profile: %w", err)
	}

	job := types.JobPosting{
		Title:       genJobTitle,
		Company:     genCompany,
		Description: description,
	}

	ctx := context.Background()
	generator, err := llm.NewGeminiClient(ctx, llm.DefaultConfig().WithModel(cfg.Gemini.Model), cfg.Gemini.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer generator.Close()

	result, err := pipeline.Generate(ctx, userProfile, job, pipeline.Options{
		Extractor:    newExtractor(cfg),
		Generator:    generator,
		TemplatePath: cfg.PromptTemplate,
		Output:       cfg.Output,
		OnProgress: func(event pipeline.ProgressEvent) {
			fmt.Printf("[%3d%%] %s\n", event.Percent, event.Message)
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Resume written to %s\n", result.ResumePath)
	fmt.Printf("Cover letter written to %s\n", result.CoverLetterPath)
	return nil
}
