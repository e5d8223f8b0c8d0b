package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/analysis"
	"github.com/resumatch/resumatch/internal/jobsearch"
	"github.com/resumatch/resumatch/internal/letter"
	"github.com/resumatch/resumatch/internal/logger"
)

const (
	PromptReport      = "Show match report"
	PromptDraftLetter = "Draft a cover letter"
	PromptDumpToFile  = "Dump jobs to file"
	PromptExit        = "Exit"

	jobsDumpFile = "resumatch-jobs.json"
)

var errExit = errors.New("exit requested")

var jobsPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptDraftLetter, PromptDumpToFile, PromptExit},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Find job postings on the web and rank them against a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		jobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringP("resume", "r", "", "path to the resume text file")
	jobsCmd.Flags().StringP("role", "R", "", "role to search for, e.g. 'backend engineer'")
	jobsCmd.Flags().StringP("location", "l", "", "optional location filter")
	jobsCmd.Flags().BoolP("no-interactive", "y", false, "print the ranked jobs and exit without the action prompt")
}

func jobs(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	resumeText, err := readTextFile(cmd.Flag("resume").Value.String(), "resume")
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	role := cmd.Flag("role").Value.String()
	if role == "" {
		logger.Fatal("role is required", zap.String("hint", "pass --role 'backend engineer'"))
	}

	analyzer, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building analyzer", zap.Error(err))
	}

	searchClient, err := newSearcher(config.Search, logger)
	if err != nil {
		logger.Fatal("building search client", zap.Error(err))
	}

	var searcher jobsearch.Searcher
	if searchClient != nil {
		searcher = searchClient
	}

	pipeline := jobsearch.New(searcher, analyzer, logger)

	logger.Info("starting the search", zap.String("role", role))

	result, err := pipeline.Find(ctx, role, cmd.Flag("location").Value.String(), resumeText)
	if err != nil {
		logger.Fatal("finding jobs", zap.Error(err))
	}

	if len(result.Jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"), zap.String("query", result.Query))
		return
	}

	printJobs(result)

	if cmd.Flag("no-interactive").Value.String() == "true" {
		return
	}

	for {
		_, action, err := jobsPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleJobsAction(ctx, action, result, resumeText, analyzer, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleJobsAction(ctx context.Context, action string, result *jobsearch.SearchResult, resumeText string, analyzer *analysis.Analyzer, logger *zap.Logger) error {
	switch action {
	case PromptReport:
		job, err := selectJob(result)
		if err != nil {
			return err
		}
		pretty, _ := json.MarshalIndent(job, "", "  ")
		fmt.Fprintln(os.Stdout, string(pretty))
		return nil
	case PromptDraftLetter:
		job, err := selectJob(result)
		if err != nil {
			return err
		}
		text, err := letter.NewWriter(analyzer, logger).Draft(ctx, job.Title+"\n\n"+job.Description, resumeText)
		if err != nil {
			return fmt.Errorf("drafting cover letter: %w", err)
		}
		fmt.Fprintln(os.Stdout, text)
		return nil
	case PromptDumpToFile:
		pretty, _ := json.MarshalIndent(result, "", "  ")
		if err := os.WriteFile(jobsDumpFile, pretty, 0o600); err != nil {
			return fmt.Errorf("dumping jobs: %w", err)
		}
		logger.Info("jobs dumped", zap.String("file", jobsDumpFile))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

// selectJob asks the user to pick one listing from the ranked results.
func selectJob(result *jobsearch.SearchResult) (*jobsearch.Listing, error) {
	labels := make([]string, 0, len(result.Jobs))
	for _, job := range result.Jobs {
		labels = append(labels, fmt.Sprintf("%s at %s (score %d)", job.Title, job.Company, job.Score))
	}

	idx, _, err := (&promptui.Select{
		Label: "Pick a job",
		Items: labels,
	}).Run()
	if err != nil {
		return nil, err
	}
	return &result.Jobs[idx], nil
}

func printJobs(result *jobsearch.SearchResult) {
	fmt.Fprintf(os.Stdout, "query: %s\nfound: %d (showing %d)\n\n", result.Query, result.TotalFound, len(result.Jobs))
	for i, job := range result.Jobs {
		sample := ""
		if jobsearch.IsMockURL(job.URL) {
			sample = " [sample]"
		}
		fmt.Fprintf(os.Stdout, "%d. %s at %s (score %d)%s\n   %s\n", i+1, job.Title, job.Company, job.Score, sample, job.URL)
	}
	fmt.Fprintln(os.Stdout)
}
