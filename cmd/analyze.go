package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the resume text file")
	analyzeCmd.Flags().StringP("job", "J", "", "path to the job description text file")
}

func analyze(cmd *cobra.Command) {
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
	jobText, err := readTextFile(cmd.Flag("job").Value.String(), "job description")
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	analyzer, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building analyzer", zap.Error(err))
	}

	result, err := analyzer.Analyze(ctx, jobText, resumeText)
	if err != nil {
		logger.Fatal("analyzing", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, string(pretty))
}
