package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/letter"
	"github.com/resumatch/resumatch/internal/logger"
)

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Draft a cover letter for a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		draftLetter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(letterCmd)

	letterCmd.Flags().StringP("resume", "r", "", "path to the resume text file")
	letterCmd.Flags().StringP("job", "J", "", "path to the job description text file")
}

func draftLetter(cmd *cobra.Command) {
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

	text, err := letter.NewWriter(analyzer, logger).Draft(ctx, jobText, resumeText)
	if err != nil {
		logger.Fatal("drafting cover letter", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, text)
}
