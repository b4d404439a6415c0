package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamemath-labs/mlin/formatter"
	"github.com/gamemath-labs/mlin/internal"
	tt "github.com/gamemath-labs/mlin/internal/types"
	"github.com/gamemath-labs/mlin/lint"
)

var (
	ignoreRules    string
	lintJSONOutput bool
	outPath        string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		issues, err := lint.ProcessFiles(ctx, logger, engine, args, lint.ProcessFile)
		if err != nil {
			logger.Fatal("Error processing files", zap.Error(err))
		}

		if err := reportIssues(issues); err != nil {
			logger.Fatal("Error reporting issues", zap.Error(err))
		}

		if len(issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	lintCmd.Flags().BoolVar(&lintJSONOutput, "json", false, "Output results in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write output to file instead of stdout")
}

func reportIssues(issues []tt.Issue) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if lintJSONOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(groupByFile(issues))
	}

	issuesByFile := groupByFile(issues)
	var sortedFiles []string
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			fmt.Fprintf(out, "error reading source file %s: %v\n", filename, err)
			continue
		}
		fmt.Fprintln(out, formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode))
	}
	return nil
}

func groupByFile(issues []tt.Issue) map[string][]tt.Issue {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}
	return issuesByFile
}
