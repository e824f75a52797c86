package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gato25/odoo-rag/internal/helper"
	"github.com/gato25/odoo-rag/internal/models"
)

var (
	queryModule       string
	queryModel        string
	queryLLMModel     string
	queryTemperature  float64
	queryOutputFormat string
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about the indexed modules",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryModule, "module", "", "restrict the search to one module")
	queryCmd.Flags().StringVar(&queryModel, "model", "", "restrict the search to one technical model name")
	queryCmd.Flags().StringVar(&queryLLMModel, "llm-model", "", "Claude model to use")
	queryCmd.Flags().Float64Var(&queryTemperature, "temperature", 0, "temperature for the LLM")
	queryCmd.Flags().StringVar(&queryOutputFormat, "output-format", "text", "output format (text or json)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if queryLLMModel != "" {
		cfg.LLM.Model = queryLLMModel
	}
	if cmd.Flags().Changed("temperature") {
		cfg.LLM.Temperature = queryTemperature
	}

	store, ok, err := openExistingStore(cfg)
	if err != nil || !ok {
		return err
	}
	engine, ok, err := newEngine(cfg, store)
	if err != nil || !ok {
		return err
	}

	ctx := context.Background()
	var answer *models.Answer
	switch {
	case queryModule != "":
		answer, err = engine.AnswerAboutModule(ctx, question, queryModule)
	case queryModel != "":
		answer, err = engine.AnswerAboutModel(ctx, question, queryModel)
	default:
		answer, err = engine.AnswerQuestion(ctx, question)
	}
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if queryOutputFormat == "json" {
		helper.PrettyPrint(answer)
		return nil
	}

	fmt.Println("\nAnswer:")
	fmt.Println(answer.Result)
	printSources(answer.Sources, 3)
	return nil
}
