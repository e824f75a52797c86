package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	diagramProcess    string
	diagramModule     string
	diagramOutputFile string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Generate a sequence diagram for a business process",
	RunE:  runDiagram,
}

func init() {
	diagramCmd.Flags().StringVar(&diagramProcess, "process", "", "name or description of the business process")
	_ = diagramCmd.MarkFlagRequired("process")
	diagramCmd.Flags().StringVar(&diagramModule, "module", "", "restrict the search to one module")
	diagramCmd.Flags().StringVar(&diagramOutputFile, "output-file", "", "file to save the diagram to")
	rootCmd.AddCommand(diagramCmd)
}

func runDiagram(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, ok, err := openExistingStore(cfg)
	if err != nil || !ok {
		return err
	}
	engine, ok, err := newEngine(cfg, store)
	if err != nil || !ok {
		return err
	}

	answer, err := engine.GenerateSequenceDiagram(context.Background(), diagramProcess, diagramModule)
	if err != nil {
		return fmt.Errorf("generating diagram: %w", err)
	}

	if diagramOutputFile != "" {
		if err := os.WriteFile(diagramOutputFile, []byte(answer.Result), 0o644); err != nil {
			return fmt.Errorf("saving diagram: %w", err)
		}
		fmt.Printf("Diagram saved to %s\n", diagramOutputFile)
		return nil
	}

	fmt.Println("\nSequence Diagram:")
	fmt.Println(answer.Result)
	printSources(answer.Sources, 3)
	return nil
}
