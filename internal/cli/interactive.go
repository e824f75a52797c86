package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gato25/odoo-rag/internal/models"
	"github.com/gato25/odoo-rag/internal/rag"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive question session",
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// session holds the REPL's scoping filters between questions.
type session struct {
	engine       *rag.Engine
	moduleFilter string
	modelFilter  string
}

func runInteractive(cmd *cobra.Command, args []string) error {
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

	logger.Info().Str("session", uuid.NewString()).Msg("starting interactive session")

	fmt.Println("Odoo RAG Interactive Session (powered by Claude and chromem-go)")
	fmt.Printf("Vector store contains %d documents\n", store.Stats())
	fmt.Println("Type 'exit' or 'quit' to end the session")
	fmt.Println("Special commands:")
	fmt.Println("  /module <module_name>: Set module filter")
	fmt.Println("  /model <model_name>: Set model filter")
	fmt.Println("  /clear: Clear all filters")
	fmt.Println("  /modules: List all available modules")
	fmt.Println("  /diagram <process_name>: Generate sequence diagram for business process")

	sess := &session{engine: engine}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		sess.showFilters()
		fmt.Print("\nQuestion: ")
		if !scanner.Scan() {
			fmt.Println("\nExiting...")
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "exit" || lower == "quit" {
			fmt.Println("Exiting...")
			break
		}

		if strings.HasPrefix(line, "/") {
			sess.handleCommand(line)
			continue
		}
		sess.ask(line)
	}
	return scanner.Err()
}

func (s *session) showFilters() {
	var filters []string
	if s.moduleFilter != "" {
		filters = append(filters, "module: "+s.moduleFilter)
	}
	if s.modelFilter != "" {
		filters = append(filters, "model: "+s.modelFilter)
	}
	if len(filters) > 0 {
		fmt.Printf("\nActive filters: %s\n", strings.Join(filters, ", "))
	}
}

func (s *session) handleCommand(line string) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case "/clear":
		s.moduleFilter = ""
		s.modelFilter = ""
		fmt.Println("Filters cleared")
	case "/module":
		if len(parts) < 2 {
			fmt.Println("Usage: /module <module_name>")
			return
		}
		s.moduleFilter = parts[1]
		s.modelFilter = ""
		fmt.Printf("Set filter to module: %s\n", s.moduleFilter)
	case "/model":
		if len(parts) < 2 {
			fmt.Println("Usage: /model <model_name>")
			return
		}
		s.modelFilter = parts[1]
		s.moduleFilter = ""
		fmt.Printf("Set filter to model: %s\n", s.modelFilter)
	case "/modules":
		answer, err := s.engine.ListAllModules(context.Background())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("\n" + answer.Result)
	case "/diagram":
		if len(parts) < 2 {
			fmt.Println("Usage: /diagram <process_name>")
			return
		}
		process := strings.Join(parts[1:], " ")
		answer, err := s.engine.GenerateSequenceDiagram(context.Background(), process, s.moduleFilter)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("\nSequence Diagram:")
		fmt.Println(answer.Result)
	default:
		fmt.Printf("Unknown command: %s\n", parts[0])
	}
}

func (s *session) ask(question string) {
	ctx := context.Background()
	var (
		answer *models.Answer
		err    error
	)
	switch {
	case s.modelFilter != "":
		answer, err = s.engine.AnswerAboutModel(ctx, question, s.modelFilter)
	case s.moduleFilter != "":
		answer, err = s.engine.AnswerAboutModule(ctx, question, s.moduleFilter)
	default:
		answer, err = s.engine.AnswerQuestion(ctx, question)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("\nAnswer:")
	fmt.Println(answer.Result)
	printSources(answer.Sources, 3)
}
