// Package cli wires the planner's cobra commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/totohpy/pa-ai-auditor/internal/config"
	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/findings"
	"github.com/totohpy/pa-ai-auditor/internal/logging"
	"github.com/totohpy/pa-ai-auditor/internal/plan"
	"github.com/totohpy/pa-ai-auditor/internal/service"
	"github.com/totohpy/pa-ai-auditor/internal/shortlist"
)

// version is set at build time with -ldflags "-X .../internal/cli.version=...".
var version = "dev"

var (
	cfgPath      string
	findingsPath string
	logLevel     string

	cfg    *config.AppConfig
	logger *zap.Logger

	timeNow = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Audit planning assistant",
	Long: `planner ranks historical audit findings against the scope of a new
performance audit and turns the selected findings into audit issues.

Ranking blends lexical similarity (TF-IDF over unigrams and bigrams) with
the finding's severity and recency.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default ./planner.yaml or ~/.config/planner/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&findingsPath, "findings", "", "default findings library (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if findingsPath != "" {
		cfg.Findings.DefaultPath = findingsPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	// the browser owns the terminal
	if cmd == tuiCmd && cfg.Log.File == "" {
		cfg.Log.File = "planner.log"
	}
	logger, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}
	return nil
}

// workbookFor loads the plan at path, or starts a draft when path is empty.
// Without a plan file, issues already exported to issuesPath are resumed
// so new ids continue the sequence.
func workbookFor(path, issuesPath string) (*plan.Workbook, error) {
	if path != "" {
		return plan.Load(path)
	}
	wb := plan.New(timeNow())
	if issuesPath == "" {
		return wb, nil
	}
	f, err := os.Open(issuesPath)
	if errors.Is(err, os.ErrNotExist) {
		return wb, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	issues, err := shortlist.ReadCSV(f)
	if err != nil {
		return nil, err
	}
	wb.Issues = issues
	if len(issues) > 0 && issues[0].PlanID != "" {
		wb.Plan.PlanID = issues[0].PlanID
	}
	return wb, nil
}

// openSession builds a session over wb and loads the findings library.
// Load warnings are printed but never fatal.
func openSession(cmd *cobra.Command, wb *plan.Workbook, uploadPath string) (*service.Session, error) {
	var upload *findings.Source
	if uploadPath != "" {
		src, err := findings.ReadSource(uploadPath)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		upload = src
	}
	s := service.NewSession(service.OptionsFromConfig(cfg, logger), wb)
	res := s.LoadFindings(upload)
	for _, w := range res.Warnings {
		cmd.PrintErrln("warning:", w)
	}
	return s, nil
}

// composeQuery joins args into a query, falling back to the plan's composed query.
func composeQuery(args []string, wb *plan.Workbook) string {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q
	}
	return wb.Query()
}

func writeIssues(path string, s *service.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.ExportIssues(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func emptyLibraryHint(err error) error {
	if errors.Is(err, domain.ErrEmptyLibrary) {
		return fmt.Errorf("%w: put findings at %s or pass --upload", err, cfg.Findings.DefaultPath)
	}
	return err
}
