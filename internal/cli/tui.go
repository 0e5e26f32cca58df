package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/totohpy/pa-ai-auditor/internal/tui"
	"github.com/totohpy/pa-ai-auditor/internal/watch"
)

var (
	tuiPlan      string
	tuiUpload    string
	tuiTopK      int
	tuiWatch     bool
	tuiIssuesOut string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [query]",
	Short: "Browse the shortlist interactively",
	Long: `Opens the interactive shortlist browser. The query starts from the
argument or the plan's composed query and can be edited.

Controls:
  Enter    - Rank
  ↑/↓      - Browse candidates
  ctrl+s   - Add the current candidate as an audit issue
  Esc      - Quit and write the issue CSV

Logs go to planner.log unless log.file is configured.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiPlan, "plan", "", "plan YAML to compose the query from and store issues in")
	tuiCmd.Flags().StringVar(&tuiUpload, "upload", "", "extra findings file (CSV or XLSX) appended to the library")
	tuiCmd.Flags().IntVarP(&tuiTopK, "top-k", "k", 0, "number of candidates (default from config)")
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "reload the library when the default findings file changes")
	tuiCmd.Flags().StringVar(&tuiIssuesOut, "issues-out", "", "issue CSV to write on exit (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	issuesOut := tuiIssuesOut
	if issuesOut == "" {
		issuesOut = cfg.Output.IssuesPath
	}
	wb, err := workbookFor(tuiPlan, issuesOut)
	if err != nil {
		return err
	}
	s, err := openSession(cmd, wb, tuiUpload)
	if err != nil {
		return err
	}
	before := len(s.Issues())

	topK := tuiTopK
	if topK <= 0 {
		topK = s.TopK()
	}
	p := tea.NewProgram(tui.New(s, topK, composeQuery(args, wb)), tea.WithAltScreen())

	if tuiWatch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			err := watch.File(ctx, cfg.Findings.DefaultPath, 0, func() { p.Send(tui.ReloadMsg{}) }, logger)
			if err != nil {
				logger.Warn("watch disabled", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return err
	}

	if len(s.Issues()) == before {
		return nil
	}
	if err := writeIssues(issuesOut, s); err != nil {
		return fmt.Errorf("write issues: %w", err)
	}
	cmd.Printf("%d issues written to %s\n", len(s.Issues()), issuesOut)
	if tuiPlan != "" {
		return wb.Save(tuiPlan)
	}
	return nil
}
