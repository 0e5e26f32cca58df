package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/totohpy/pa-ai-auditor/internal/assist"
	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

var (
	draftPlan    string
	draftUpload  string
	draftTopK    int
	draftOffline bool
)

var draftCmd = &cobra.Command{
	Use:   "draft [query]",
	Short: "Draft audit issues, expected findings and a report preview",
	Long: `Ranks the findings library like suggest, then asks the configured
language model to draft audit issues, likely findings and a short report.

Without an API key (or with --offline) the draft is built from the
shortlist itself with an extractive summary.`,
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().StringVar(&draftPlan, "plan", "", "plan YAML to compose the query from")
	draftCmd.Flags().StringVar(&draftUpload, "upload", "", "extra findings file (CSV or XLSX) appended to the library")
	draftCmd.Flags().IntVarP(&draftTopK, "top-k", "k", 0, "number of candidates (default from config)")
	draftCmd.Flags().BoolVar(&draftOffline, "offline", false, "never call the language model")
	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	wb, err := workbookFor(draftPlan, "")
	if err != nil {
		return err
	}
	s, err := openSession(cmd, wb, draftUpload)
	if err != nil {
		return err
	}
	query := composeQuery(args, wb)
	cands, err := s.Suggest(query, draftTopK)
	if err != nil {
		return emptyLibraryHint(err)
	}

	var suggester domain.Suggester
	if !draftOffline {
		client, err := assist.NewClient(assist.FromAppConfig(cfg.Assist, logger))
		switch {
		case err == nil:
			suggester = client
		case errors.Is(err, domain.ErrMissingAPIKey):
			cmd.PrintErrf("no API key in $%s, drafting offline\n", cfg.Assist.APIKeyEnv)
		default:
			return err
		}
	}

	out, err := s.Draft(cmd.Context(), suggester, query, cands)
	if err != nil {
		return fmt.Errorf("draft: %w", err)
	}
	for _, section := range []string{out.Issues, out.Findings, out.Report} {
		if section != "" {
			cmd.Println(section)
			cmd.Println()
		}
	}
	return nil
}
