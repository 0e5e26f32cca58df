package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/shortlist"
)

var (
	suggestPlan      string
	suggestUpload    string
	suggestTopK      int
	suggestAdd       string
	suggestKPI       string
	suggestMethods   string
	suggestRationale string
	suggestIssuesOut string
	suggestJSON      bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Rank historical findings against an audit scope",
	Long: `Ranks the findings library against the query and prints the shortlist.
Without a query the plan's 6W2H fields and logic-model outputs and outcomes
are used.

Each candidate shows its composite score and its lexical similarity, so a
result lifted by severity or recency can be told apart from a text match.
Use --add to turn candidates into audit issues.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestPlan, "plan", "", "plan YAML to compose the query from and store issues in")
	suggestCmd.Flags().StringVar(&suggestUpload, "upload", "", "extra findings file (CSV or XLSX) appended to the library")
	suggestCmd.Flags().IntVarP(&suggestTopK, "top-k", "k", 0, "number of candidates (default from config)")
	suggestCmd.Flags().StringVar(&suggestAdd, "add", "", "comma-separated ranks to add as audit issues, e.g. 1,3")
	suggestCmd.Flags().StringVar(&suggestKPI, "kpi", "", "linked KPI for added issues")
	suggestCmd.Flags().StringVar(&suggestMethods, "methods", "", "proposed methods for added issues")
	suggestCmd.Flags().StringVar(&suggestRationale, "rationale", "", "rationale for added issues (default refers to the source finding)")
	suggestCmd.Flags().StringVar(&suggestIssuesOut, "issues-out", "", "issue CSV to write (default from config)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output candidates as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	issuesOut := suggestIssuesOut
	if issuesOut == "" {
		issuesOut = cfg.Output.IssuesPath
	}
	wb, err := workbookFor(suggestPlan, issuesOut)
	if err != nil {
		return err
	}
	s, err := openSession(cmd, wb, suggestUpload)
	if err != nil {
		return err
	}

	query := composeQuery(args, wb)
	cands, err := s.Suggest(query, suggestTopK)
	if err != nil {
		return emptyLibraryHint(err)
	}

	if suggestJSON {
		data, err := json.MarshalIndent(cands, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal candidates: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printCandidates(cmd, cands)
	}

	if suggestAdd == "" {
		return nil
	}
	ranks, err := parseRanks(suggestAdd, len(cands))
	if err != nil {
		return err
	}
	ann := shortlist.Annotations{Rationale: suggestRationale, LinkedKPI: suggestKPI, ProposedMethods: suggestMethods}
	for _, r := range ranks {
		issue, err := s.AddIssue(&cands[r-1], ann)
		if err != nil {
			return err
		}
		cmd.PrintErrf("added %s from %s\n", issue.IssueID, orDash(issue.SourceFindingID))
	}
	if err := writeIssues(issuesOut, s); err != nil {
		return fmt.Errorf("write issues: %w", err)
	}
	if suggestPlan != "" {
		if err := wb.Save(suggestPlan); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
	}
	return nil
}

func printCandidates(cmd *cobra.Command, cands []domain.RankedCandidate) {
	if len(cands) == 0 {
		cmd.Println("No candidates.")
		return
	}
	for i, c := range cands {
		f := c.Finding
		cmd.Printf("  [%d] %s %s (score %.3f, sim %.3f)\n", i+1, orDash(f.FindingID), orDash(f.IssueTitle), c.Score, c.SimScore)
		cmd.Printf("      severity %d, year %d, %s\n", f.Severity, f.Year, orDash(f.Unit))
		if f.Recommendation != "" {
			cmd.Printf("      recommendation: %s\n", f.Recommendation)
		}
	}
}

// parseRanks reads 1-based ranks like "1,3". Duplicates are dropped.
func parseRanks(s string, n int) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := strconv.Atoi(part)
		if err != nil || r < 1 || r > n {
			return nil, fmt.Errorf("invalid rank %q: want 1..%d", part, n)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
