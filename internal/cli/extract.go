package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/totohpy/pa-ai-auditor/internal/assist"
	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/plan"
)

var extractPlan string

var extractCmd = &cobra.Command{
	Use:   "extract <file|->",
	Short: "Extract 6W2H plan fields from a project description",
	Long: `Sends a free-text project description to the language model and
splits the answer into Who, Whom, What, Where, When, Why, How and How much.

With --plan the extracted fields are written into the plan file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractPlan, "plan", "", "plan YAML to update with the extracted fields")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	client, err := assist.NewClient(assist.FromAppConfig(cfg.Assist, logger))
	if err != nil {
		return fmt.Errorf("%w: set $%s", err, cfg.Assist.APIKeyEnv)
	}

	var text []byte
	if args[0] == "-" {
		text, err = io.ReadAll(cmd.InOrStdin())
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read description: %w", err)
	}
	w, err := client.ExtractSixW2H(cmd.Context(), string(text))
	if err != nil {
		return err
	}
	printSixW2H(cmd, w)

	if extractPlan == "" {
		return nil
	}
	wb, err := plan.Load(extractPlan)
	if err != nil {
		return err
	}
	wb.Plan.SixW2H = w
	return wb.Save(extractPlan)
}

func printSixW2H(cmd *cobra.Command, w domain.SixW2H) {
	cmd.Println("Who:", w.Who)
	cmd.Println("Whom:", w.Whom)
	cmd.Println("What:", w.What)
	cmd.Println("Where:", w.Where)
	cmd.Println("When:", w.When)
	cmd.Println("Why:", w.Why)
	cmd.Println("How:", w.How)
	cmd.Println("How much:", w.HowMuch)
}
