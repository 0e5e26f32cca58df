package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/totohpy/pa-ai-auditor/internal/findings"
	"github.com/totohpy/pa-ai-auditor/internal/tabular"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an empty findings library workbook",
	Long: `Writes a workbook with an empty "Data" sheet carrying the findings
columns and a "Columns" sheet describing each one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Create(templateOut)
		if err != nil {
			return err
		}
		if err := tabular.WriteTemplate(f, findings.TemplateSheet, findings.Columns); err != nil {
			f.Close()
			return fmt.Errorf("write template: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		cmd.Printf("template written to %s\n", templateOut)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "FindingsTemplate.xlsx", "output workbook")
	rootCmd.AddCommand(templateCmd)
}
