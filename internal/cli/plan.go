package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/totohpy/pa-ai-auditor/internal/plan"
)

var (
	planFile      string
	planExportDir string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and edit the audit plan",
	Long: `Manages the plan file: header and 6W2H fields, logic model items,
data-collection methods, KPIs and risks. Every row gets a sequential id
(LG-001, MT-001, KPI-001, RSK-001).`,
}

var planInitCmd = &cobra.Command{
	Use:   "init [field=value ...]",
	Short: "Start a new draft plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb := plan.New(timeNow())
		if len(args) > 0 {
			fields, err := parseFields(args)
			if err != nil {
				return err
			}
			if err := wb.Set(fields); err != nil {
				return err
			}
		}
		if err := wb.Save(planFile); err != nil {
			return err
		}
		cmd.Printf("created %s in %s\n", wb.Plan.PlanID, planFile)
		return nil
	},
}

var planSetCmd = &cobra.Command{
	Use:   "set field=value [field=value ...]",
	Short: "Update plan header or 6W2H fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(args)
		if err != nil {
			return err
		}
		wb, err := plan.Load(planFile)
		if err != nil {
			return err
		}
		if err := wb.Set(fields); err != nil {
			return err
		}
		return wb.Save(planFile)
	},
}

var planAddCmd = &cobra.Command{
	Use:   "add <logic|method|kpi|risk> field=value [field=value ...]",
	Short: "Append a row to one of the plan tables",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(args[1:])
		if err != nil {
			return err
		}
		wb, err := plan.Load(planFile)
		if err != nil {
			return err
		}
		id, err := wb.Add(args[0], fields)
		if err != nil {
			return err
		}
		if err := wb.Save(planFile); err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the ranking query composed from the plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		wb, err := plan.Load(planFile)
		if err != nil {
			return err
		}
		cmd.Printf("%s  %s  [%s]\n\n", wb.Plan.PlanID, orDash(wb.Plan.Title), wb.Plan.Status)
		cmd.Println(wb.Query())
		cmd.Printf("\n%d logic items, %d methods, %d KPIs, %d risks, %d issues\n",
			len(wb.LogicItems), len(wb.Methods), len(wb.KPIs), len(wb.Risks), len(wb.Issues))
		return nil
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every plan table as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		wb, err := plan.Load(planFile)
		if err != nil {
			return err
		}
		paths, err := wb.ExportCSV(planExportDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			cmd.Println(p)
		}
		return nil
	},
}

func init() {
	planCmd.PersistentFlags().StringVarP(&planFile, "file", "f", "plan.yaml", "plan file")
	planExportCmd.Flags().StringVarP(&planExportDir, "dir", "d", ".", "output directory")
	planCmd.AddCommand(planInitCmd, planSetCmd, planAddCmd, planShowCmd, planExportCmd)
	rootCmd.AddCommand(planCmd)
}

// parseFields reads field=value arguments.
func parseFields(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("expected field=value, got %q", a)
		}
		out[k] = v
	}
	return out, nil
}
