package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dossier"
	"dossier/export"
	"dossier/store"
)

var exportFlags struct {
	person     string
	outputPath string
}

var exportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Write the audit workbook for a run",
	Long: `Export a run's audit trail as an xlsx workbook: the full retrieval
ledger, scored claims, and conversation moves as separate sheets.

Usage:
  dossier export 42 -o audit.xlsx
  dossier export --person "Jane Doe"     # latest run for the person`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.person, "person", "", "Export the latest run for this person")
	f.StringVarP(&exportFlags.outputPath, "output", "o", "audit.xlsx", "Workbook output path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eng, err := dossier.New(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	var run *store.Run
	switch {
	case len(args) == 1:
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		run, err = eng.Run(cmd.Context(), id)
		if err != nil {
			return err
		}
	case exportFlags.person != "":
		run, err = eng.Store().LatestRun(cmd.Context(), exportFlags.person)
		if err != nil {
			return fmt.Errorf("no runs for %q: %w", exportFlags.person, err)
		}
	default:
		return fmt.Errorf("give a run id or --person")
	}

	if err := export.WriteAudit(exportFlags.outputPath, run); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (run %d, %s)\n",
		exportFlags.outputPath, run.ID, run.RunStatus)
	return nil
}
