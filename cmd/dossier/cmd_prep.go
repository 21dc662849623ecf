package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"dossier"
)

var prepFlags struct {
	outputPath string
}

var prepCmd = &cobra.Command{
	Use:   "prep <person name>",
	Short: "Build a meeting-prep brief from internal evidence only",
	Long: `Build the internal-evidence-only meeting brief: what the meeting history
shows, what to ask, risks, and which intel is worth fetching. No web
access and no gating; gaps are tagged [UNKNOWN] instead of filled in.

Usage:
  dossier prep "Jane Doe" --notes meetings/2025-06-10.txt
  dossier prep "Jane Doe" --company Initech --resume jane.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runMeetingPrep,
}

func init() {
	f := prepCmd.Flags()
	f.StringVar(&runFlags.company, "company", "", "Known current company of the subject")
	f.StringVar(&runFlags.title, "title", "", "Known current title of the subject")
	f.StringArrayVar(&runFlags.notePaths, "notes", nil, "Meeting-note file (repeatable)")
	f.StringVar(&runFlags.resumePath, "resume", "", "Resume or profile PDF path")
	f.StringVarP(&prepFlags.outputPath, "output", "o", "", "Write the brief to a file instead of stdout")
}

func runMeetingPrep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input, err := buildInput(args[0])
	if err != nil {
		return err
	}

	eng, err := dossier.New(cfg, dossier.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer eng.Close()

	res, err := eng.MeetingPrep(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "run %d: %s\n", res.RunID, res.Status)
	return writeOutput(prepFlags.outputPath, res.Text)
}
