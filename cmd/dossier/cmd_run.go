package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dossier"
	"dossier/retrieval"
)

var runFlags struct {
	company    string
	title      string
	notePaths  []string
	resumePath string
	outputPath string
}

var runCmd = &cobra.Command{
	Use:   "run <person name>",
	Short: "Run the deep-research pipeline for a person",
	Long: `Run retrieval sweeps, enrichment, identity lock scoring, and gated
synthesis for a person. The run is persisted in every outcome; when the
fail-closed gates halt it, the printed report says exactly what to fix.

Usage:
  dossier run "Jane Doe" --company Initech
  dossier run "Jane Doe" --notes meetings/2025-06-10.txt --resume jane.pdf

The search API key is read from search.api_key in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeepResearch,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.company, "company", "", "Known current company of the subject")
	f.StringVar(&runFlags.title, "title", "", "Known current title of the subject")
	f.StringArrayVar(&runFlags.notePaths, "notes", nil, "Meeting-note file (repeatable)")
	f.StringVar(&runFlags.resumePath, "resume", "", "Resume or profile PDF path")
	f.StringVarP(&runFlags.outputPath, "output", "o", "", "Write the output document to a file instead of stdout")
}

func runDeepResearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("no search API key configured: set search.api_key in the config file")
	}

	input, err := buildInput(args[0])
	if err != nil {
		return err
	}

	eng, err := dossier.New(cfg,
		dossier.WithSearcher(retrieval.NewHTTPClient(cfg.Search)),
		dossier.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}
	defer eng.Close()

	res, err := eng.DeepResearch(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "run %d: %s (lock %d/100 %s)\n",
		res.RunID, res.Status, res.LockScore, res.LockStatus)
	return writeOutput(runFlags.outputPath, res.Text)
}

// buildInput assembles the run input shared by run and prep.
func buildInput(personName string) (dossier.RunInput, error) {
	input := dossier.RunInput{
		PersonName: personName,
		Company:    runFlags.company,
	}
	input.Attributes.Title = runFlags.title
	input.ResumePDF = runFlags.resumePath

	for _, path := range runFlags.notePaths {
		note, err := readMeetingNote(path)
		if err != nil {
			return input, err
		}
		input.MeetingNotes = append(input.MeetingNotes, note)
	}
	return input, nil
}

// readMeetingNote loads one note file. A first line of the form
// "Date: 2025-06-10" sets the note date.
func readMeetingNote(path string) (dossier.MeetingNote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dossier.MeetingNote{}, fmt.Errorf("reading note %s: %w", path, err)
	}
	note := dossier.MeetingNote{
		Source: filepath.Base(path),
		Text:   string(data),
	}
	if first, rest, found := strings.Cut(note.Text, "\n"); found {
		if date, ok := strings.CutPrefix(strings.TrimSpace(first), "Date:"); ok {
			note.Date = strings.TrimSpace(date)
			note.Text = rest
		}
	}
	return note, nil
}

func writeOutput(path, text string) error {
	if path == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
