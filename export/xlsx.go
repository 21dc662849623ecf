// Package export writes the audit workbook for a stored run: the full
// retrieval ledger, extracted claims, and conversation moves as separate
// sheets, so a reviewer can trace every line of a dossier back to queries.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"dossier/evidence"
	"dossier/leverage"
	"dossier/store"
)

const (
	sheetLedger = "Ledger"
	sheetClaims = "Claims"
	sheetMoves  = "Moves"
)

// WriteAudit renders a run's audit workbook to path. Sheets are written
// for whatever state the run carries; a halted run still exports its
// ledger even though claims and moves are empty.
func WriteAudit(path string, run *store.Run) error {
	var snapshot evidence.Snapshot
	if run.GraphSnapshot != "" {
		if err := json.Unmarshal([]byte(run.GraphSnapshot), &snapshot); err != nil {
			return fmt.Errorf("decoding graph snapshot for run %d: %w", run.ID, err)
		}
	}
	var brief leverage.Brief
	if run.Brief != "" {
		if err := json.Unmarshal([]byte(run.Brief), &brief); err != nil {
			return fmt.Errorf("decoding brief for run %d: %w", run.ID, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeLedgerSheet(f, snapshot.Ledger); err != nil {
		return err
	}
	if err := writeClaimsSheet(f, brief); err != nil {
		return err
	}
	if err := writeMovesSheet(f, brief.Moves); err != nil {
		return err
	}

	// The default sheet excelize creates becomes the ledger.
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeLedgerSheet(f *excelize.File, ledger []evidence.LedgerRow) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheetLedger); err != nil {
		return err
	}
	header := []interface{}{"Query ID", "Intent", "Query", "Results", "Top Result", "Top URL"}
	if err := f.SetSheetRow(sheetLedger, "A1", &header); err != nil {
		return err
	}
	for i, row := range ledger {
		topTitle, topURL := "", ""
		if len(row.TopResults) > 0 {
			topTitle = row.TopResults[0].Title
			topURL = row.TopResults[0].URL
		}
		cells := []interface{}{row.QueryID, row.Intent, row.Query, row.ResultCount, topTitle, topURL}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetLedger, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

// writeClaimsSheet lists the brief claims first, then the appendix tier, so
// a reviewer sees what made the brief and what was held back.
func writeClaimsSheet(f *excelize.File, brief leverage.Brief) error {
	if _, err := f.NewSheet(sheetClaims); err != nil {
		return err
	}
	header := []interface{}{"Tier", "Utility", "Section", "Anchors", "Tags", "Claim"}
	if err := f.SetSheetRow(sheetClaims, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, tier := range []struct {
		name   string
		claims []leverage.Claim
	}{
		{"brief", brief.Claims},
		{"appendix", brief.Appendix},
	} {
		for _, c := range tier.claims {
			cells := []interface{}{
				tier.name,
				c.UtilityScore,
				c.Section,
				strings.Join(c.Anchors, ", "),
				strings.Join(c.Tags, ", "),
				c.Text,
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetClaims, cell, &cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeMovesSheet(f *excelize.File, moves []leverage.Move) error {
	if _, err := f.NewSheet(sheetMoves); err != nil {
		return err
	}
	header := []interface{}{"Type", "Risk", "Script", "Evidence Refs"}
	if err := f.SetSheetRow(sheetMoves, "A1", &header); err != nil {
		return err
	}
	for i, m := range moves {
		cells := []interface{}{m.Type, m.Risk, m.Script, strings.Join(m.Refs, " | ")}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetMoves, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}
