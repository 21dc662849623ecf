package qa

import "strings"

// snapshotHeading identifies the section this gate validates.
const snapshotHeading = "Strategic Identity Snapshot"

// maxNonPersonBullets is how many company-flavored bullets the snapshot
// section may carry before failing.
const maxNonPersonBullets = 2

// SnapshotResult is the outcome of the identity-snapshot section gate.
type SnapshotResult struct {
	Found            bool     `json:"found"`
	BulletCount      int      `json:"bullet_count"`
	NonPersonBullets []string `json:"non_person_bullets"`
	Passes           bool     `json:"passes"`
}

// CheckSnapshot validates that the Strategic Identity Snapshot section, if
// present, stays about the person. Bullets with no name fragment and no
// pronoun are counted against the allowance. A dossier without the section
// passes with zero bullets.
func CheckSnapshot(text, personName string) SnapshotResult {
	res := SnapshotResult{Passes: true}
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "###") {
			inSection = strings.Contains(trimmed, snapshotHeading)
			if inSection {
				res.Found = true
			}
			continue
		}
		if !inSection || !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		res.BulletCount++
		if !mentionsPerson(trimmed, personName) {
			res.NonPersonBullets = append(res.NonPersonBullets, trimmed)
		}
	}
	res.Passes = len(res.NonPersonBullets) <= maxNonPersonBullets
	return res
}
