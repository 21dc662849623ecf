package leverage

// Grade component weights sum to 1.0.
const (
	lockWeight     = 0.25
	utilityWeight  = 0.35
	coverageWeight = 0.20
	movesWeight    = 0.20
)

// Gate floors. The grade gate fails independently of the score when the
// brief is too thin to act on.
const (
	minStrongClaims = 5
	minMoves        = 5
)

// requiredMoveTypes is the full move vocabulary; quality measures how much
// of it the plan exercises.
var requiredMoveTypes = []string{MoveOpener, MoveProbe, MoveProof, MoveWedge, MoveClose, MoveAvoid}

// Grade is the decision-readiness grade for an executive brief.
type Grade struct {
	Score        int      `json:"score"`
	Pass         bool     `json:"pass"`
	FailReasons  []string `json:"fail_reasons,omitempty"`
	LockScore    int      `json:"lock_score"`
	AvgUtility   float64 `json:"avg_utility"`
	CoveragePct  float64 `json:"coverage_pct"`
	MoveQuality  float64 `json:"move_quality"`
	StrongClaims int     `json:"strong_claims"`
	MoveCount    int     `json:"move_count"`
}

// ComputeGrade scores decision readiness 0-100 from the lock score, the
// average utility of strong claims, evidence coverage, and move-type
// breadth. The pass gate is separate from the score: a numerically fine
// brief still fails when it has too few strong claims, too few moves, or
// any move with no evidence refs at all.
func ComputeGrade(claims []Claim, moves []Move, lockScore int, coveragePct float64) Grade {
	strong := 0
	utilSum := 0
	for _, c := range claims {
		if c.UtilityScore >= UtilityFloor {
			strong++
			utilSum += c.UtilityScore
		}
	}
	avgUtil := 0.0
	if strong > 0 {
		avgUtil = float64(utilSum) / float64(strong)
	}

	typesSeen := make(map[string]bool)
	for _, m := range moves {
		typesSeen[m.Type] = true
	}
	present := 0
	for _, t := range requiredMoveTypes {
		if typesSeen[t] {
			present++
		}
	}
	moveQuality := float64(present) / float64(len(requiredMoveTypes)) * 100.0

	score := int(lockWeight*float64(lockScore) +
		utilityWeight*avgUtil +
		coverageWeight*coveragePct +
		movesWeight*moveQuality)

	g := Grade{
		Score:        score,
		Pass:         true,
		LockScore:    lockScore,
		AvgUtility:   avgUtil,
		CoveragePct:  coveragePct,
		MoveQuality:  moveQuality,
		StrongClaims: strong,
		MoveCount:    len(moves),
	}
	if strong < minStrongClaims {
		g.Pass = false
		g.FailReasons = append(g.FailReasons, "fewer than 5 claims at or above the utility floor")
	}
	if len(moves) < minMoves {
		g.Pass = false
		g.FailReasons = append(g.FailReasons, "fewer than 5 moves in the plan")
	}
	for _, m := range moves {
		if len(m.Refs) == 0 {
			g.Pass = false
			g.FailReasons = append(g.FailReasons, "move with no evidence refs: "+m.Type)
			break
		}
	}
	return g
}
