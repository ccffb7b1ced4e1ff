package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PaperGrade – immutable value object
// ---------------------------------------------------------------------------

// PaperGrade is the ordinal risk classification driving pricing policy.
// A is the best paper, D the worst.
type PaperGrade struct {
	value string
}

const (
	paperGradeA = "A"
	paperGradeB = "B"
	paperGradeC = "C"
	paperGradeD = "D"
)

var (
	PaperGradeA = PaperGrade{value: paperGradeA}
	PaperGradeB = PaperGrade{value: paperGradeB}
	PaperGradeC = PaperGrade{value: paperGradeC}
	PaperGradeD = PaperGrade{value: paperGradeD}
)

var validPaperGrades = map[string]PaperGrade{
	paperGradeA: PaperGradeA,
	paperGradeB: PaperGradeB,
	paperGradeC: PaperGradeC,
	paperGradeD: PaperGradeD,
}

// NewPaperGrade creates a PaperGrade from a raw string.
func NewPaperGrade(s string) (PaperGrade, error) {
	g, ok := validPaperGrades[s]
	if !ok {
		return PaperGrade{}, fmt.Errorf("invalid paper grade %q: %w", s, ErrUnknownValue)
	}
	return g, nil
}

// Grade score thresholds. Policy constants, not computed.
const (
	gradeAThreshold = 80
	gradeBThreshold = 65
	gradeCThreshold = 50
)

// PaperGradeFromScore maps a clamped 0-100 risk score to exactly one grade.
func PaperGradeFromScore(score int) PaperGrade {
	switch {
	case score >= gradeAThreshold:
		return PaperGradeA
	case score >= gradeBThreshold:
		return PaperGradeB
	case score >= gradeCThreshold:
		return PaperGradeC
	default:
		return PaperGradeD
	}
}

// AllPaperGrades returns the grades in order, best first.
func AllPaperGrades() []PaperGrade {
	return []PaperGrade{PaperGradeA, PaperGradeB, PaperGradeC, PaperGradeD}
}

// String returns the string representation of the grade.
func (g PaperGrade) String() string { return g.value }

// IsZero returns true if the grade has not been assigned.
func (g PaperGrade) IsZero() bool { return g.value == "" }

// Equal returns true when both grades carry the same value.
func (g PaperGrade) Equal(other PaperGrade) bool { return g.value == other.value }
