package dice

// Degree indexes mirror criticalFailure(0) .. criticalSuccess(3).
const (
	DegreeCriticalFailure = 0
	DegreeFailure         = 1
	DegreeSuccess         = 2
	DegreeCriticalSuccess = 3
)

// CheckDegree grades a d20 check against a DC: beating it by 10 or missing it by 10 moves a
// full step, and a natural 20 or 1 shifts the result one step up or down.
func CheckDegree(natural, total, dc int) int {
	degree := DegreeFailure
	switch {
	case total >= dc+10:
		degree = DegreeCriticalSuccess
	case total >= dc:
		degree = DegreeSuccess
	case total <= dc-10:
		degree = DegreeCriticalFailure
	}

	switch natural {
	case 20:
		degree = min(degree+1, DegreeCriticalSuccess)
	case 1:
		degree = max(degree-1, DegreeCriticalFailure)
	}

	return degree
}
