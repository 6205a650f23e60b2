package scoring

import "github.com/Sena-ops/cguard/internal/model"

const (
	MaxScore       = 100
	defaultPenalty = 5
)

var penalties = map[model.Severity]int{
	model.SevMinor:    2,
	model.SevModerate: 5,
	model.SevMajor:    10,
	model.SevCritical: 15,
}

// Penalty devolve o peso descontado por uma violação da severidade dada.
func Penalty(s model.Severity) int {
	if p, ok := penalties[s]; ok {
		return p
	}
	return defaultPenalty
}

// Score calcula max(0, 100 - soma das penalidades). A ordem não importa.
func Score(violations []model.Violation) int {
	score := MaxScore
	for _, v := range violations {
		score -= Penalty(v.Severity)
	}
	return max(0, score)
}

// Classify converte o score em nível de conformidade.
func Classify(score int) model.ComplianceLevel {
	switch {
	case score >= 90:
		return model.FullyCompliant
	case score >= 80:
		return model.MinorIssues
	case score >= 70:
		return model.ModerateIssues
	case score >= 60:
		return model.MajorIssues
	default:
		return model.NonCompliant
	}
}

// Result é o resultado pontuado de uma verificação interna.
type Result struct {
	Score      int
	Level      model.ComplianceLevel
	Violations []model.Violation
}

// Evaluate pontua e classifica uma lista de violações.
func Evaluate(violations []model.Violation) Result {
	score := Score(violations)
	return Result{Score: score, Level: Classify(score), Violations: violations}
}

// CountBySeverity conta violações por severidade.
func CountBySeverity(violations []model.Violation) map[model.Severity]int {
	counts := make(map[model.Severity]int, len(model.Severities))
	for _, v := range violations {
		counts[v.Severity]++
	}
	return counts
}
