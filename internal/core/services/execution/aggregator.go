package execution

import (
	"fmt"
	"strings"

	"gitlab.com/codearena.net/internal/domain"
)

// Aggregate compares each result's stdout against its expected output after
// trimming surrounding whitespace. A missing stdout compares as "".
// Callers pass one expected output per result; a result without one fails.
func Aggregate(results []domain.JudgeResult, expected []string) ([]domain.TestCaseVerdict, bool) {
	allPassed := true
	verdicts := make([]domain.TestCaseVerdict, len(results))

	for i, r := range results {
		stdout := ""
		if r.Stdout != nil {
			stdout = strings.TrimSpace(*r.Stdout)
		}
		want := ""
		hasWant := i < len(expected)
		if hasWant {
			want = strings.TrimSpace(expected[i])
		}
		passed := hasWant && stdout == want
		if !passed {
			allPassed = false
		}

		v := domain.TestCaseVerdict{
			TestCase:      i + 1,
			Passed:        passed,
			Stdout:        stdout,
			Expected:      want,
			Stderr:        r.Stderr,
			CompileOutput: r.CompileOutput,
		}
		if r.Status != nil {
			v.Status = r.Status.Description
		}
		if r.Memory != nil {
			m := fmt.Sprintf("%d KB", *r.Memory)
			v.Memory = &m
		}
		if r.Time != nil {
			tm := fmt.Sprintf("%s S", *r.Time)
			v.Time = &tm
		}
		verdicts[i] = v
	}

	return verdicts, allPassed
}
