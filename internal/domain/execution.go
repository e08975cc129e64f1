package domain

import "github.com/google/uuid"

// Judge0 status ids. Ids below StatusIDFirstTerminal are still queued or running.
const (
	StatusIDInQueue       = 1
	StatusIDProcessing    = 2
	StatusIDAccepted      = 3
	StatusIDWrongAnswer   = 4
	StatusIDFirstTerminal = StatusIDAccepted
)

// ExecuteCodeRequest asks to run one source against ordered stdin/expected pairs.
type ExecuteCodeRequest struct {
	SourceCode      string    `json:"source_code"`
	LanguageID      int       `json:"language_id"`
	Stdin           []string  `json:"stdin"`
	ExpectedOutputs []string  `json:"expected_outputs"`
	ProblemID       uuid.UUID `json:"problemId"`
}

// JudgeSubmission is one test case execution inside a batch. With ExpectedOutput
// set the judge itself reports Wrong Answer on a mismatch.
type JudgeSubmission struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput *string `json:"expected_output,omitempty"`
}

// BatchToken identifies one submitted test case at the judge.
type BatchToken string

type JudgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// JudgeResult is the judge's outcome for one test case.
type JudgeResult struct {
	Token         BatchToken   `json:"token,omitempty"`
	Status        *JudgeStatus `json:"status"`
	Stdout        *string      `json:"stdout"`
	Stderr        *string      `json:"stderr"`
	CompileOutput *string      `json:"compile_output"`
	Memory        *int         `json:"memory"`
	Time          *string      `json:"time"`
}

func (r JudgeResult) Terminal() bool {
	return r.Status != nil && r.Status.ID >= StatusIDFirstTerminal
}

func (r JudgeResult) Accepted() bool {
	return r.Status != nil && r.Status.ID == StatusIDAccepted
}

// TestCaseVerdict is the pass/fail outcome of one test case plus diagnostics.
type TestCaseVerdict struct {
	TestCase      int
	Passed        bool
	Stdout        string
	Expected      string
	Stderr        *string
	CompileOutput *string
	Status        string
	Memory        *string
	Time          *string
}
