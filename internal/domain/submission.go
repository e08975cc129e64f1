package domain

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionAccepted    SubmissionStatus = "ACCEPTED"
	SubmissionWrongAnswer SubmissionStatus = "WRONG ANSWER"
)

// StatusFor derives the overall status from the aggregated verdicts.
func StatusFor(allPassed bool) SubmissionStatus {
	if allPassed {
		return SubmissionAccepted
	}
	return SubmissionWrongAnswer
}

// Submission is the persisted outcome of one execution request.
type Submission struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	UserID        uuid.UUID        `db:"user_id" json:"userId"`
	ProblemID     uuid.UUID        `db:"problem_id" json:"problemId"`
	SourceCode    string           `db:"source_code" json:"sourceCode"`
	Language      string           `db:"language" json:"language"`
	Stdin         string           `db:"stdin" json:"stdin"`
	Stdout        *string          `db:"stdout" json:"stdout"`
	Stderr        *string          `db:"stderr" json:"stderr"`
	CompileOutput *string          `db:"compile_output" json:"compileOutput"`
	Status        SubmissionStatus `db:"status" json:"status"`
	Memory        *string          `db:"memory" json:"memory"`
	Time          *string          `db:"time" json:"time"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`

	TestCases []TestCaseResult `db:"-" json:"testCases,omitempty"`
}

type SubmissionTable struct {
	ID            string
	UserID        string
	ProblemID     string
	SourceCode    string
	Language      string
	Stdin         string
	Stdout        string
	Stderr        string
	CompileOutput string
	Status        string
	Memory        string
	Time          string
	CreatedAt     string
	UpdatedAt     string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:            "id",
		UserID:        "user_id",
		ProblemID:     "problem_id",
		SourceCode:    "source_code",
		Language:      "language",
		Stdin:         "stdin",
		Stdout:        "stdout",
		Stderr:        "stderr",
		CompileOutput: "compile_output",
		Status:        "status",
		Memory:        "memory",
		Time:          "time",
		CreatedAt:     "created_at",
		UpdatedAt:     "updated_at",
	}
}

func (SubmissionTable) GetTableName() string {
	return "submissions"
}

func (t SubmissionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ProblemID, t.SourceCode, t.Language, t.Stdin, t.Stdout,
		t.Stderr, t.CompileOutput, t.Status, t.Memory, t.Time, t.CreatedAt, t.UpdatedAt,
	}
}

// Values returns s in Columns order.
func (s *Submission) Values() []interface{} {
	return []interface{}{
		s.ID, s.UserID, s.ProblemID, s.SourceCode, s.Language, s.Stdin, s.Stdout,
		s.Stderr, s.CompileOutput, s.Status, s.Memory, s.Time, s.CreatedAt, s.UpdatedAt,
	}
}
