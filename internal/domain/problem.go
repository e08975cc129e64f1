package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// TestCase is one declared input/output pair of a problem.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type Problem struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	UserID             uuid.UUID      `db:"user_id" json:"userId"`
	Title              string         `db:"title" json:"title"`
	Description        string         `db:"description" json:"description"`
	Difficulty         Difficulty     `db:"difficulty" json:"difficulty"`
	Tags               pq.StringArray `db:"tags" json:"tags"`
	Examples           JSONDocument   `db:"examples" json:"examples"`
	Constraints        string         `db:"constraints" json:"constraints"`
	Hints              *string        `db:"hints" json:"hints"`
	Editorial          *string        `db:"editorial" json:"editorial"`
	TestCases          TestCases      `db:"test_cases" json:"testCases"`
	CodeSnippets       LanguageCode   `db:"code_snippets" json:"codeSnippets"`
	ReferenceSolutions LanguageCode   `db:"reference_solutions" json:"referenceSolutions"`
	CreatedAt          time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updatedAt"`

	SolvedBy []ProblemSolved `db:"-" json:"solvedBy,omitempty"`
}

// ProblemInput is the author supplied body of create and update.
type ProblemInput struct {
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Difficulty         Difficulty   `json:"difficulty"`
	Tags               []string     `json:"tags"`
	Examples           JSONDocument `json:"examples"`
	Constraints        string       `json:"constraints"`
	Hints              *string      `json:"hints"`
	Editorial          *string      `json:"editorial"`
	TestCases          []TestCase   `json:"testCases"`
	CodeSnippets       LanguageCode `json:"codeSnippets"`
	ReferenceSolutions LanguageCode `json:"referenceSolutions"`
}

// Apply copies the input onto p, leaving identity and timestamps alone.
func (in ProblemInput) Apply(p *Problem) {
	p.Title = in.Title
	p.Description = in.Description
	p.Difficulty = in.Difficulty
	p.Tags = pq.StringArray(in.Tags)
	p.Examples = in.Examples
	p.Constraints = in.Constraints
	p.Hints = in.Hints
	p.Editorial = in.Editorial
	p.TestCases = TestCases(in.TestCases)
	p.CodeSnippets = in.CodeSnippets
	p.ReferenceSolutions = in.ReferenceSolutions
}

type ProblemTable struct {
	ID                 string
	UserID             string
	Title              string
	Description        string
	Difficulty         string
	Tags               string
	Examples           string
	Constraints        string
	Hints              string
	Editorial          string
	TestCases          string
	CodeSnippets       string
	ReferenceSolutions string
	CreatedAt          string
	UpdatedAt          string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:                 "id",
		UserID:             "user_id",
		Title:              "title",
		Description:        "description",
		Difficulty:         "difficulty",
		Tags:               "tags",
		Examples:           "examples",
		Constraints:        "constraints",
		Hints:              "hints",
		Editorial:          "editorial",
		TestCases:          "test_cases",
		CodeSnippets:       "code_snippets",
		ReferenceSolutions: "reference_solutions",
		CreatedAt:          "created_at",
		UpdatedAt:          "updated_at",
	}
}

func (ProblemTable) GetTableName() string {
	return "problems"
}

func (t ProblemTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Description, t.Difficulty, t.Tags, t.Examples, t.Constraints,
		t.Hints, t.Editorial, t.TestCases, t.CodeSnippets, t.ReferenceSolutions, t.CreatedAt, t.UpdatedAt,
	}
}

func (p *Problem) Values() []interface{} {
	return []interface{}{
		p.ID, p.UserID, p.Title, p.Description, p.Difficulty, p.Tags, p.Examples, p.Constraints,
		p.Hints, p.Editorial, p.TestCases, p.CodeSnippets, p.ReferenceSolutions, p.CreatedAt, p.UpdatedAt,
	}
}
