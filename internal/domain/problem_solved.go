package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProblemSolved marks that a user has an accepted submission for a problem.
type ProblemSolved struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	ProblemID uuid.UUID `db:"problem_id" json:"problemId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type ProblemSolvedTable struct {
	ID        string
	UserID    string
	ProblemID string
	CreatedAt string
}

func GetProblemSolvedTable() ProblemSolvedTable {
	return ProblemSolvedTable{
		ID:        "id",
		UserID:    "user_id",
		ProblemID: "problem_id",
		CreatedAt: "created_at",
	}
}

func (ProblemSolvedTable) GetTableName() string {
	return "problem_solved"
}
