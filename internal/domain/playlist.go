package domain

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	UserID      uuid.UUID `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	Problems []ProblemInPlaylist `db:"-" json:"problems"`
}

type ProblemInPlaylist struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PlaylistID uuid.UUID `db:"playlist_id" json:"playlistId"`
	ProblemID  uuid.UUID `db:"problem_id" json:"problemId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	Problem *Problem `db:"-" json:"problem,omitempty"`
}

type PlaylistTable struct {
	ID          string
	Name        string
	Description string
	UserID      string
	CreatedAt   string
	UpdatedAt   string
}

func GetPlaylistTable() PlaylistTable {
	return PlaylistTable{
		ID:          "id",
		Name:        "name",
		Description: "description",
		UserID:      "user_id",
		CreatedAt:   "created_at",
		UpdatedAt:   "updated_at",
	}
}

func (PlaylistTable) GetTableName() string {
	return "playlists"
}

type ProblemInPlaylistTable struct {
	ID         string
	PlaylistID string
	ProblemID  string
	CreatedAt  string
}

func GetProblemInPlaylistTable() ProblemInPlaylistTable {
	return ProblemInPlaylistTable{
		ID:         "id",
		PlaylistID: "playlist_id",
		ProblemID:  "problem_id",
		CreatedAt:  "created_at",
	}
}

func (ProblemInPlaylistTable) GetTableName() string {
	return "problems_in_playlist"
}

type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistProblemsRequest is the body of add-problem and remove-problem.
type PlaylistProblemsRequest struct {
	ProblemIDs []uuid.UUID `json:"problemIds"`
}
