package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectWithGroupsOrderAndLimit(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Select("id", "title").
		From("problems").
		Where("user_id = ?", "u1").
		AndGroup(func(qb QueryBuilder) {
			qb.Where("difficulty = ?", "EASY").Or("difficulty = ?", "MEDIUM")
		}).
		OrderBy("created_at", false).
		Limit(10).
		Build()

	require.Equal(t,
		"SELECT id, title FROM public.problems WHERE user_id = ? AND (difficulty = ? OR difficulty = ?) ORDER BY created_at DESC LIMIT 10",
		query)
	require.Equal(t, []interface{}{"u1", "EASY", "MEDIUM"}, args)
}

func TestSelectWithJoin(t *testing.T) {
	query, _ := NewQueryBuilder("public").
		Select("p.id").
		From("problems p").
		Join(JoinTypeInner, "problem_solved", "ps", "ps.problem_id = p.id").
		Where("ps.user_id = ?", 1).
		Build()

	require.Equal(t,
		"SELECT p.id FROM public.problems p INNER JOIN public.problem_solved ps ON ps.problem_id = p.id WHERE ps.user_id = ?",
		query)
}

func TestMultiRowInsertOnConflictDoNothing(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("user_id", "problem_id").
		Into("problem_solved").
		Values("u", "p1").
		Values("u", "p2").
		OnConflict("user_id", "problem_id").
		DoNothing().
		Build()

	require.Equal(t,
		"INSERT INTO public.problem_solved (user_id, problem_id) VALUES (?, ?), (?, ?) ON CONFLICT (user_id, problem_id) DO NOTHING",
		query)
	require.Equal(t, []interface{}{"u", "p1", "u", "p2"}, args)
}

func TestInsertOnConflictUpdate(t *testing.T) {
	query, _ := NewQueryBuilder("").
		Insert("id", "name").
		Into("playlists").
		Values(1, "a").
		OnConflict("id").
		SetExclude("name").
		Returning("id").
		Build()

	require.Equal(t,
		"INSERT INTO playlists (id, name) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name RETURNING id",
		query)
}

func TestInsertRowWidthMismatchIsInvalid(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("a", "b").
		Into("t").
		Values(1).
		Build()

	require.Empty(t, query)
	require.Nil(t, args)
}

func TestUpdateIsDeterministic(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Update("problems", UpdateData{"title": "t", "description": "d"}).
		Where("id = ?", 7).
		Build()

	require.Equal(t, "UPDATE public.problems SET description = ?, title = ? WHERE id = ?", query)
	require.Equal(t, []interface{}{"d", "t", 7}, args)
}

func TestDeleteRequiresCondition(t *testing.T) {
	query, _ := NewQueryBuilder("public").Delete("playlists").Build()
	require.Empty(t, query)

	query, args := NewQueryBuilder("public").
		Delete("playlists").
		Where("id = ?", 3).
		And("user_id = ?", 4).
		Build()
	require.Equal(t, "DELETE FROM public.playlists WHERE id = ? AND user_id = ?", query)
	require.Equal(t, []interface{}{3, 4}, args)
}
