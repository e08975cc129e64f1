package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

// QueryBuilder assembles SQL text with `?` placeholders. Callers rebind the
// result for their driver (sqlx.Rebind).
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder

	Or(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	AndGroup(fn func(qb QueryBuilder)) QueryBuilder
	OrGroup(fn func(qb QueryBuilder)) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder
	GroupBy(cols ...string) QueryBuilder
	Join(joinType JoinType, table, alias, on string) QueryBuilder
	Limit(n int) QueryBuilder
	Offset(n int) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder
	Delete(table string) QueryBuilder
	Build() (string, []interface{})

	OnConflict(cols ...string) QueryBuilder
	DoNothing() QueryBuilder
	SetExclude(cols ...string) QueryBuilder
	Returning(cols ...string) QueryBuilder

	getConditions() []Condition
}

// UpdateData maps column names to new values.
type UpdateData map[string]interface{}

type statement int

const (
	stmtSelect statement = iota
	stmtInsert
	stmtUpdate
	stmtDelete
)

type queryBuilder struct {
	schema      string
	stmt        statement
	table       string
	cols        []string
	conditions  []Condition
	joins       []join
	rows        InsertRows
	updateData  UpdateData
	groupBy     []string
	orderBy     []string
	limit       int
	offset      int
	onConflict  []string
	doNothing   bool
	excludeCols []string
	returning   []string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) qualify(table string) string {
	if q.schema == "" || strings.Contains(table, ".") {
		return table
	}
	return fmt.Sprintf("%s.%s", q.schema, table)
}

func (q *queryBuilder) getConditions() []Condition {
	return q.conditions
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.stmt = stmtSelect
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.stmt = stmtInsert
	q.cols = cols
	return q
}

// Values appends one row. Call it once per row for multi-row inserts.
func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.rows = append(q.rows, values)
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.stmt = stmtUpdate
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) Delete(table string) QueryBuilder {
	q.stmt = stmtDelete
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{
		condType: CondTypeAnd,
		clause:   clause,
		args:     args,
	})
	return q
}

func (q *queryBuilder) Or(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{
		condType: CondTypeOr,
		clause:   clause,
		args:     args,
	})
	return q
}

func (q *queryBuilder) group(condType CondType, fn func(qb QueryBuilder)) QueryBuilder {
	sub := NewQueryBuilder(q.schema)
	fn(sub)
	if len(sub.getConditions()) == 0 {
		return q
	}
	q.conditions = append(q.conditions, Condition{
		condType:   condType,
		subCond:    sub.getConditions(),
		isSubGroup: true,
	})
	return q
}

func (q *queryBuilder) AndGroup(fn func(qb QueryBuilder)) QueryBuilder {
	return q.group(CondTypeAnd, fn)
}

func (q *queryBuilder) OrGroup(fn func(qb QueryBuilder)) QueryBuilder {
	return q.group(CondTypeOr, fn)
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, direction))
	return q
}

func (q *queryBuilder) GroupBy(cols ...string) QueryBuilder {
	q.groupBy = append(q.groupBy, cols...)
	return q
}

func (q *queryBuilder) Join(joinType JoinType, table, alias, on string) QueryBuilder {
	q.joins = append(q.joins, join{
		joinType: joinType,
		table:    table,
		alias:    alias,
		on:       on,
	})
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) Offset(n int) QueryBuilder {
	q.offset = n
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.doNothing = true
	q.excludeCols = nil
	return q
}

// SetExclude turns the conflict clause into DO UPDATE SET col = EXCLUDED.col.
func (q *queryBuilder) SetExclude(cols ...string) QueryBuilder {
	q.doNothing = false
	q.excludeCols = cols
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = cols
	return q
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0)

	for i, cond := range conditions {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(cond.condType.ToString())
			sb.WriteString(" ")
		}
		if cond.isSubGroup {
			clause, subArgs := buildCondition(cond.subCond)
			sb.WriteString("(")
			sb.WriteString(clause)
			sb.WriteString(")")
			args = append(args, subArgs...)
			continue
		}
		sb.WriteString(cond.clause)
		args = append(args, cond.args...)
	}

	return sb.String(), args
}

// Build renders the statement. Malformed inserts and unconditioned deletes
// render as an empty query.
func (q *queryBuilder) Build() (string, []interface{}) {
	switch q.stmt {
	case stmtInsert:
		return q.buildInsert()
	case stmtUpdate:
		return q.buildUpdate()
	case stmtDelete:
		return q.buildDelete()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) appendWhere(query string, args []interface{}) (string, []interface{}) {
	if len(q.conditions) == 0 {
		return query, args
	}
	condition, condArgs := buildCondition(q.conditions)
	return query + " WHERE " + condition, append(args, condArgs...)
}

func (q *queryBuilder) appendReturning(query string) string {
	if len(q.returning) == 0 {
		return query
	}
	return query + " RETURNING " + strings.Join(q.returning, ", ")
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualify(q.table))
	for _, j := range q.joins {
		query += fmt.Sprintf(" %s %s %s ON %s", j.joinType.ToString(), q.qualify(j.table), j.alias, j.on)
	}

	query, args := q.appendWhere(query, make([]interface{}, 0))

	if len(q.groupBy) > 0 {
		query += " GROUP BY " + strings.Join(q.groupBy, ", ")
	}
	if len(q.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(q.orderBy, ", ")
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	if q.offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", q.offset)
	}
	return query, args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if len(q.rows) == 0 || numOfParam == 0 {
		return "", nil
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ") + ")"
	tuples := make([]string, 0, len(q.rows))
	args := make([]interface{}, 0, len(q.rows)*numOfParam)
	for _, row := range q.rows {
		if len(row) != numOfParam {
			return "", nil
		}
		tuples = append(tuples, placeholders)
		args = append(args, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualify(q.table), strings.Join(q.cols, ", "), strings.Join(tuples, ", "))

	if len(q.onConflict) > 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s)", strings.Join(q.onConflict, ", "))
		if q.doNothing || len(q.excludeCols) == 0 {
			query += " DO NOTHING"
		} else {
			sets := make([]string, 0, len(q.excludeCols))
			for _, col := range q.excludeCols {
				sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
			}
			query += " DO UPDATE SET " + strings.Join(sets, ", ")
		}
	}

	return q.appendReturning(query), args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	if len(q.updateData) == 0 {
		return "", nil
	}
	cols := make([]string, 0, len(q.updateData))
	for col := range q.updateData {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClause := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		setClause = append(setClause, fmt.Sprintf("%s = ?", col))
		args = append(args, q.updateData[col])
	}

	query := fmt.Sprintf("UPDATE %s SET %s", q.qualify(q.table), strings.Join(setClause, ", "))
	query, args = q.appendWhere(query, args)
	return q.appendReturning(query), args
}

func (q *queryBuilder) buildDelete() (string, []interface{}) {
	if len(q.conditions) == 0 {
		return "", nil
	}
	query, args := q.appendWhere(fmt.Sprintf("DELETE FROM %s", q.qualify(q.table)), make([]interface{}, 0))
	return q.appendReturning(query), args
}
