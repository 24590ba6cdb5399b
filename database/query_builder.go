package database

import (
	"fmt"
	"strings"
)

const (
	columnID               = "id"
	columnTitle            = "title"
	columnDescription      = "description"
	columnCategory         = "category"
	columnClientName       = "client_name"
	columnMainImageURL     = "main_image_url"
	columnImageURLs        = "image_urls"
	columnWebsiteURL       = "website_url"
	columnGithubURL        = "github_url"
	columnTechnologiesUsed = "technologies_used"
	columnIsFeatured       = "is_featured"
	columnIsActive         = "is_active"
	columnCreatedAt        = "created_at"
	columnUpdatedAt        = "updated_at"
)

// QueryBuilder builds parameterized SET and WHERE clauses.
// Placeholders are numbered in the order values are added, so an UPDATE adds
// its assignments before its conditions.
type QueryBuilder struct {
	assignments []string
	conditions  []string
	args        []interface{}
	argCount    int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		assignments: []string{},
		conditions:  []string{},
		args:        []interface{}{},
		argCount:    1,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

func (qb *QueryBuilder) AddAssignment(column string, value interface{}) {
	qb.assignments = append(qb.assignments, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddRawAssignment appends an assignment that takes no argument,
// e.g. "updated_at = NOW()". expr must not contain user input.
func (qb *QueryBuilder) AddRawAssignment(expr string) {
	qb.assignments = append(qb.assignments, expr)
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) SetClause() string {
	if len(qb.assignments) == 0 {
		return ""
	}
	return "SET " + strings.Join(qb.assignments, ", ")
}

func (qb *QueryBuilder) HasAssignments() bool {
	return len(qb.assignments) > 0
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
