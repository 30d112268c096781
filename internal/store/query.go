package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// TaskColumns is the column order every task query selects and scans.
var TaskColumns = []string{
	"id", "user_id", "title", "description", "status", "created_at", "updated_at",
}

// likeEscaper makes LIKE metacharacters in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a lower-cased LIKE pattern matching s anywhere in a
// value. The column side must be folded with the same Unicode rules, see
// BuildTaskListQuery.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// BuildTaskListQuery composes the owner-scoped task listing with the optional
// status and search predicates ANDed on, ordered by insertion sequence.
// All user input is bound as parameters.
//
// lower names the SQL function that case-folds title and description. It
// must fold non-ASCII letters the way strings.ToLower does.
func BuildTaskListQuery(
	ownerID uuid.UUID,
	filter TaskFilter,
	format sq.PlaceholderFormat,
	lower string,
) (string, []any, error) {
	query := sq.Select(TaskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": ownerID.String()})

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": string(*filter.Status)})
	}

	if filter.Search != "" {
		pattern := ContainsPattern(filter.Search)
		query = query.Where(sq.Or{
			sq.Expr(lower+`(title) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(lower+`(description) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	return query.OrderBy("seq ASC").PlaceholderFormat(format).ToSql()
}
