package a

import (
	"context"
	"database/sql"
	"fmt"
)

const deleteAll = "DELETE FROM people_to_professions"

func badConcat(db *sql.DB, keyword string) {
	db.Exec("INSERT INTO people_to_professions SELECT title, 'x' FROM people WHERE summary LIKE '% " + keyword + "%'") // want "SQL passed to Exec is built at run time"
}

func badSprintf(ctx context.Context, tx *sql.Tx, profession string) {
	tx.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM people_to_professions WHERE profession = '%s'", profession)) // want "SQL passed to QueryRowContext is built at run time"
}

func badParens(ctx context.Context, db *sql.DB, table string) {
	db.QueryContext(ctx, ("SELECT title FROM " + table)) // want "SQL passed to QueryContext is built at run time"
}

func goodPlaceholder(ctx context.Context, db *sql.DB, keyword string) {
	db.ExecContext(ctx, "INSERT OR IGNORE INTO people_to_professions SELECT title, ? FROM people WHERE instr(summary, ?) > 0", "x", " "+keyword)
}

func goodConstant(db *sql.DB) {
	db.Exec(deleteAll)
	db.Exec("DELETE FROM " + "people")
}

func goodVariable(db *sql.DB, query string) {
	db.Query(query)
}
