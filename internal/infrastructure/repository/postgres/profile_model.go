package postgres

import "database/sql"

type profileTableModel struct {
	ID       string         `db:"id"`
	Age      int            `db:"age"`
	Gender   sql.NullString `db:"gender"`
	Location sql.NullString `db:"location"`
}

type interestTableModel struct {
	UserID    string `db:"user_id"`
	SportName string `db:"sport_name"`
	Skill     string `db:"skill"`
}
