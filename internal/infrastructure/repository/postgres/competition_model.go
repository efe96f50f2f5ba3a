package postgres

import "database/sql"

type competitionTableModel struct {
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	SportCategory string         `db:"sport_category"`
	Grade         sql.NullString `db:"grade"`
	Age           sql.NullString `db:"age"`
	Gender        sql.NullString `db:"gender"`
	EventPeriod   sql.NullString `db:"event_period"`
	Location      sql.NullString `db:"location"`
	Province      sql.NullString `db:"location_province_city"`
	CityCounty    sql.NullString `db:"location_county_district"`
	Host          sql.NullString `db:"host"`
	SourceURL     sql.NullString `db:"source_url"`
}
