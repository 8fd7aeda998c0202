package events

import "github.com/SergeyKozhin/chat-calendar/internal/database"

var baseQuery = database.PSQL.
	Select("id",
		"title",
		"date",
		"all_day",
		"start_time",
		"end_time",
		"notes",
		"color",
	).
	From(database.EventsTable)

var counterQuery = database.PSQL.
	Select("next_id").
	From(database.CountersTable)
