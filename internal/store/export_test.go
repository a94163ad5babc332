package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestExportLocations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"rink_id", "rink_name", "rink_address", "rink_city",
		"rink_state", "rink_zip", "rink_status", "data_source", "source_count"}).
		AddRow("r1", "Ice Palace", "123 Main St", "Chicago", "IL", "60601", "active", "sk8stuff", 2)

	mock.ExpectQuery("SELECT l.rink_id").WillReturnRows(rows)

	r := &Reporter{db: sqlx.NewDb(db, "postgres")}
	got, err := r.ExportLocations()
	if err != nil {
		t.Fatalf("ExportLocations: %v", err)
	}
	if len(got) != 1 || got[0].RinkName != "Ice Palace" || got[0].SourceCount != 2 {
		t.Fatalf("unexpected export rows: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
