package groundwater

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository reads the assessment table from a groundwater_assessments
// table. Deployments that sync the central dataset into Postgres hydrate the
// in-memory Store from it at boot instead of the JSON file.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository connects to Postgres with the given DSN.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection, used by tests.
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

type assessmentRow struct {
	State                 string  `db:"state"`
	District              string  `db:"district"`
	Location              string  `db:"location"`
	AnnualReplenishableGW float64 `db:"annual_replenishable_gw"`
	NetAvailability       float64 `db:"net_availability"`
	TotalDraft            float64 `db:"total_draft"`
	StagePercent          float64 `db:"stage_percent"`
	Category              string  `db:"category"`
}

// LoadStore reads the whole assessment table into an immutable Store.
func (r *PostgresRepository) LoadStore(ctx context.Context) (*Store, error) {
	const query = `
		SELECT state, district, location,
		       annual_replenishable_gw, net_availability,
		       total_draft, stage_percent, category
		FROM groundwater_assessments`

	var rows []assessmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("loading groundwater assessments: %w", err)
	}

	data := make(map[string]map[string]map[string]record)
	for _, row := range rows {
		stData, ok := data[row.State]
		if !ok {
			stData = make(map[string]map[string]record)
			data[row.State] = stData
		}
		diData, ok := stData[row.District]
		if !ok {
			diData = make(map[string]record)
			stData[row.District] = diData
		}
		diData[row.Location] = record{
			AnnualReplenishableGW: row.AnnualReplenishableGW,
			NetAvailability:       row.NetAvailability,
			TotalDraft:            row.TotalDraft,
			StagePercent:          row.StagePercent,
			Category:              row.Category,
		}
	}
	return &Store{data: data}, nil
}
