package admin

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type adminStatsPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewAdminStatsPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AdminStatsRepository {
	return &adminStatsPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

// CountGrouped runs a two column "key, count" query and folds it into a map.
func (r *adminStatsPostgresRepository) CountGrouped(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return counts, nil
}

func (r *adminStatsPostgresRepository) SumSuccessfulPayments(ctx context.Context) (float64, error) {
	var total float64
	if err := r.DB.QueryRowContext(ctx, queries.SumSuccessfulPayments).Scan(&total); err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return total, nil
}
