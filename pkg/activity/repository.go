package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// StoreDaily inserts the days or replaces previously synced values.
	StoreDaily(ctx context.Context, days []DailyActivity) error
	GetDaily(ctx context.Context, userId int, from time.Time, to time.Time) ([]DailyActivity, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreDaily(ctx context.Context, days []DailyActivity) error {
	if len(days) == 0 {
		return nil
	}
	query := `INSERT INTO activity_daily (user_id, activity_date, tracked_hours, synced_at)
				VALUES ($1, $2, $3, now())
				ON CONFLICT (user_id, activity_date)
				DO UPDATE SET tracked_hours = EXCLUDED.tracked_hours, synced_at = EXCLUDED.synced_at`

	batch := &pgx.Batch{}
	for _, day := range days {
		batch.Queue(query, day.UserId, day.Date, day.TrackedHours)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		log.Errorf("failed to store daily activity: %v", err)
		return fmt.Errorf("failed to store daily activity: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetDaily(ctx context.Context, userId int, from time.Time, to time.Time) ([]DailyActivity, error) {
	query := `SELECT user_id, activity_date, tracked_hours FROM activity_daily
				WHERE user_id = $1 AND activity_date BETWEEN $2 AND $3
				ORDER BY activity_date`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		log.Errorf("failed to query daily activity: %v", err)
		return nil, err
	}
	defer rows.Close()

	days := make([]DailyActivity, 0)
	for rows.Next() {
		var day DailyActivity
		if err := rows.Scan(&day.UserId, &day.Date, &day.TrackedHours); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
