package time_entry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEntry(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error)
	GetEntry(ctx context.Context, userId int, entryId int) (TimeEntry, error)
	UpdateEntry(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error)
	// DeleteEntry removes the entry and returns it as it was before deletion.
	DeleteEntry(ctx context.Context, userId int, entryId int) (TimeEntry, error)
	FindOverlapping(ctx context.Context, userId int, from time.Time, to time.Time) ([]TimeEntry, error)
	StoreHistory(ctx context.Context, record HistoryRecord) error
	GetHistory(ctx context.Context, userId int, entryId int) ([]HistoryRecord, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const entryColumns = `id, user_id, category, project, start_date, end_date, hours, description, created_at, updated_at`

func scanEntry(row pgx.Row) (TimeEntry, error) {
	var entry TimeEntry
	err := row.Scan(
		&entry.Id,
		&entry.UserId,
		&entry.Category,
		&entry.Project,
		&entry.StartDate,
		&entry.EndDate,
		&entry.Hours,
		&entry.Description,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	return entry, err
}

func (r *RepositoryImpl) StoreEntry(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error) {
	query := `INSERT INTO time_entry (user_id, category, project, start_date, end_date, hours, description)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING ` + entryColumns
	stored, err := scanEntry(r.db.QueryRow(ctx, query,
		userId,
		entry.Category,
		entry.Project,
		entry.StartDate,
		entry.EndDate,
		entry.Hours,
		entry.Description,
	))
	if err != nil {
		log.Errorf("failed to store time entry: %v", err)
		return TimeEntry{}, fmt.Errorf("failed to store time entry: %w", err)
	}
	return stored, nil
}

func (r *RepositoryImpl) GetEntry(ctx context.Context, userId int, entryId int) (TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entry WHERE user_id = $1 AND id = $2`
	entry, err := scanEntry(r.db.QueryRow(ctx, query, userId, entryId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TimeEntry{}, ErrEntryNotFound
		}
		log.Errorf("failed to get time entry %d: %v", entryId, err)
		return TimeEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) UpdateEntry(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error) {
	query := `UPDATE time_entry
				SET category = $1, project = $2, start_date = $3, end_date = $4, hours = $5, description = $6, updated_at = now()
				WHERE user_id = $7 AND id = $8
				RETURNING ` + entryColumns
	updated, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.Category,
		entry.Project,
		entry.StartDate,
		entry.EndDate,
		entry.Hours,
		entry.Description,
		userId,
		entry.Id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TimeEntry{}, ErrEntryNotFound
		}
		log.Errorf("failed to update time entry %d: %v", entry.Id, err)
		return TimeEntry{}, err
	}
	return updated, nil
}

func (r *RepositoryImpl) DeleteEntry(ctx context.Context, userId int, entryId int) (TimeEntry, error) {
	query := `DELETE FROM time_entry WHERE user_id = $1 AND id = $2 RETURNING ` + entryColumns
	deleted, err := scanEntry(r.db.QueryRow(ctx, query, userId, entryId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TimeEntry{}, ErrEntryNotFound
		}
		log.Errorf("failed to delete time entry %d: %v", entryId, err)
		return TimeEntry{}, err
	}
	return deleted, nil
}

// FindOverlapping returns the user's entries sharing at least one day with [from, to],
// ordered by start date.
func (r *RepositoryImpl) FindOverlapping(ctx context.Context, userId int, from time.Time, to time.Time) ([]TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entry
				WHERE user_id = $1 AND NOT (end_date < $2 OR start_date > $3)
				ORDER BY start_date, id`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		log.Errorf("failed to query time entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimeEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Errorf("failed to scan time entry: %v", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *RepositoryImpl) StoreHistory(ctx context.Context, record HistoryRecord) error {
	query := `INSERT INTO time_entry_history (entry_id, user_id, action, category, project, start_date, end_date, hours, recorded_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		record.EntryId,
		record.UserId,
		record.Action,
		record.Category,
		record.Project,
		record.StartDate,
		record.EndDate,
		record.Hours,
		record.RecordedAt,
	)
	if err != nil {
		log.Errorf("failed to store history of time entry %d: %v", record.EntryId, err)
		return fmt.Errorf("failed to store time entry history: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetHistory(ctx context.Context, userId int, entryId int) ([]HistoryRecord, error) {
	query := `SELECT id, entry_id, user_id, action, category, project, start_date, end_date, hours, recorded_at
				FROM time_entry_history
				WHERE user_id = $1 AND entry_id = $2
				ORDER BY recorded_at, id`
	rows, err := r.db.Query(ctx, query, userId, entryId)
	if err != nil {
		log.Errorf("failed to query time entry history: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := make([]HistoryRecord, 0)
	for rows.Next() {
		var record HistoryRecord
		err := rows.Scan(
			&record.Id,
			&record.EntryId,
			&record.UserId,
			&record.Action,
			&record.Category,
			&record.Project,
			&record.StartDate,
			&record.EndDate,
			&record.Hours,
			&record.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
