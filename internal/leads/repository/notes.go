package repository

import (
	"context"
	"errors"
	"time"

	"leadcrm_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const noteColumns = `id, lead_id, content, note_type, follow_up_date, completed, created_at`

type CreateNoteParams struct {
	LeadID       uuid.UUID
	Content      string
	NoteType     domain.NoteType
	FollowUpDate *time.Time
}

// CreateNote inserts the note and refreshes the owning lead's last_activity
// in the same transaction.
func (r *Repository) CreateNote(ctx context.Context, params CreateNoteParams) (domain.Note, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Note{}, err
	}
	defer tx.Rollback(ctx)

	var note domain.Note
	err = tx.QueryRow(ctx, `
		INSERT INTO lead_notes (lead_id, content, note_type, follow_up_date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns+`
	`, params.LeadID, params.Content, params.NoteType, params.FollowUpDate).Scan(noteFields(&note)...)
	if err != nil {
		return domain.Note{}, err
	}

	if _, err := tx.Exec(ctx, `UPDATE leads SET last_activity = NOW() WHERE id = $1`, params.LeadID); err != nil {
		return domain.Note{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Note{}, err
	}

	return note, nil
}

func (r *Repository) GetNote(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	var note domain.Note
	err := r.pool.QueryRow(ctx, `
		SELECT `+noteColumns+`
		FROM lead_notes
		WHERE id = $1
	`, id).Scan(noteFields(&note)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Note{}, ErrNotFound
	}
	if err != nil {
		return domain.Note{}, err
	}

	return note, nil
}

func (r *Repository) ListNotes(ctx context.Context, leadID uuid.UUID) ([]domain.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM lead_notes
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

// ListOpenFollowUps returns every incomplete note carrying a follow-up date,
// across all leads, due-soonest first. The dashboard derives overdue and
// due-today rollups from this.
func (r *Repository) ListOpenFollowUps(ctx context.Context) ([]domain.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM lead_notes
		WHERE follow_up_date IS NOT NULL AND completed = FALSE
		ORDER BY follow_up_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

// ToggleNoteCompleted flips the note's completion flag and refreshes the
// owning lead's last_activity. The follow-up date is left untouched.
func (r *Repository) ToggleNoteCompleted(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Note{}, err
	}
	defer tx.Rollback(ctx)

	var note domain.Note
	err = tx.QueryRow(ctx, `
		UPDATE lead_notes
		SET completed = NOT completed
		WHERE id = $1
		RETURNING `+noteColumns+`
	`, id).Scan(noteFields(&note)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Note{}, ErrNotFound
	}
	if err != nil {
		return domain.Note{}, err
	}

	if _, err := tx.Exec(ctx, `UPDATE leads SET last_activity = NOW() WHERE id = $1`, note.LeadID); err != nil {
		return domain.Note{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Note{}, err
	}

	return note, nil
}

// DeleteNote removes the note. The parent lead is not touched.
func (r *Repository) DeleteNote(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lead_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func noteFields(note *domain.Note) []interface{} {
	return []interface{}{
		&note.ID, &note.LeadID, &note.Content, &note.NoteType,
		&note.FollowUpDate, &note.Completed, &note.CreatedAt,
	}
}

func scanNotes(rows pgx.Rows) ([]domain.Note, error) {
	notes := make([]domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(noteFields(&note)...); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return notes, nil
}
