package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadcrm_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lead, note, or goal id does not exist.
var ErrNotFound = errors.New("not found")

const leadColumns = `id, name, email, company, phone, message, source, score, status, created_at, last_activity`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type CreateLeadParams struct {
	Name    string
	Email   string
	Company *string
	Phone   *string
	Message *string
	Source  domain.Source
	Score   int
	Status  domain.Status
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	var lead domain.Lead
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, company, phone, message, source, score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+leadColumns+`
	`,
		params.Name, params.Email, params.Company, params.Phone, params.Message,
		params.Source, params.Score, params.Status,
	).Scan(leadFields(&lead)...)
	if err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	var lead domain.Lead
	err := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1
	`, id).Scan(leadFields(&lead)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

// ListAll returns the full lead collection, oldest first. The aggregators
// consume this as an in-memory snapshot.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

type ListLeadsParams struct {
	Status *domain.Status
	Source *domain.Source
	Search string
	Limit  int
	Offset int
}

// List returns leads matching the given filters, newest first.
func (r *Repository) List(ctx context.Context, params ListLeadsParams) ([]domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	conditions := []string{}
	args := []interface{}{}

	if params.Status != nil {
		args = append(args, *params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Source != nil {
		args = append(args, *params.Source)
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR COALESCE(company, '') ILIKE $%d)", idx, idx, idx))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if params.Offset > 0 {
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

// ListEmails returns the distinct email addresses of leads matching the
// filters, for campaign recipient selection. Email is the natural external
// key here; duplicates collapse to one recipient.
func (r *Repository) ListEmails(ctx context.Context, params ListLeadsParams) ([]string, error) {
	query := `SELECT DISTINCT email FROM leads`
	conditions := []string{}
	args := []interface{}{}

	if params.Status != nil {
		args = append(args, *params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Source != nil {
		args = append(args, *params.Source)
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY email ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return emails, nil
}

type UpdateLeadParams struct {
	Name    *string
	Email   *string
	Company *string
	Phone   *string
	Message *string
	Source  *domain.Source
}

// Update patches the lead's descriptive fields and refreshes last_activity.
// Status and score mutations go through UpdateStatus and UpdateScore only.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (domain.Lead, error) {
	sets := []string{"last_activity = NOW()"}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		appendSet("name", *params.Name)
	}
	if params.Email != nil {
		appendSet("email", *params.Email)
	}
	if params.Company != nil {
		appendSet("company", *params.Company)
	}
	if params.Phone != nil {
		appendSet("phone", *params.Phone)
	}
	if params.Message != nil {
		appendSet("message", *params.Message)
	}
	if params.Source != nil {
		appendSet("source", *params.Source)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE leads
		SET %s
		WHERE id = $%d
		RETURNING `+leadColumns+`
	`, strings.Join(sets, ", "), len(args))

	var lead domain.Lead
	err := r.pool.QueryRow(ctx, query, args...).Scan(leadFields(&lead)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

// UpdateStatus replaces the lead's funnel status and refreshes last_activity.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error) {
	var lead domain.Lead
	err := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET status = $2, last_activity = NOW()
		WHERE id = $1
		RETURNING `+leadColumns+`
	`, id, status).Scan(leadFields(&lead)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

// UpdateScore replaces the lead's temperature score and refreshes last_activity.
func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, score int) (domain.Lead, error) {
	var lead domain.Lead
	err := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET score = $2, last_activity = NOW()
		WHERE id = $1
		RETURNING `+leadColumns+`
	`, id, score).Scan(leadFields(&lead)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, err
	}

	return lead, nil
}

// TopByScore returns up to limit leads with score >= minScore, highest first.
func (r *Repository) TopByScore(ctx context.Context, minScore, limit int) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE score >= $1
		ORDER BY score DESC, created_at ASC
		LIMIT $2
	`, minScore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Delete removes the lead. Notes cascade at the store level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func leadFields(lead *domain.Lead) []interface{} {
	return []interface{}{
		&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Phone, &lead.Message,
		&lead.Source, &lead.Score, &lead.Status, &lead.CreatedAt, &lead.LastActivity,
	}
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	leads := make([]domain.Lead, 0)
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(leadFields(&lead)...); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}
