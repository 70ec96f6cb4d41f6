package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/tracing"
)

const registrationColumns = `id, email, solution_category, document, created_at, updated_at`

// registrationRepository implements registration.Repository using SQLite.
type registrationRepository struct {
	db     *sql.DB
	tracer trace.Tracer
	now    func() time.Time
}

func newRegistrationRepository(db *sql.DB, tracer trace.Tracer) *registrationRepository {
	return &registrationRepository{db: db, tracer: tracer, now: time.Now}
}

// Ensure registrationRepository implements registration.Repository.
var _ registration.Repository = (*registrationRepository)(nil)

func scanRegistration(scanner interface{ Scan(...any) error }) (*RegistrationModel, error) {
	var m RegistrationModel
	err := scanner.Scan(&m.ID, &m.Email, &m.SolutionCategory, &m.Document, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// Insert stores doc as a new row. A missing ID gets a fresh UUID; CreatedAt
// and UpdatedAt are always set to the insert time. Documents are never
// updated after insert.
func (r *registrationRepository) Insert(ctx context.Context, doc *registration.Document) (err error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanRepoInsert)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := r.now().UTC().Truncate(time.Millisecond)
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Draft = doc.Normalize()

	model, err := toRegistrationModel(doc)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO registrations (`+registrationColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		model.ID, model.Email, model.SolutionCategory, model.Document, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	span.SetAttributes(
		attribute.String(tracing.AttrRegistrationID, doc.ID),
		attribute.String(tracing.AttrSolutionCategory, model.SolutionCategory),
	)
	return nil
}

// FindByID retrieves a registration by id.
// Returns NotFoundError if no matching row exists.
func (r *registrationRepository) FindByID(ctx context.Context, id string) (*registration.Document, error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanRepoFind,
		trace.WithAttributes(attribute.String(tracing.AttrRegistrationID, id)))
	defer span.End()

	row := r.db.QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id)
	model, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &registration.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return model.toDomain()
}

// List returns registrations newest first.
func (r *registrationRepository) List(ctx context.Context, filter registration.ListFilter) ([]*registration.Document, error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanRepoList)
	defer span.End()

	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT ` + registrationColumns + ` FROM registrations`)
	if filter.SolutionCategory != "" {
		query.WriteString(` WHERE solution_category = ?`)
		args = append(args, string(filter.SolutionCategory))
	}
	query.WriteString(` ORDER BY created_at DESC, rowid DESC`)
	if filter.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*registration.Document
	for rows.Next() {
		model, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		doc, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registrations: %w", err)
	}
	return docs, nil
}

// Count returns the number of stored registrations.
func (r *registrationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return n, nil
}
