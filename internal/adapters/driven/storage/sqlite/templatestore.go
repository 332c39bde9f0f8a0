package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

// templateStore implements driven.TemplateStore.
type templateStore struct {
	store *Store
}

var _ driven.TemplateStore = (*templateStore)(nil)

const templateColumns = `id, name, source_path, markup, tree, block_count, created_at, updated_at`

// Save stores or updates a template. The block tree is stored as JSON.
// An existing row keeps its original created_at.
func (s *templateStore) Save(ctx context.Context, tmpl *domain.Template) error {
	if tmpl == nil || tmpl.ID == "" {
		return domain.ErrInvalidInput
	}

	treeJSON, err := json.Marshal(tmpl.Root)
	if err != nil {
		return fmt.Errorf("marshalling tree: %w", err)
	}

	now := time.Now().UTC()
	createdAt := tmpl.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := tmpl.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source_path = excluded.source_path,
			markup = excluded.markup,
			tree = excluded.tree,
			block_count = excluded.block_count,
			updated_at = excluded.updated_at
	`, tmpl.ID, tmpl.Name, nullString(tmpl.SourcePath), tmpl.Markup, string(treeJSON),
		tmpl.BlockCount, createdAt.UTC(), updatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

// Get retrieves a template by ID.
func (s *templateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)

	tmpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// List returns all templates, most recently updated first.
func (s *templateStore) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	templates := []domain.Template{}
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}

	return templates, nil
}

// Delete removes a template.
func (s *templateStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var tmpl domain.Template
	var sourcePath sql.NullString
	var treeJSON string
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&tmpl.ID, &tmpl.Name, &sourcePath, &tmpl.Markup, &treeJSON,
		&tmpl.BlockCount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}

	if err := json.Unmarshal([]byte(treeJSON), &tmpl.Root); err != nil {
		return nil, fmt.Errorf("unmarshaling tree: %w", err)
	}

	tmpl.SourcePath = sourcePath.String
	if createdAt.Valid {
		tmpl.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tmpl.UpdatedAt = updatedAt.Time
	}
	return &tmpl, nil
}

// nullString converts empty strings to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
