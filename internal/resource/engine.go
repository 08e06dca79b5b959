// AngelaMos | 2026
// engine.go

package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

// Engine synthesizes the five generic operations for every registered
// resource. One scoping discipline lives here, not in thirty handlers:
// soft-deleted rows are invisible everywhere, tenant filters are applied on
// every statement for scoped resources, and a row in another tenant is
// indistinguishable from a row that does not exist.
type Engine struct {
	db core.DBTX
}

func NewEngine(db core.DBTX) *Engine {
	return &Engine{db: db}
}

type Row = map[string]any

func (e *Engine) List(
	ctx context.Context,
	res *Resource,
	scope rbac.Scope,
) ([]Row, error) {
	var conditions []string
	var args []any

	if res.SoftDelete {
		conditions = append(conditions, "deleted_at IS NULL")
	}

	if res.Scoped && !scope.Unrestricted() {
		conditions = append(conditions, fmt.Sprintf(
			"operator_id = $%d", len(args)+1))
		args = append(args, scope.TenantID())
	}

	query := "SELECT * FROM " + res.Table
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + res.OrderBy
	if res.ListLimit > 0 {
		query += fmt.Sprintf(" LIMIT %d", res.ListLimit)
	}

	rows, err := e.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", res.Table, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	results := make([]Row, 0)
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("list %s: %w", res.Table, err)
		}
		results = append(results, normalizeRow(row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", res.Table, err)
	}

	return results, nil
}

func (e *Engine) GetByID(
	ctx context.Context,
	res *Resource,
	scope rbac.Scope,
	id int64,
) (Row, error) {
	conditions := []string{"id = $1"}
	args := []any{id}

	if res.SoftDelete {
		conditions = append(conditions, "deleted_at IS NULL")
	}

	if res.Scoped && !scope.Unrestricted() {
		conditions = append(conditions, fmt.Sprintf(
			"operator_id = $%d", len(args)+1))
		args = append(args, scope.TenantID())
	}

	query := "SELECT * FROM " + res.Table +
		" WHERE " + strings.Join(conditions, " AND ")

	row := Row{}
	err := e.db.QueryRowxContext(ctx, query, args...).MapScan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", res.Table, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", res.Table, err)
	}

	return normalizeRow(row), nil
}

// Create inserts a row. For scoped resources the stored tenant is the
// caller's own tenant; only an unrestricted caller may supply an explicit
// operator_id in the body to create on behalf of a tenant. A client-supplied
// operator_id from any other caller is discarded, never trusted.
func (e *Engine) Create(
	ctx context.Context,
	res *Resource,
	scope rbac.Scope,
	fields map[string]any,
) (Row, error) {
	tenantOverride, hasOverride := fields["operator_id"]
	delete(fields, "operator_id")

	if err := validateFields(res, fields); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("create %s: %w", res.Table, core.ErrNoFields)
	}

	var columns []string
	var args []any

	if res.Scoped {
		var tenantValue any
		if scope.Unrestricted() {
			if hasOverride {
				tenantValue = tenantOverride
			}
		} else {
			tenantValue = scope.TenantID()
		}
		columns = append(columns, "operator_id")
		args = append(args, tenantValue)
	}

	for _, col := range res.Columns {
		if value, ok := fields[col]; ok {
			columns = append(columns, col)
			args = append(args, value)
		}
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		res.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	row := Row{}
	if err := e.db.QueryRowxContext(ctx, query, args...).MapScan(row); err != nil {
		if core.IsDuplicateKey(err) {
			return nil, fmt.Errorf(
				"create %s: %w", res.Table, core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("create %s: %w", res.Table, err)
	}

	return normalizeRow(row), nil
}

// Update applies a partial update from whatever allowed keys the body
// contains. operator_id is stripped unconditionally: tenant ownership is
// immutable through this path for every caller.
func (e *Engine) Update(
	ctx context.Context,
	res *Resource,
	scope rbac.Scope,
	id int64,
	fields map[string]any,
) (Row, error) {
	delete(fields, "operator_id")

	if err := validateFields(res, fields); err != nil {
		return nil, err
	}

	var assignments []string
	args := []any{id}

	for _, col := range res.Columns {
		if value, ok := fields[col]; ok {
			args = append(args, value)
			assignments = append(assignments, fmt.Sprintf(
				"%s = $%d", col, len(args)))
		}
	}

	if len(assignments) == 0 {
		return nil, fmt.Errorf("update %s: %w", res.Table, core.ErrNoFields)
	}

	conditions := []string{"id = $1"}
	if res.SoftDelete {
		conditions = append(conditions, "deleted_at IS NULL")
	}

	if res.Scoped && !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		conditions = append(conditions, fmt.Sprintf(
			"operator_id = $%d", len(args)))
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = NOW() WHERE %s RETURNING *",
		res.Table,
		strings.Join(assignments, ", "),
		strings.Join(conditions, " AND "),
	)

	row := Row{}
	err := e.db.QueryRowxContext(ctx, query, args...).MapScan(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Wrong id, already deleted, or another tenant's row: all three
		// must look identical to the caller.
		return nil, fmt.Errorf("update %s: %w", res.Table, core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKey(err) {
			return nil, fmt.Errorf(
				"update %s: %w", res.Table, core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update %s: %w", res.Table, err)
	}

	return normalizeRow(row), nil
}

// SoftDelete marks the row deleted. The row is preserved; no generic
// operation ever hard-deletes.
func (e *Engine) SoftDelete(
	ctx context.Context,
	res *Resource,
	scope rbac.Scope,
	id int64,
) error {
	conditions := []string{"id = $1", "deleted_at IS NULL"}
	args := []any{id}

	if res.Scoped && !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		conditions = append(conditions, fmt.Sprintf(
			"operator_id = $%d", len(args)))
	}

	query := fmt.Sprintf(
		"UPDATE %s SET deleted_at = NOW() WHERE %s RETURNING id",
		res.Table,
		strings.Join(conditions, " AND "),
	)

	var deletedID int64
	err := e.db.QueryRowxContext(ctx, query, args...).Scan(&deletedID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete %s: %w", res.Table, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", res.Table, err)
	}

	return nil
}

func validateFields(res *Resource, fields map[string]any) error {
	for key := range fields {
		if !res.IsWritable(key) {
			return core.ValidationError(fmt.Sprintf(
				"unknown field %q for %s", key, res.Name))
		}
	}
	return nil
}

// normalizeRow converts driver byte slices to strings so rows encode as
// JSON text rather than base64.
func normalizeRow(row Row) Row {
	for key, value := range row {
		if b, ok := value.([]byte); ok {
			row[key] = string(b)
		}
	}
	return row
}
