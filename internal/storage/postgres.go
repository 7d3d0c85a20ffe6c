package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pwpl/pds-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 2
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Pool exposes the connection pool for migrations
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateProduct inserts a product model
func (r *PostgresRepository) CreateProduct(ctx context.Context, p *models.ProductModel) error {
	specsJSON, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("failed to marshal specifications: %w", err)
	}

	refsJSON, err := json.Marshal(p.ReferenceStandards)
	if err != nil {
		return fmt.Errorf("failed to marshal reference standards: %w", err)
	}

	query := `
		INSERT INTO product_models (id, name, model_number, specifications, reference_standards, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.ModelNumber,
		specsJSON,
		refsJSON,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product model by ID
func (r *PostgresRepository) GetProduct(ctx context.Context, id string) (*models.ProductModel, error) {
	query := `
		SELECT id, name, model_number, specifications, reference_standards, created_at
		FROM product_models
		WHERE id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// ListProducts lists product models, optionally filtered by a name or
// model number substring
func (r *PostgresRepository) ListProducts(ctx context.Context, search string, limit, offset int) ([]*models.ProductModel, error) {
	query := `
		SELECT id, name, model_number, specifications, reference_standards, created_at
		FROM product_models
		WHERE 1=1
	`
	args := make([]interface{}, 0)
	argNum := 1

	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR model_number ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+search+"%")
		argNum++
	}

	query += " ORDER BY name ASC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
		argNum++
	}

	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.ProductModel
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*models.ProductModel, error) {
	var p models.ProductModel
	var specsJSON, refsJSON []byte

	if err := row.Scan(&p.ID, &p.Name, &p.ModelNumber, &specsJSON, &refsJSON, &p.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(specsJSON, &p.Specifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal specifications: %w", err)
	}
	if err := json.Unmarshal(refsJSON, &p.ReferenceStandards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reference standards: %w", err)
	}

	return &p, nil
}

// UpsertDatasheet inserts a datasheet or replaces the stored copy
func (r *PostgresRepository) UpsertDatasheet(ctx context.Context, ds *models.Datasheet) error {
	sheetsJSON, err := json.Marshal(ds.Sheets)
	if err != nil {
		return fmt.Errorf("failed to marshal sheets: %w", err)
	}

	query := `
		INSERT INTO datasheets (id, name, mime_type, url, sheets, content, modified_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, mime_type = EXCLUDED.mime_type, url = EXCLUDED.url,
		    sheets = EXCLUDED.sheets, content = EXCLUDED.content, modified_time = EXCLUDED.modified_time
	`

	_, err = r.pool.Exec(ctx, query,
		ds.ID,
		ds.Name,
		ds.MimeType,
		nullString(ds.URL),
		sheetsJSON,
		nullString(ds.Content),
		ds.ModifiedTime,
		ds.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert datasheet: %w", err)
	}

	return nil
}

// GetDatasheet retrieves a datasheet with its sheets
func (r *PostgresRepository) GetDatasheet(ctx context.Context, id string) (*models.Datasheet, error) {
	query := `
		SELECT id, name, mime_type, url, sheets, content, modified_time, created_at
		FROM datasheets
		WHERE id = $1
	`

	var ds models.Datasheet
	var url, content sql.NullString
	var sheetsJSON []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ds.ID,
		&ds.Name,
		&ds.MimeType,
		&url,
		&sheetsJSON,
		&content,
		&ds.ModifiedTime,
		&ds.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get datasheet: %w", err)
	}

	ds.URL = url.String
	ds.Content = content.String

	if err := json.Unmarshal(sheetsJSON, &ds.Sheets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheets: %w", err)
	}

	return &ds, nil
}

// ListDatasheets lists datasheet metadata, newest first. Sheets and
// content are not loaded.
func (r *PostgresRepository) ListDatasheets(ctx context.Context) ([]*models.Datasheet, error) {
	query := `
		SELECT id, name, mime_type, url, modified_time, created_at
		FROM datasheets
		ORDER BY modified_time DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasheets: %w", err)
	}
	defer rows.Close()

	var sheets []*models.Datasheet
	for rows.Next() {
		var ds models.Datasheet
		var url sql.NullString

		if err := rows.Scan(&ds.ID, &ds.Name, &ds.MimeType, &url, &ds.ModifiedTime, &ds.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan datasheet: %w", err)
		}
		ds.URL = url.String
		sheets = append(sheets, &ds)
	}

	return sheets, rows.Err()
}

// CreateReport archives a generated report
func (r *PostgresRepository) CreateReport(ctx context.Context, rep *models.ArchivedReport) error {
	recordJSON, err := json.Marshal(rep.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal report record: %w", err)
	}

	query := `
		INSERT INTO reports (id, type, datasheet_no, item_name, standard, record, export_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		rep.ID,
		string(rep.Type),
		rep.DatasheetNo,
		rep.ItemName,
		nullString(string(rep.Standard)),
		recordJSON,
		nullString(rep.ExportKey),
		rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

const reportColumns = `id, type, datasheet_no, item_name, standard, record, export_key, created_at`

func scanReport(row pgx.Row) (*models.ArchivedReport, error) {
	var rep models.ArchivedReport
	var typeStr string
	var standard, exportKey sql.NullString
	var recordJSON []byte

	err := row.Scan(
		&rep.ID,
		&typeStr,
		&rep.DatasheetNo,
		&rep.ItemName,
		&standard,
		&recordJSON,
		&exportKey,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rep.Type = models.ReportType(typeStr)
	rep.Standard = models.Standard(standard.String)
	rep.ExportKey = exportKey.String

	if err := json.Unmarshal(recordJSON, &rep.Record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report record: %w", err)
	}

	return &rep, nil
}

// GetReport retrieves an archived report by ID
func (r *PostgresRepository) GetReport(ctx context.Context, id string) (*models.ArchivedReport, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	rep, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return rep, nil
}

// ListReports lists archived reports, newest first
func (r *PostgresRepository) ListReports(ctx context.Context, filters models.ReportFilters) ([]*models.ArchivedReport, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE 1=1`
	args := make([]interface{}, 0)
	argNum := 1

	if filters.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, string(filters.Type))
		argNum++
	}

	if filters.Standard != "" {
		query += fmt.Sprintf(" AND standard = $%d", argNum)
		args = append(args, string(filters.Standard))
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
		argNum++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.ArchivedReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// SetReportExportKey records where a rendered report was uploaded
func (r *PostgresRepository) SetReportExportKey(ctx context.Context, id, key string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE reports SET export_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReportsBefore removes archived reports created before cutoff
func (r *PostgresRepository) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Helper functions for nullable values

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
