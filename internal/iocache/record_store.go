package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
)

// Table names for record storage.
const (
	sectorsTable = "workwell_sectors"
	recordsTable = "workwell_records"
)

// errRecordsDisabled is returned by writes when the record backend is none.
var errRecordsDisabled = errors.New("record storage is disabled (record-backend none)")

// RecordStoreImpl implements the RecordStore interface on top of database/sql.
type RecordStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// NewRecordStore opens the record database and ensures its tables exist.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (*RecordStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &RecordStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetRecordDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createRecordTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create record tables: %w", err)
	}

	return &RecordStoreImpl{db: db, backend: backend}, nil
}

// createRecordTables creates the sector and record tables when missing.
func createRecordTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, q := range recordTableQueries(backend) {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// recordTableQueries returns the CREATE statements for the backend.
// They mirror the first two migrations so stores work without running them.
// The reporting index only comes from "db migrate".
func recordTableQueries(backend schema.DatabaseBackend) []string {
	sectors := quoteTableName(sectorsTable, backend)
	records := quoteTableName(recordsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				company_id BIGINT NOT NULL,
				name VARCHAR(100) NOT NULL,
				description TEXT,
				created_at DATETIME(6) NOT NULL,
				UNIQUE KEY uq_sector_company_name (company_id, name)
			)`, sectors),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				employee_id BIGINT NOT NULL,
				company_id BIGINT NOT NULL,
				sector_id BIGINT NOT NULL,
				stress INT NOT NULL,
				happiness INT NOT NULL,
				anxiety INT NOT NULL,
				motivation INT NOT NULL,
				comment TEXT,
				anonymous BOOLEAN NOT NULL DEFAULT FALSE,
				sentiment_label VARCHAR(20),
				sentiment_score DOUBLE,
				created_at DATETIME(6) NOT NULL
			)`, records),
		}

	case schema.PostgreSQLBackend:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				company_id BIGINT NOT NULL,
				name VARCHAR(100) NOT NULL,
				description TEXT,
				created_at TIMESTAMPTZ NOT NULL,
				UNIQUE (company_id, name)
			)`, sectors),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				employee_id BIGINT NOT NULL,
				company_id BIGINT NOT NULL,
				sector_id BIGINT NOT NULL,
				stress INT NOT NULL,
				happiness INT NOT NULL,
				anxiety INT NOT NULL,
				motivation INT NOT NULL,
				comment TEXT,
				anonymous BOOLEAN NOT NULL DEFAULT FALSE,
				sentiment_label VARCHAR(20),
				sentiment_score DOUBLE PRECISION,
				created_at TIMESTAMPTZ NOT NULL
			)`, records),
		}

	default: // SQLite
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				company_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				description TEXT,
				created_at TEXT NOT NULL,
				UNIQUE (company_id, name)
			)`, sectors),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				employee_id INTEGER NOT NULL,
				company_id INTEGER NOT NULL,
				sector_id INTEGER NOT NULL,
				stress INTEGER NOT NULL,
				happiness INTEGER NOT NULL,
				anxiety INTEGER NOT NULL,
				motivation INTEGER NOT NULL,
				comment TEXT,
				anonymous INTEGER NOT NULL DEFAULT 0,
				sentiment_label TEXT,
				sentiment_score REAL,
				created_at TEXT NOT NULL
			)`, records),
		}
	}
}

func (rs *RecordStoreImpl) disabled() bool {
	return rs.backend == schema.NoneBackend || rs.db == nil
}

// q quotes the table names and rebinds placeholders for the backend.
func (rs *RecordStoreImpl) q(format string) string {
	return rebind(fmt.Sprintf(format, quoteTableName(sectorsTable, rs.backend), quoteTableName(recordsTable, rs.backend)), rs.backend)
}

// insertReturningID runs an INSERT and returns the new row ID.
// PostgreSQL has no LastInsertId, so the query gets a RETURNING clause there.
func (rs *RecordStoreImpl) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if rs.backend == schema.PostgreSQLBackend {
		var id int64
		err := rs.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	result, err := rs.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// AddSector creates a sector for a company.
func (rs *RecordStoreImpl) AddSector(ctx context.Context, companyID int64, name, description string) (schema.Sector, error) {
	if rs.disabled() {
		return schema.Sector{}, errRecordsDisabled
	}

	query := rs.q(`INSERT INTO %[1]s (company_id, name, description, created_at) VALUES (?, ?, ?, ?)`)
	id, err := rs.insertReturningID(ctx, query, companyID, name, description, formatTime(time.Now(), rs.backend))
	if err != nil {
		return schema.Sector{}, fmt.Errorf("failed to insert sector %q: %w", name, err)
	}
	return schema.Sector{ID: id, CompanyID: companyID, Name: name, Description: description}, nil
}

// ListSectors returns the sectors of a company ordered by name.
func (rs *RecordStoreImpl) ListSectors(ctx context.Context, companyID int64) ([]schema.Sector, error) {
	if rs.disabled() {
		return nil, nil
	}

	rows, err := rs.db.QueryContext(ctx, rs.q(`SELECT id, company_id, name, COALESCE(description, '') FROM %[1]s WHERE company_id = ? ORDER BY name`), companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sectors []schema.Sector
	for rows.Next() {
		var s schema.Sector
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, s)
	}
	return sectors, rows.Err()
}

// InsertRecord stores a record. The sector must belong to the record's company.
func (rs *RecordStoreImpl) InsertRecord(ctx context.Context, rec schema.Record) (int64, error) {
	if rs.disabled() {
		return 0, errRecordsDisabled
	}

	var count int
	if err := rs.db.QueryRowContext(ctx, rs.q(`SELECT COUNT(*) FROM %[1]s WHERE id = ? AND company_id = ?`), rec.SectorID, rec.CompanyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to look up sector: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: sector %d of company %d", contract.ErrNotFound, rec.SectorID, rec.CompanyID)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := rs.q(`INSERT INTO %[2]s (employee_id, company_id, sector_id, stress, happiness, anxiety, motivation, comment, anonymous, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	id, err := rs.insertReturningID(ctx, query,
		rec.EmployeeID, rec.CompanyID, rec.SectorID,
		rec.Ratings.Stress, rec.Ratings.Happiness, rec.Ratings.Anxiety, rec.Ratings.Motivation,
		rec.Comment, rec.Anonymous, formatTime(createdAt, rs.backend))
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	return id, nil
}

// UpdateSentiment attaches a classifier verdict to a stored record.
func (rs *RecordStoreImpl) UpdateSentiment(ctx context.Context, recordID int64, label schema.SentimentLabel, score float64) error {
	if rs.disabled() {
		return errRecordsDisabled
	}

	result, err := rs.db.ExecContext(ctx, rs.q(`UPDATE %[2]s SET sentiment_label = ?, sentiment_score = ? WHERE id = ?`), string(label), score, recordID)
	if err != nil {
		return fmt.Errorf("failed to update sentiment: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update sentiment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: record %d", contract.ErrNotFound, recordID)
	}
	return nil
}

// AllRecords returns every stored record ordered by ID.
func (rs *RecordStoreImpl) AllRecords(ctx context.Context) ([]schema.Record, error) {
	if rs.disabled() {
		return nil, nil
	}

	rows, err := rs.db.QueryContext(ctx, rs.q(`SELECT id, employee_id, company_id, sector_id, stress, happiness, anxiety, motivation,
		COALESCE(comment, ''), anonymous, sentiment_label, sentiment_score, created_at FROM %[2]s ORDER BY id`))
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.Record
	for rows.Next() {
		var (
			r         schema.Record
			label     sql.NullString
			score     sql.NullFloat64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.CompanyID, &r.SectorID,
			&r.Ratings.Stress, &r.Ratings.Happiness, &r.Ratings.Anxiety, &r.Ratings.Motivation,
			&r.Comment, &r.Anonymous, &label, &score, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if label.Valid {
			r.SentimentLabel = label.String
		}
		if score.Valid {
			r.SentimentScore = &score.Float64
		}
		if r.CreatedAt, err = scanTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SectorAggregates averages the ratings per sector for records created at or after since.
// Only sectors with records in the window appear, ordered by name.
func (rs *RecordStoreImpl) SectorAggregates(ctx context.Context, companyID int64, since time.Time) ([]schema.SectorAggregate, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := rs.q(`SELECT s.name, AVG(r.stress), AVG(r.happiness), AVG(r.anxiety), AVG(r.motivation), COUNT(r.id)
		FROM %[2]s r JOIN %[1]s s ON s.id = r.sector_id
		WHERE r.company_id = ? AND r.created_at >= ?
		GROUP BY s.id, s.name
		ORDER BY s.name`)
	rows, err := rs.db.QueryContext(ctx, query, companyID, formatTime(since, rs.backend))
	if err != nil {
		return nil, fmt.Errorf("failed to query sector aggregates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.SectorAggregate
	for rows.Next() {
		var row schema.SectorAggregate
		a := &row.Averages
		if err := rows.Scan(&row.Sector, &a.Stress, &a.Happiness, &a.Anxiety, &a.Motivation, &row.TotalRecords); err != nil {
			return nil, fmt.Errorf("failed to scan sector aggregate: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CompanyStatistics averages every record of a company created at or after since.
func (rs *RecordStoreImpl) CompanyStatistics(ctx context.Context, companyID int64, since time.Time) (schema.Statistics, error) {
	st := schema.Statistics{CompanyID: companyID}
	if rs.disabled() {
		return st, nil
	}

	query := rs.q(`SELECT COUNT(*), COUNT(DISTINCT employee_id),
		COALESCE(AVG(stress), 0), COALESCE(AVG(happiness), 0), COALESCE(AVG(anxiety), 0), COALESCE(AVG(motivation), 0)
		FROM %[2]s WHERE company_id = ? AND created_at >= ?`)
	a := &st.Averages
	err := rs.db.QueryRowContext(ctx, query, companyID, formatTime(since, rs.backend)).
		Scan(&st.TotalRecords, &st.TotalEmployees, &a.Stress, &a.Happiness, &a.Anxiety, &a.Motivation)
	if err != nil {
		return st, fmt.Errorf("failed to query statistics: %w", err)
	}
	return st, nil
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the record store.
func (rs *RecordStoreImpl) GetStatus() (schema.RecordStatus, error) {
	status := schema.RecordStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if rs.disabled() {
		return status, nil
	}

	for _, table := range []string{sectorsTable, recordsTable} {
		var count int64
		if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalSectors = int(status.TableSizes[sectorsTable])
	status.TotalRecords = int(status.TableSizes[recordsTable])
	if status.TotalRecords == 0 {
		return status, nil
	}

	var lastTime, oldestTime any
	if err := rs.db.QueryRow(rs.q(`SELECT id, created_at FROM %[2]s ORDER BY id DESC LIMIT 1`)).Scan(&status.LastRecordID, &lastTime); err != nil {
		return status, fmt.Errorf("failed to get last record: %w", err)
	}
	if err := rs.db.QueryRow(rs.q(`SELECT MIN(created_at) FROM %[2]s`)).Scan(&oldestTime); err != nil {
		return status, fmt.Errorf("failed to get oldest record time: %w", err)
	}

	var err error
	if status.LastRecordTime, err = scanTime(lastTime); err != nil {
		return status, err
	}
	if status.OldestRecordTime, err = scanTime(oldestTime); err != nil {
		return status, err
	}
	return status, nil
}
