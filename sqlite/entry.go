package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/darkcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ darkcrawl.EntryService = (*EntryService)(nil)

// EntryService implements darkcrawl.EntryService using SQLite. An entry and
// its findings are written in one transaction so no partial entry is ever
// visible.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// CreateEntry persists a new entry with its findings. A missing ID is
// assigned. A duplicate ID returns ECONFLICT and leaves the stored entry
// untouched.
func (s *EntryService) CreateEntry(ctx context.Context, entry *darkcrawl.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CapturedAt.IsZero() {
		entry.CapturedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE id = ?", entry.ID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return darkcrawl.Errorf(darkcrawl.ECONFLICT, "entry %q already exists", entry.ID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (id, address, captured_at, viewport_width, viewport_height,
			screenshot, summary, model, snapshot_hash, discovered_from, discovery_order,
			attempts, analysis_failed, dropped_findings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, string(entry.Address), entry.CapturedAt.Format(time.RFC3339),
		entry.Viewport.Width, entry.Viewport.Height, entry.Screenshot, entry.Summary,
		entry.Provenance.Model, entry.Provenance.SnapshotHash,
		string(entry.Provenance.DiscoveredFrom), entry.Provenance.DiscoveryOrder,
		entry.Provenance.Attempts, boolToInt(entry.Provenance.AnalysisFailed),
		entry.Provenance.DroppedFindings)
	if err != nil {
		return err
	}

	for i, f := range entry.Findings {
		var boxX, boxY, boxW, boxH any
		if f.Box != nil {
			boxX, boxY, boxW, boxH = f.Box.X, f.Box.Y, f.Box.Width, f.Box.Height
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings (entry_id, position, type, description, severity,
				location_hint, evidence_text, confidence, box_x, box_y, box_width, box_height, crop)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, i, string(f.Type), f.Description, string(f.Severity),
			f.LocationHint, f.EvidenceText, f.Confidence, boxX, boxY, boxW, boxH, f.Crop)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindEntryByID retrieves an entry with its findings and crop bytes.
func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*darkcrawl.Entry, error) {
	var entry darkcrawl.Entry
	var address, discoveredFrom, capturedAt string
	var analysisFailed int

	err := s.db.QueryRowContext(ctx, `
		SELECT id, address, captured_at, viewport_width, viewport_height, screenshot,
			summary, model, snapshot_hash, discovered_from, discovery_order,
			attempts, analysis_failed, dropped_findings
		FROM entries
		WHERE id = ?
	`, id).Scan(&entry.ID, &address, &capturedAt, &entry.Viewport.Width, &entry.Viewport.Height,
		&entry.Screenshot, &entry.Summary, &entry.Provenance.Model, &entry.Provenance.SnapshotHash,
		&discoveredFrom, &entry.Provenance.DiscoveryOrder, &entry.Provenance.Attempts,
		&analysisFailed, &entry.Provenance.DroppedFindings)

	if err == sql.ErrNoRows {
		return nil, darkcrawl.Errorf(darkcrawl.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}

	entry.Address = darkcrawl.Address(address)
	entry.Provenance.DiscoveredFrom = darkcrawl.Address(discoveredFrom)
	entry.Provenance.AnalysisFailed = analysisFailed != 0
	if entry.CapturedAt, err = parseRFC3339(capturedAt, "captured_at"); err != nil {
		return nil, err
	}

	if entry.Findings, err = s.findFindings(ctx, id, true); err != nil {
		return nil, err
	}

	return &entry, nil
}

// FindEntries retrieves entries matching the filter, newest first. Findings
// are included without crop bytes; screenshots are omitted.
func (s *EntryService) FindEntries(ctx context.Context, filter darkcrawl.EntryFilter) ([]*darkcrawl.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, address, captured_at, viewport_width, viewport_height,
		summary, model, snapshot_hash, discovered_from, discovery_order,
		attempts, analysis_failed, dropped_findings
		FROM entries WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Address != nil {
		query.WriteString(" AND address = ?")
		args = append(args, *filter.Address)
	}
	if filter.AnalysisFailed != nil {
		query.WriteString(" AND analysis_failed = ?")
		args = append(args, boolToInt(*filter.AnalysisFailed))
	}

	query.WriteString(" ORDER BY captured_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*darkcrawl.Entry
	for rows.Next() {
		var entry darkcrawl.Entry
		var address, discoveredFrom, capturedAt string
		var analysisFailed int

		if err := rows.Scan(&entry.ID, &address, &capturedAt,
			&entry.Viewport.Width, &entry.Viewport.Height, &entry.Summary,
			&entry.Provenance.Model, &entry.Provenance.SnapshotHash, &discoveredFrom,
			&entry.Provenance.DiscoveryOrder, &entry.Provenance.Attempts,
			&analysisFailed, &entry.Provenance.DroppedFindings); err != nil {
			return nil, err
		}

		entry.Address = darkcrawl.Address(address)
		entry.Provenance.DiscoveredFrom = darkcrawl.Address(discoveredFrom)
		entry.Provenance.AnalysisFailed = analysisFailed != 0
		if entry.CapturedAt, err = parseRFC3339(capturedAt, "captured_at"); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.Findings, err = s.findFindings(ctx, entry.ID, false); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// DeleteEntry permanently removes an entry; its findings cascade.
func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return darkcrawl.Errorf(darkcrawl.ENOTFOUND, "entry not found")
	}

	return nil
}

// Stats aggregates the stored dataset.
func (s *EntryService) Stats(ctx context.Context) (*darkcrawl.DatasetStats, error) {
	var stats darkcrawl.DatasetStats

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(analysis_failed), 0) FROM entries
	`).Scan(&stats.Entries, &stats.FailedAnalyses)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(box_x IS NOT NULL), 0) FROM findings
	`).Scan(&stats.Findings, &stats.FindingsWithBox)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// findFindings loads the findings of one entry in stored order. Crop bytes
// are only loaded when withCrops is set.
func (s *EntryService) findFindings(ctx context.Context, entryID string, withCrops bool) ([]darkcrawl.Finding, error) {
	cropCol := "NULL"
	if withCrops {
		cropCol = "crop"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, description, severity, location_hint, evidence_text,
			confidence, box_x, box_y, box_width, box_height, `+cropCol+`
		FROM findings
		WHERE entry_id = ?
		ORDER BY position
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var findings []darkcrawl.Finding
	for rows.Next() {
		var f darkcrawl.Finding
		var typ, severity string
		var boxX, boxY, boxW, boxH sql.NullInt64

		if err := rows.Scan(&typ, &f.Description, &severity, &f.LocationHint,
			&f.EvidenceText, &f.Confidence, &boxX, &boxY, &boxW, &boxH, &f.Crop); err != nil {
			return nil, err
		}

		f.Type = darkcrawl.PatternType(typ)
		f.Severity = darkcrawl.Severity(severity)
		if boxX.Valid {
			f.Box = &darkcrawl.BoundingBox{
				X:      int(boxX.Int64),
				Y:      int(boxY.Int64),
				Width:  int(boxW.Int64),
				Height: int(boxH.Int64),
			}
		}

		findings = append(findings, f)
	}

	return findings, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
