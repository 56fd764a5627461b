package database

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// InquiryStore persists contact and inquiry submissions in one table,
// tagged by kind.
type InquiryStore struct {
	db *sql.DB
}

func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

const inquiryColumns = `id, kind, name, email, phone, wedding_date, package, guest_count, budget, message, status, priority, source, notes, submitted_at, last_contacted_at, updated_at`

func scanInquiry(scan func(dest ...any) error) (*models.Inquiry, error) {
	inq := &models.Inquiry{}
	var pkg, guestCount, budget, priority, notes sql.NullString
	err := scan(
		&inq.ID, &inq.Kind, &inq.Name, &inq.Email, &inq.Phone,
		&inq.WeddingDate, &pkg, &guestCount, &budget,
		&inq.Message, &inq.Status, &priority, &inq.Source, &notes,
		&inq.SubmittedAt, &inq.LastContactedAt, &inq.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	inq.Package = pkg.String
	inq.GuestCount = guestCount.String
	inq.Budget = budget.String
	inq.Priority = priority.String
	inq.Notes = notes.String
	return inq, nil
}

// Create inserts a validated, normalized submission.
func (s *InquiryStore) Create(inq *models.Inquiry) error {
	query := `INSERT INTO inquiries
			  (kind, name, email, phone, wedding_date, package, guest_count, budget, message, status, priority, source, notes)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, ''), $12, NULLIF($13, ''))
			  RETURNING id, submitted_at, updated_at`
	err := s.db.QueryRow(query,
		inq.Kind, inq.Name, inq.Email, inq.Phone, inq.WeddingDate,
		inq.Package, inq.GuestCount, inq.Budget,
		inq.Message, inq.Status, inq.Priority, inq.Source, inq.Notes,
	).Scan(&inq.ID, &inq.SubmittedAt, &inq.UpdatedAt)
	return storeErr(err)
}

// validID keeps malformed ids from reaching the uuid column, where
// they would surface as a driver error instead of a miss.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetByID loads one record of the given kind.
func (s *InquiryStore) GetByID(kind, id string) (*models.Inquiry, error) {
	if !validID(id) {
		return nil, models.ErrNotFound
	}
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1 AND kind = $2`
	return scanInquiry(s.db.QueryRow(query, id, kind).Scan)
}

// List returns records of a kind, newest first, optionally filtered
// by status.
func (s *InquiryStore) List(kind, status string, limit int) ([]*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries
			  WHERE kind = $1 AND ($2 = '' OR status = $2)
			  ORDER BY submitted_at DESC
			  LIMIT $3`
	rows, err := s.db.Query(query, kind, status, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var out []*models.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, storeErr(rows.Err())
}

// Recent returns the newest submissions across both kinds, for the
// dashboard.
func (s *InquiryStore) Recent(limit int) ([]*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries
			  ORDER BY submitted_at DESC LIMIT $1`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var out []*models.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, storeErr(rows.Err())
}

// CountByStatus returns status counts for one kind.
func (s *InquiryStore) CountByStatus(kind string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM inquiries WHERE kind = $1 GROUP BY status`, kind)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, storeErr(err)
		}
		counts[status] = n
	}
	return counts, storeErr(rows.Err())
}

// UpdateStatus moves a record to a new status within its kind's
// status set. Moving to "contacted" stamps last_contacted_at.
func (s *InquiryStore) UpdateStatus(kind, id, status string) (*models.Inquiry, error) {
	if !models.ValidStatus(kind, status) {
		return nil, &models.InvalidStatusError{Kind: kind, Status: status}
	}
	if !validID(id) {
		return nil, models.ErrNotFound
	}

	query := `UPDATE inquiries
			  SET status = $1,
				  last_contacted_at = CASE WHEN $1 = 'contacted' THEN NOW() ELSE last_contacted_at END,
				  updated_at = NOW()
			  WHERE id = $2 AND kind = $3
			  RETURNING ` + inquiryColumns
	return scanInquiry(s.db.QueryRow(query, status, id, kind).Scan)
}

// UpdateNotes replaces the admin notes on a record.
func (s *InquiryStore) UpdateNotes(kind, id, notes string) error {
	if !validID(id) {
		return models.ErrNotFound
	}
	res, err := s.db.Exec(`UPDATE inquiries SET notes = NULLIF($1, ''), updated_at = NOW() WHERE id = $2 AND kind = $3`,
		notes, id, kind)
	if err != nil {
		return storeErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete permanently removes a record. There is no soft delete.
func (s *InquiryStore) Delete(kind, id string) error {
	if !validID(id) {
		return models.ErrNotFound
	}
	res, err := s.db.Exec(`DELETE FROM inquiries WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		return storeErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
