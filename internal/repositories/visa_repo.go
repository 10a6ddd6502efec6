package repositories

import (
	"database/sql"
	"time"

	"notary-admin/internal/config"
	intdb "notary-admin/internal/db"
	"notary-admin/internal/domain"
)

// VisaOrder mirrors a visa_orders row. Visa orders carry no price;
// fees are settled off-system.
type VisaOrder struct {
	ID                string
	UserID            string
	VisaCategory      string
	VisaCategoryLabel string
	Status            domain.Status
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         sql.NullTime
}

// VisaOrderRepository wraps access to visa_orders. The table may not
// exist on older deployments, so reads degrade to empty results.
type VisaOrderRepository struct {
	DB *sql.DB
}

func (r VisaOrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const visaOrderColumns = `
	id,
	COALESCE(user_id,''),
	COALESCE(visa_category,''),
	COALESCE(visa_category_label,''),
	COALESCE(status,'PENDING'),
	COALESCE(notes,''),
	created_at,
	updated_at`

func scanVisaOrder(rows interface{ Scan(...any) error }) (VisaOrder, error) {
	var o VisaOrder
	err := rows.Scan(
		&o.ID,
		&o.UserID,
		&o.VisaCategory,
		&o.VisaCategoryLabel,
		&o.Status,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// List returns all visa orders, newest first, or nil when the table is
// absent.
func (r VisaOrderRepository) List() ([]VisaOrder, error) {
	db := r.db()
	if !intdb.HasTable(db, "visa_orders") {
		return nil, nil
	}
	rows, err := db.Query(`SELECT` + visaOrderColumns + `
		FROM visa_orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VisaOrder
	for rows.Next() {
		o, err := scanVisaOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListBetween returns visa orders created within [from, to] inclusive.
func (r VisaOrderRepository) ListBetween(from, to time.Time) ([]VisaOrder, error) {
	db := r.db()
	if !intdb.HasTable(db, "visa_orders") {
		return nil, nil
	}
	rows, err := db.Query(`SELECT`+visaOrderColumns+`
		FROM visa_orders
		WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VisaOrder
	for rows.Next() {
		o, err := scanVisaOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetByID loads one visa order by its full id.
func (r VisaOrderRepository) GetByID(id string) (VisaOrder, error) {
	db := r.db()
	if !intdb.HasTable(db, "visa_orders") {
		return VisaOrder{}, domain.NotFoundError{Resource: "order"}
	}
	row := db.QueryRow(`SELECT`+visaOrderColumns+`
		FROM visa_orders WHERE id = ? LIMIT 1`, id)
	o, err := scanVisaOrder(row)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "order", Err: err}
	}
	return o, err
}

// UpdateStatus writes status + updated_at. completed_at is written only
// when the table carries that column; the visa schema predates it.
func (r VisaOrderRepository) UpdateStatus(id string, status domain.Status, now time.Time) error {
	db := r.db()
	if domain.IsCompletedEquivalent(status) && intdb.HasColumn(db, "visa_orders", "completed_at") {
		_, err := db.Exec(`UPDATE visa_orders
			SET status = ?, updated_at = ?, completed_at = ?
			WHERE id = ?`, status, now, now, id)
		return err
	}
	_, err := db.Exec(`UPDATE visa_orders
		SET status = ?, updated_at = ?
		WHERE id = ?`, status, now, id)
	return err
}

// UpdateNotes writes free-text notes + updated_at.
func (r VisaOrderRepository) UpdateNotes(id, notes string, now time.Time) error {
	_, err := r.db().Exec(`UPDATE visa_orders
		SET notes = ?, updated_at = ?
		WHERE id = ?`, notes, now, id)
	return err
}

// CountByCategory tallies visa orders per category code, or an empty
// map when the table is absent.
func (r VisaOrderRepository) CountByCategory() (map[string]int, error) {
	db := r.db()
	out := map[string]int{}
	if !intdb.HasTable(db, "visa_orders") {
		return out, nil
	}
	rows, err := db.Query(`SELECT COALESCE(visa_category,'') FROM visa_orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, err
		}
		if cat != "" {
			out[cat]++
		}
	}
	return out, rows.Err()
}
