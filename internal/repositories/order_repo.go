package repositories

import (
	"database/sql"
	"strings"
	"time"

	"notary-admin/internal/config"
	"notary-admin/internal/domain"
)

// TranslationOrder mirrors a notary_translation_orders row.
type TranslationOrder struct {
	ID              string
	CustomerName    string
	Phone           string
	ServiceType     domain.ServiceType
	CustomFileType  string
	EstimatedPrice  sql.NullFloat64
	Status          domain.Status
	UrgentOption    string
	IsPickupInStore bool
	PickupAddress   string
	DeliveryFormat  string
	Notes           string
	CreatedAt       time.Time
	CompletedAt     sql.NullTime
	UpdatedAt       sql.NullTime
}

// TranslationOrderRepository wraps access to notary_translation_orders.
// Orders are created by the customer-facing flow; this side only reads
// them and writes status/price/notes.
type TranslationOrderRepository struct {
	DB *sql.DB
}

func (r TranslationOrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const translationOrderColumns = `
	id,
	COALESCE(customer_name,''),
	COALESCE(phone_or_whatsapp,''),
	COALESCE(service_type,'OTHER'),
	COALESCE(custom_file_type,''),
	estimated_price,
	COALESCE(status,'PENDING'),
	COALESCE(urgent_option,''),
	COALESCE(is_pickup_in_store,0),
	COALESCE(pickup_address,''),
	COALESCE(delivery_format,''),
	COALESCE(notes,''),
	created_at,
	completed_at,
	updated_at`

func scanTranslationOrder(rows interface{ Scan(...any) error }) (TranslationOrder, error) {
	var o TranslationOrder
	err := rows.Scan(
		&o.ID,
		&o.CustomerName,
		&o.Phone,
		&o.ServiceType,
		&o.CustomFileType,
		&o.EstimatedPrice,
		&o.Status,
		&o.UrgentOption,
		&o.IsPickupInStore,
		&o.PickupAddress,
		&o.DeliveryFormat,
		&o.Notes,
		&o.CreatedAt,
		&o.CompletedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// List returns all translation orders, newest first.
func (r TranslationOrderRepository) List() ([]TranslationOrder, error) {
	rows, err := r.db().Query(`SELECT` + translationOrderColumns + `
		FROM notary_translation_orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TranslationOrder
	for rows.Next() {
		o, err := scanTranslationOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListBetween returns orders created within [from, to] inclusive,
// newest first. The statistics view queries this range server-side.
func (r TranslationOrderRepository) ListBetween(from, to time.Time) ([]TranslationOrder, error) {
	rows, err := r.db().Query(`SELECT`+translationOrderColumns+`
		FROM notary_translation_orders
		WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TranslationOrder
	for rows.Next() {
		o, err := scanTranslationOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetByID loads one order by its full id.
func (r TranslationOrderRepository) GetByID(id string) (TranslationOrder, error) {
	row := r.db().QueryRow(`SELECT`+translationOrderColumns+`
		FROM notary_translation_orders WHERE id = ? LIMIT 1`, id)
	o, err := scanTranslationOrder(row)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "order", Err: err}
	}
	return o, err
}

// UpdateStatus writes status + updated_at, and completed_at when the
// transition is completion-equivalent.
func (r TranslationOrderRepository) UpdateStatus(id string, status domain.Status, now time.Time) error {
	if domain.IsCompletedEquivalent(status) {
		_, err := r.db().Exec(`UPDATE notary_translation_orders
			SET status = ?, updated_at = ?, completed_at = ?
			WHERE id = ?`, status, now, now, id)
		return err
	}
	_, err := r.db().Exec(`UPDATE notary_translation_orders
		SET status = ?, updated_at = ?
		WHERE id = ?`, status, now, id)
	return err
}

// UpdatePrice writes the estimated price (nil clears it) + updated_at.
func (r TranslationOrderRepository) UpdatePrice(id string, price *float64, now time.Time) error {
	var val any
	if price != nil {
		val = *price
	}
	_, err := r.db().Exec(`UPDATE notary_translation_orders
		SET estimated_price = ?, updated_at = ?
		WHERE id = ?`, val, now, id)
	return err
}

// UpdateNotes writes free-text notes + updated_at.
func (r TranslationOrderRepository) UpdateNotes(id, notes string, now time.Time) error {
	_, err := r.db().Exec(`UPDATE notary_translation_orders
		SET notes = ?, updated_at = ?
		WHERE id = ?`, notes, now, id)
	return err
}

// ServiceTypeCounts tallies orders per service type plus the usage
// histogram of custom labels on OTHER-typed orders.
func (r TranslationOrderRepository) ServiceTypeCounts() (map[domain.ServiceType]int, map[string]int, error) {
	rows, err := r.db().Query(`SELECT COALESCE(service_type,'OTHER'), COALESCE(custom_file_type,'')
		FROM notary_translation_orders`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byType := map[domain.ServiceType]int{}
	customTypes := map[string]int{}
	for rows.Next() {
		var svcType domain.ServiceType
		var custom string
		if err := rows.Scan(&svcType, &custom); err != nil {
			return nil, nil, err
		}
		byType[svcType]++
		if svcType == domain.ServiceOther {
			if label := strings.TrimSpace(custom); label != "" {
				customTypes[label]++
			}
		}
	}
	return byType, customTypes, rows.Err()
}
