package repositories

import (
	"database/sql"
	"strings"

	"notary-admin/internal/config"
	"notary-admin/internal/domain"
)

// OrderFileRepository reads notary_translation_files. Files are
// uploaded by the customer-facing flow and only listed here.
type OrderFileRepository struct {
	DB *sql.DB
}

func (r OrderFileRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// ListByOrderIDs fetches the files for a whole order set in a single
// query and groups them by order id. One query for N orders, never N.
func (r OrderFileRepository) ListByOrderIDs(orderIDs []string) (map[string][]domain.OrderFile, error) {
	out := map[string][]domain.OrderFile{}
	if len(orderIDs) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(orderIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db().Query(`SELECT order_id, COALESCE(file_name,''), COALESCE(file_url,''), COALESCE(file_type,'')
		FROM notary_translation_files
		WHERE order_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var f domain.OrderFile
		if err := rows.Scan(&orderID, &f.FileName, &f.FileURL, &f.FileType); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], f)
	}
	return out, rows.Err()
}

// ListByOrderID fetches the authoritative file list for one order.
func (r OrderFileRepository) ListByOrderID(orderID string) ([]domain.OrderFile, error) {
	rows, err := r.db().Query(`SELECT COALESCE(file_name,''), COALESCE(file_url,''), COALESCE(file_type,'')
		FROM notary_translation_files
		WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderFile
	for rows.Next() {
		var f domain.OrderFile
		if err := rows.Scan(&f.FileName, &f.FileURL, &f.FileType); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
