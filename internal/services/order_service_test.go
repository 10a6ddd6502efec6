package services

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"notary-admin/internal/domain"
	"notary-admin/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var translationColumns = []string{
	"id", "customer_name", "phone_or_whatsapp", "service_type", "custom_file_type",
	"estimated_price", "status", "urgent_option", "is_pickup_in_store",
	"pickup_address", "delivery_format", "notes", "created_at", "completed_at", "updated_at",
}

var visaColumns = []string{
	"id", "user_id", "visa_category", "visa_category_label", "status", "notes", "created_at", "updated_at",
}

func testOrderService(db *sql.DB) OrderService {
	return OrderService{
		Orders:   repositories.TranslationOrderRepository{DB: db},
		Visa:     repositories.VisaOrderRepository{DB: db},
		Files:    repositories.OrderFileRepository{DB: db},
		Settings: repositories.SettingsRepository{DB: db},
		Now:      func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local) },
	}
}

func translationRow(rows *sqlmock.Rows, id, name string, price any, status string, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id, name, "+77771234567", "ID_CARD", "", price, status, "", false, "", "PHYSICAL", "", created, nil, nil)
}

func expectVisaTableAbsent(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs("visa_orders").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
}

func expectVisaTablePresent(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs("visa_orders").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("visa_orders"))
}

func TestLoadOrdersBatchesFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows(translationColumns)
	translationRow(rows, "order-aaaa-1111", "王小明", 500.0, "PENDING", created)
	translationRow(rows, "order-bbbb-2222", "李华", nil, "COMPLETED", created)
	mock.ExpectQuery("FROM notary_translation_orders ORDER BY created_at DESC").
		WillReturnRows(rows)

	expectVisaTableAbsent(mock)

	mock.ExpectQuery("FROM notary_admin_settings").WithArgs("currency_symbol").
		WillReturnError(sql.ErrNoRows)

	// the whole set resolves files in one IN query
	mock.ExpectQuery("FROM notary_translation_files").
		WithArgs("order-aaaa-1111", "order-bbbb-2222").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "file_name", "file_url", "file_type"}).
			AddRow("order-aaaa-1111", "passport.pdf", "https://files/passport.pdf", "application/pdf"))

	loaded, err := testOrderService(db).LoadOrders()
	if err != nil {
		t.Fatalf("LoadOrders error: %v", err)
	}
	if len(loaded.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(loaded.Orders))
	}
	if loaded.Currency != "₸" {
		t.Fatalf("missing currency row should default, got %s", loaded.Currency)
	}
	if len(loaded.Orders[0].Files) != 1 || loaded.Orders[0].Files[0].FileName != "passport.pdf" {
		t.Fatalf("files not attached: %+v", loaded.Orders[0].Files)
	}
	if len(loaded.Orders[1].Files) != 0 {
		t.Fatalf("second order should carry no files")
	}
	if loaded.Orders[0].ID != "order-aa..." {
		t.Fatalf("display id not shortened: %s", loaded.Orders[0].ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadOrdersTranslationFailureIsFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM notary_translation_orders ORDER BY created_at DESC").
		WillReturnError(errors.New("connection refused"))
	expectVisaTableAbsent(mock)
	mock.ExpectQuery("FROM notary_admin_settings").WithArgs("currency_symbol").
		WillReturnError(sql.ErrNoRows)

	_, err = testOrderService(db).LoadOrders()
	if err == nil || !strings.Contains(err.Error(), "加载订单失败") {
		t.Fatalf("expected fatal load error, got %v", err)
	}
	if !domain.IsInternal(err) || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("load failures must carry the backend message, got %v", err)
	}
}

func TestLoadOrdersVisaFailureDegrades(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows(translationColumns)
	translationRow(rows, "order-aaaa-1111", "王小明", 500.0, "PENDING", created)
	mock.ExpectQuery("FROM notary_translation_orders ORDER BY created_at DESC").
		WillReturnRows(rows)

	expectVisaTablePresent(mock)
	mock.ExpectQuery("FROM visa_orders ORDER BY created_at DESC").
		WillReturnError(errors.New("table corrupted"))

	mock.ExpectQuery("FROM notary_admin_settings").WithArgs("currency_symbol").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("₸"))
	mock.ExpectQuery("FROM notary_translation_files").WithArgs("order-aaaa-1111").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "file_name", "file_url", "file_type"}))

	loaded, err := testOrderService(db).LoadOrders()
	if err != nil {
		t.Fatalf("visa failure must not break the load: %v", err)
	}
	if len(loaded.Orders) != 1 {
		t.Fatalf("expected the translation order only, got %d", len(loaded.Orders))
	}
}

func TestGetOrderDetailByShortID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows(translationColumns)
	translationRow(rows, "abcd1234-efgh-5678", "王小明", nil, "PENDING", created)
	mock.ExpectQuery("FROM notary_translation_orders ORDER BY created_at DESC").
		WillReturnRows(rows)
	expectVisaTableAbsent(mock)
	mock.ExpectQuery("FROM notary_admin_settings").WithArgs("currency_symbol").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM notary_translation_files").WithArgs("abcd1234-efgh-5678").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "file_name", "file_url", "file_type"}))

	// unpriced orders surface the configured base price
	mock.ExpectQuery("FROM notary_admin_settings").WithArgs("price_id_card").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("5000"))
	mock.ExpectQuery("FROM notary_translation_files").WithArgs("abcd1234-efgh-5678").
		WillReturnRows(sqlmock.NewRows([]string{"file_name", "file_url", "file_type"}).
			AddRow("id.jpg", "https://files/id.jpg", "image/jpeg"))

	detail, err := testOrderService(db).GetOrderDetail("abcd1234...")
	if err != nil {
		t.Fatalf("GetOrderDetail error: %v", err)
	}
	if detail.Order.FullID != "abcd1234-efgh-5678" {
		t.Fatalf("resolved wrong order: %+v", detail.Order)
	}
	if detail.BasePrice == nil || *detail.BasePrice != 5000 {
		t.Fatalf("base price not surfaced: %v", detail.BasePrice)
	}
	if detail.WhatsAppLink != "https://wa.me/77771234567" {
		t.Fatalf("whatsapp link = %s", detail.WhatsAppLink)
	}
	if !detail.PriceEditable || !detail.FilesSupported {
		t.Fatalf("translation orders are editable: %+v", detail)
	}
	if len(detail.Order.Files) != 1 || detail.Order.Files[0].FileName != "id.jpg" {
		t.Fatalf("files not refreshed: %+v", detail.Order.Files)
	}
	if len(detail.StatusOptions) != 7 {
		t.Fatalf("expected the translation status vocabulary, got %d options", len(detail.StatusOptions))
	}
}

func TestGetOrderDetailUnknownID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM notary_translation_orders ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(translationColumns))
	expectVisaTableAbsent(mock)
	mock.ExpectQuery("FROM notary_admin_settings").WithArgs("currency_symbol").
		WillReturnError(sql.ErrNoRows)

	_, err = testOrderService(db).GetOrderDetail("missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusCoercesVisaVocabulary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	// id is not a translation order
	mock.ExpectQuery("FROM notary_translation_orders WHERE id = \\?").WithArgs("visa-1").
		WillReturnError(sql.ErrNoRows)
	expectVisaTablePresent(mock)
	mock.ExpectQuery("FROM visa_orders WHERE id = \\?").WithArgs("visa-1").
		WillReturnRows(sqlmock.NewRows(visaColumns).
			AddRow("visa-1", "user-1", "B2", "B2 旅游签证", "PENDING", "", time.Now(), nil))

	// CONTACTED is not in the visa vocabulary and lands as IN_PROGRESS
	mock.ExpectExec("UPDATE visa_orders").
		WithArgs("IN_PROGRESS", sqlmock.AnyArg(), "visa-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := testOrderService(db).UpdateStatus("visa-1", domain.StatusContacted); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSavePriceRejectsVisaOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM notary_translation_orders WHERE id = \\?").WithArgs("visa-1").
		WillReturnError(sql.ErrNoRows)
	expectVisaTablePresent(mock)
	mock.ExpectQuery("FROM visa_orders WHERE id = \\?").WithArgs("visa-1").
		WillReturnRows(sqlmock.NewRows(visaColumns).
			AddRow("visa-1", "user-1", "B2", "B2 旅游签证", "PENDING", "", time.Now(), nil))

	_, err = testOrderService(db).SavePrice("visa-1", "100", false)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSavePriceWritesTranslationOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows(translationColumns)
	translationRow(rows, "order-1", "王小明", nil, "PENDING", created)
	mock.ExpectQuery("FROM notary_translation_orders WHERE id = \\?").WithArgs("order-1").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE notary_translation_orders").
		WithArgs(150.5, sqlmock.AnyArg(), "order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	price, err := testOrderService(db).SavePrice("order-1", "150.50", false)
	if err != nil {
		t.Fatalf("SavePrice error: %v", err)
	}
	if price == nil || *price != 150.5 {
		t.Fatalf("price = %v", price)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestParsePrice(t *testing.T) {
	if _, err := ParsePrice("-5", false); !domain.IsValidation(err) {
		t.Errorf("negative price should fail, got %v", err)
	}
	if _, err := ParsePrice("abc", false); !domain.IsValidation(err) {
		t.Errorf("non-numeric price should fail, got %v", err)
	}
	if _, err := ParsePrice("", false); !domain.IsValidation(err) {
		t.Errorf("clearing without confirmation should fail, got %v", err)
	}

	price, err := ParsePrice("", true)
	if err != nil || price != nil {
		t.Errorf("confirmed clear should yield nil price, got %v, %v", price, err)
	}
	price, err = ParsePrice(" 150.50 ", false)
	if err != nil || price == nil || *price != 150.5 {
		t.Errorf("valid price rejected: %v, %v", price, err)
	}
	price, err = ParsePrice("0", false)
	if err != nil || price == nil || *price != 0 {
		t.Errorf("zero is a valid price: %v, %v", price, err)
	}
}
