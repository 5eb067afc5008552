// Package schema applies the incrementum schema as a fixed, ordered list of
// idempotent, additive-only migration steps. Every structural change is
// guarded by an existence check, so re-running the full set against any
// partially-migrated database converges to the same structure and is a no-op
// once applied. Steps never drop or rewrite existing columns, which keeps the
// runner safe to execute concurrently with live read/write traffic.
package schema

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	accountentity "incrementum/internal/feature/accounts/domain/entity"
	collectionentity "incrementum/internal/feature/collections/domain/entity"
	historyentity "incrementum/internal/feature/history/domain/entity"
	screenerentity "incrementum/internal/feature/screeners/domain/entity"
	stockentity "incrementum/internal/feature/stocks/domain/entity"
)

// step is one named, idempotent schema change. Steps run in declaration
// order; the first failure aborts the run.
type step struct {
	name  string
	apply func(db *gorm.DB) error
}

// stockMetadataColumns are the stock columns added after the initial
// symbol/company_name/updated_at table, one additive nullable column each.
// Order matches the order the original migrations introduced them in.
var stockMetadataColumns = []string{
	"Description",
	"MarketCap",
	"PrimaryExchange",
	"Type",
	"CurrencyName",
	"CIK",
	"CompositeFIGI",
	"ShareClassFIGI",
	"OutstandingShares",
	"EPS",
	"HomepageURL",
	"TotalEmployees",
	"ListDate",
	"Locale",
	"SICCode",
	"SICDescription",
}

// accountAddedColumns are the account columns added after the initial table.
var accountAddedColumns = []string{
	"APIKey",
	"AuthProviderID",
}

func steps() []step {
	return []step{
		{"create_account", createTable(&accountentity.Account{})},
		{"create_stock", createTable(&stockentity.Stock{})},
		{"create_stock_history", createTable(&historyentity.Bar{})},
		{"create_screener", createTable(&screenerentity.Screener{})},
		{"create_custom_screener", createTable(&screenerentity.CustomScreener{})},
		{"create_custom_collection", createTable(&collectionentity.CustomCollection{})},
		{"create_custom_collection_stock", createTable(&collectionentity.CustomCollectionStock{})},
		{"create_blacklist", createTable(&historyentity.BlacklistEntry{})},
		{"add_stock_metadata_columns", addColumns(&stockentity.Stock{}, stockMetadataColumns)},
		{"add_account_columns", addColumns(&accountentity.Account{}, accountAddedColumns)},
		{"add_foreign_keys", createForeignKeys()},
		{"index_stock_history_symbol_hourly_time", createIndex(
			&historyentity.Bar{},
			"idx_stock_history_symbol_hourly_time",
			"stock_history", "stock_symbol", "is_hourly", "day_and_time",
		)},
	}
}

// EnsureSchema applies every migration step in order. It is safe to call any
// number of times, from any number of processes; already-applied steps are
// no-ops. A failure is returned immediately so callers can abort startup
// rather than run against a partially-migrated schema.
func EnsureSchema(db *gorm.DB) error {
	for _, s := range steps() {
		if err := s.apply(db); err != nil {
			return fmt.Errorf("schema step %s: %w", s.name, err)
		}
		slog.Debug("schema step applied", "step", s.name)
	}
	return nil
}

// createTable creates the model's table, with its tag-declared constraints
// and indexes, only when it does not already exist.
func createTable(model any) func(db *gorm.DB) error {
	return func(db *gorm.DB) error {
		m := db.Migrator()
		if m.HasTable(model) {
			return nil
		}
		return m.CreateTable(model)
	}
}

// addColumns adds each named model field as a column when missing. All added
// columns are nullable in the model, so existing rows stay valid.
func addColumns(model any, fields []string) func(db *gorm.DB) error {
	return func(db *gorm.DB) error {
		m := db.Migrator()
		for _, f := range fields {
			if m.HasColumn(model, f) {
				continue
			}
			if err := m.AddColumn(model, f); err != nil {
				return fmt.Errorf("add column %s: %w", f, err)
			}
		}
		return nil
	}
}

// foreignKeys names every referential constraint between the tables. The
// constraints are declared on entity association fields, so freshly created
// tables get them in their CREATE TABLE; this list retrofits databases whose
// tables predate the constraints. Names follow gorm's fk_<table>_<relation>
// convention and are part of the compatibility surface.
type foreignKey struct {
	model any
	name  string
}

func foreignKeys() []foreignKey {
	return []foreignKey{
		{&historyentity.Bar{}, "fk_stock_history_stock"},
		{&screenerentity.CustomScreener{}, "fk_custom_screener_account"},
		{&collectionentity.CustomCollection{}, "fk_custom_collection_account"},
		{&collectionentity.CustomCollectionStock{}, "fk_custom_collection_stock_collection"},
		{&collectionentity.CustomCollectionStock{}, "fk_custom_collection_stock_stock"},
	}
}

// createForeignKeys adds each missing referential constraint. On Postgres
// this is ALTER TABLE ADD CONSTRAINT; SQLite cannot alter constraints in
// place, so its driver rebuilds the table, which is acceptable for the test
// databases it serves.
func createForeignKeys() func(db *gorm.DB) error {
	return func(db *gorm.DB) error {
		m := db.Migrator()
		for _, fk := range foreignKeys() {
			if m.HasConstraint(fk.model, fk.name) {
				continue
			}
			if err := m.CreateConstraint(fk.model, fk.name); err != nil {
				return fmt.Errorf("add constraint %s: %w", fk.name, err)
			}
		}
		return nil
	}
}

// createIndex builds a secondary index when missing. On Postgres it uses
// CREATE INDEX CONCURRENTLY so the build never blocks readers or writers of
// the table, then verifies the index is valid: a concurrent build that fails
// partway leaves an invalid index behind, which must be dropped and reported
// rather than silently trusted.
func createIndex(model any, name, table string, columns ...string) func(db *gorm.DB) error {
	return func(db *gorm.DB) error {
		m := db.Migrator()
		if m.HasIndex(model, name) {
			return nil
		}

		if db.Dialector.Name() != "postgres" {
			cols := ""
			for i, c := range columns {
				if i > 0 {
					cols += ", "
				}
				cols += c
			}
			return db.Exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, cols)).Error
		}

		cols := ""
		for i, c := range columns {
			if i > 0 {
				cols += ", "
			}
			cols += c
		}
		if err := db.Exec(fmt.Sprintf("CREATE INDEX CONCURRENTLY IF NOT EXISTS %s ON %s (%s)", name, table, cols)).Error; err != nil {
			return err
		}

		var valid bool
		err := db.Raw(
			`SELECT i.indisvalid FROM pg_index i
			 JOIN pg_class c ON c.oid = i.indexrelid
			 JOIN pg_namespace n ON n.oid = c.relnamespace
			 WHERE c.relname = ? AND n.nspname = current_schema()`, name,
		).Scan(&valid).Error
		if err != nil {
			return err
		}
		if !valid {
			_ = db.Exec(fmt.Sprintf("DROP INDEX IF EXISTS %s", name)).Error
			return fmt.Errorf("concurrent build of index %s did not complete; dropped invalid index", name)
		}
		return nil
	}
}
