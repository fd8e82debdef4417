package repository

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go-inventory-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type statement struct {
	SQL  string
	Vars []interface{}
}

// recorder keeps every statement GORM builds against a dry-run connection.
type recorder struct {
	mu    sync.Mutex
	stmts []statement
}

func (r *recorder) record(tx *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, statement{
		SQL:  strings.Join(strings.Fields(tx.Statement.SQL.String()), " "),
		Vars: append([]interface{}(nil), tx.Statement.Vars...),
	})
}

func (r *recorder) last(t *testing.T) statement {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.stmts, "no statement was built")
	return r.stmts[len(r.stmts)-1]
}

// dryRunDB opens a PostgreSQL dialect that builds statements without a
// server. Reads that need rows fail with ErrDryRunModeUnsupported.
func dryRunDB(t *testing.T) (*gorm.DB, *recorder) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=inventory dbname=inventory sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	rec := &recorder{}
	cb := db.Callback()
	require.NoError(t, cb.Query().After("gorm:query").Register("test:record", rec.record))
	require.NoError(t, cb.Row().After("gorm:row").Register("test:record", rec.record))
	require.NoError(t, cb.Create().After("gorm:create").Register("test:record", rec.record))
	require.NoError(t, cb.Update().After("gorm:update").Register("test:record", rec.record))
	require.NoError(t, cb.Delete().After("gorm:delete").Register("test:record", rec.record))
	return db, rec
}

func TestInventoryRepo_ListSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	_, _ = NewInventoryRepo(db).List(context.Background())

	stmt := rec.last(t)
	assert.Equal(t, "SELECT i.id_inventario, i.nombre, i.descripcion, i.stock, i.costo_unitario, i.fecha_registro, "+
		"p.id_proveedor, p.nombre_compania "+
		"FROM inventario AS i INNER JOIN proveedores AS p ON p.id_proveedor = i.id_proveedor "+
		"ORDER BY i.fecha_registro DESC, i.nombre ASC, i.id_inventario ASC", stmt.SQL)
	assert.Empty(t, stmt.Vars)
}

func TestInventoryRepo_ListBySupplierSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	_, _ = NewInventoryRepo(db).ListBySupplier(context.Background(), 4)

	stmt := rec.last(t)
	assert.Contains(t, stmt.SQL, "INNER JOIN proveedores AS p ON p.id_proveedor = i.id_proveedor")
	assert.Contains(t, stmt.SQL, "WHERE i.id_proveedor = $1")
	assert.True(t, strings.HasSuffix(stmt.SQL, "ORDER BY i.nombre ASC, i.id_inventario ASC"), stmt.SQL)
	assert.Equal(t, []interface{}{uint(4)}, stmt.Vars)
}

func TestInventoryRepo_FindDetailSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	_, err := NewInventoryRepo(db).FindDetail(context.Background(), 9)
	assert.Error(t, err)

	stmt := rec.last(t)
	assert.True(t, strings.HasPrefix(stmt.SQL, "SELECT i.id_inventario,"), stmt.SQL)
	assert.Contains(t, stmt.SQL, "p.nombre_compania, p.telefono, p.email FROM inventario AS i")
	assert.Contains(t, stmt.SQL, "WHERE i.id_inventario = $1 LIMIT")
	assert.Equal(t, uint(9), stmt.Vars[0])
}

func TestLockByIDSQL(t *testing.T) {
	cases := []struct {
		name   string
		lock   func(db *gorm.DB, mode LockMode)
		table  string
		mode   LockMode
		suffix string
	}{
		{"supplier share", func(db *gorm.DB, m LockMode) { _, _ = NewSupplierRepo(db).LockByID(context.Background(), 5, m) },
			`"proveedores"."id_proveedor" = $1`, LockShare, "FOR SHARE"},
		{"supplier update", func(db *gorm.DB, m LockMode) { _, _ = NewSupplierRepo(db).LockByID(context.Background(), 5, m) },
			`"proveedores"."id_proveedor" = $1`, LockUpdate, "FOR UPDATE"},
		{"item update", func(db *gorm.DB, m LockMode) { _, _ = NewInventoryRepo(db).LockByID(context.Background(), 5, m) },
			`"inventario"."id_inventario" = $1`, LockUpdate, "FOR UPDATE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, rec := dryRunDB(t)
			tc.lock(db, tc.mode)

			stmt := rec.last(t)
			assert.Contains(t, stmt.SQL, "WHERE "+tc.table)
			assert.True(t, strings.HasSuffix(stmt.SQL, tc.suffix), stmt.SQL)
			assert.Equal(t, uint(5), stmt.Vars[0])
		})
	}
}

func TestSupplierRepo_EmailTakenSQL(t *testing.T) {
	t.Run("new supplier", func(t *testing.T) {
		db, rec := dryRunDB(t)
		_, _ = NewSupplierRepo(db).EmailTaken(context.Background(), "Ventas@Acme.com", 0)

		stmt := rec.last(t)
		assert.Equal(t, `SELECT count(*) FROM "proveedores" WHERE lower(email) = lower($1)`, stmt.SQL)
		assert.Equal(t, []interface{}{"Ventas@Acme.com"}, stmt.Vars)
	})

	t.Run("existing supplier", func(t *testing.T) {
		db, rec := dryRunDB(t)
		_, _ = NewSupplierRepo(db).EmailTaken(context.Background(), "ventas@acme.com", 7)

		stmt := rec.last(t)
		assert.Equal(t, `SELECT count(*) FROM "proveedores" WHERE lower(email) = lower($1) AND id_proveedor <> $2`, stmt.SQL)
		assert.Equal(t, []interface{}{"ventas@acme.com", uint(7)}, stmt.Vars)
	})
}

func TestSupplierRepo_ListSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewSupplierRepo(db)

	_, _ = repo.ListBrief(context.Background())
	assert.Equal(t, `SELECT id_proveedor, nombre_compania FROM "proveedores" ORDER BY nombre_compania ASC, id_proveedor ASC`,
		rec.last(t).SQL)

	_, _ = repo.ListSummaries(context.Background())
	assert.Equal(t, `SELECT id_proveedor, nombre_compania, telefono, email FROM "proveedores" ORDER BY nombre_compania ASC, id_proveedor ASC`,
		rec.last(t).SQL)
}

func TestSupplierRepo_CreateLetsDatabaseStampRegistration(t *testing.T) {
	db, rec := dryRunDB(t)
	require.NoError(t, NewSupplierRepo(db).Create(context.Background(), &model.Supplier{
		CompanyName: "Acme",
		Email:       "ventas@acme.com",
	}))

	stmt := rec.last(t)
	insert, returning, found := strings.Cut(stmt.SQL, " RETURNING ")
	require.True(t, found, stmt.SQL)
	assert.True(t, strings.HasPrefix(insert, `INSERT INTO "proveedores" (`), insert)
	assert.NotContains(t, insert, "fecha_registro")
	assert.NotContains(t, insert, `"id_proveedor"`)
	assert.Contains(t, returning, `"fecha_registro"`)
	assert.Contains(t, returning, `"id_proveedor"`)
}

func TestInventoryRepo_CreateSkipsSupplierAssociation(t *testing.T) {
	db, rec := dryRunDB(t)
	require.NoError(t, NewInventoryRepo(db).Create(context.Background(), &model.InventoryItem{
		SupplierID: 2,
		Name:       "Tornillo",
		UnitCost:   decimal.RequireFromString("0.35"),
	}))

	stmt := rec.last(t)
	assert.True(t, strings.HasPrefix(stmt.SQL, `INSERT INTO "inventario" (`), stmt.SQL)
	assert.Contains(t, stmt.SQL, `"stock"`)
	assert.NotContains(t, stmt.SQL, `"proveedores"`)
	assert.Contains(t, stmt.SQL, `RETURNING`)
}

func TestSupplierRepo_UpdateSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	phone := "555-0101"
	// nothing is executed, so no row reports as affected
	err := NewSupplierRepo(db).Update(context.Background(), &model.Supplier{
		ID: 3, CompanyName: "Acme", Phone: &phone, Email: "ventas@acme.com",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	stmt := rec.last(t)
	assert.Equal(t, `UPDATE "proveedores" SET "email"=$1,"nombre_compania"=$2,"telefono"=$3 WHERE id_proveedor = $4`, stmt.SQL)
	require.Len(t, stmt.Vars, 4)
	assert.Equal(t, "ventas@acme.com", stmt.Vars[0])
	assert.Equal(t, uint(3), stmt.Vars[3])
	assert.NotContains(t, stmt.SQL, "fecha_registro")
}

func TestInventoryRepo_UpdateSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	err := NewInventoryRepo(db).Update(context.Background(), &model.InventoryItem{
		ID: 8, SupplierID: 2, Name: "Tuerca", Stock: 0, UnitCost: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	stmt := rec.last(t)
	assert.Equal(t, `UPDATE "inventario" SET "costo_unitario"=$1,"descripcion"=$2,"id_proveedor"=$3,"nombre"=$4,"stock"=$5 `+
		`WHERE id_inventario = $6`, stmt.SQL)
	require.Len(t, stmt.Vars, 6)
	assert.Equal(t, 0, stmt.Vars[4])
	assert.Equal(t, uint(8), stmt.Vars[5])
}

func TestDeleteSQL(t *testing.T) {
	db, rec := dryRunDB(t)

	assert.ErrorIs(t, NewSupplierRepo(db).Delete(context.Background(), 6), ErrNotFound)
	assert.Equal(t, `DELETE FROM "proveedores" WHERE "proveedores"."id_proveedor" = $1`, rec.last(t).SQL)

	assert.ErrorIs(t, NewInventoryRepo(db).Delete(context.Background(), 6), ErrNotFound)
	assert.Equal(t, `DELETE FROM "inventario" WHERE "inventario"."id_inventario" = $1`, rec.last(t).SQL)
}

func TestInventoryRepo_CountBySupplierSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	_, _ = NewInventoryRepo(db).CountBySupplier(context.Background(), 2)

	stmt := rec.last(t)
	assert.Equal(t, `SELECT count(*) FROM "inventario" WHERE id_proveedor = $1`, stmt.SQL)
	assert.Equal(t, []interface{}{uint(2)}, stmt.Vars)
}

func TestStatsRepo_InventoryStatsSQL(t *testing.T) {
	db, rec := dryRunDB(t)
	_, _ = NewStatsRepo(db).InventoryStats(context.Background(), 10)

	stmt := rec.last(t)
	assert.Contains(t, stmt.SQL, "(SELECT COUNT(*) FROM proveedores) AS total_suppliers")
	assert.Contains(t, stmt.SQL, "COUNT(*) FILTER (WHERE i.stock < $1) AS low_stock_count")
	assert.Contains(t, stmt.SQL, "COALESCE(SUM(i.stock * i.costo_unitario), 0) AS total_valuation")
	assert.True(t, strings.HasSuffix(stmt.SQL, "FROM inventario AS i"), stmt.SQL)
	assert.Equal(t, []interface{}{10}, stmt.Vars)
}
