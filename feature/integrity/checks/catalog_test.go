package checks

import (
	"testing"

	"laion-dataset/core/catalog"
	"laion-dataset/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckCatalog_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	t.Run("Missing Table", func(t *testing.T) {
		report, err := CheckCatalog(db)
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Contains(t, report.Errors[0], "does not exist")
	})

	t.Run("Migrated", func(t *testing.T) {
		require.NoError(t, catalog.NewRepository(db).Migrate())

		report, err := CheckCatalog(db)
		require.NoError(t, err)
		assert.True(t, report.Matched, "%+v", report.Tables)
		assert.Equal(t, "sqlite", report.Driver)
		assert.Equal(t, "ok", report.Tables[catalog.TableName].Status)
	})
}

func TestCheckCatalog_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("record_key", "varchar(32)", "NO", "PRI", nil, "").
		AddRow("shard_idx", "bigint", "YES", "MUL", nil, "").
		AddRow("row_idx", "bigint", "YES", "", nil, "").
		AddRow("caption", "varchar(255)", "YES", "", nil, "").
		AddRow("url", "text", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `laion_records`").WillReturnRows(rows)

	report, err := CheckCatalog(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables[catalog.TableName]
	assert.Equal(t, "error", tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "nsfw")
	assert.Contains(t, tbl.MissingColumns, "object_key")
	assert.NotContains(t, tbl.MissingColumns, "url")
	assert.Equal(t, []string{"caption: expected text, got varchar(255)"}, tbl.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCatalog_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(assert.AnError)

	report, err := CheckCatalog(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}

func TestCheckCatalog_NilDB(t *testing.T) {
	_, err := CheckCatalog(nil)
	assert.Error(t, err)
}

func TestParseGormTags(t *testing.T) {
	tag := "column:record_key;primaryKey;type:varchar(32)"
	assert.Equal(t, "record_key", parseGormColumn(tag))
	assert.Equal(t, "varchar(32)", parseGormType(tag))
	assert.Equal(t, "", parseGormType("column:row_idx"))
}
