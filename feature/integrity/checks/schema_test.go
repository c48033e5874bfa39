package checks

import (
	"errors"
	"regexp"
	"testing"

	"media-manager/core/database"
	"media-manager/feature/media/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestCheckSchema_SQLite(t *testing.T) {
	t.Run("Migrated Table Matches", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(&models.Media{}))

		report, err := CheckSchema(db, &models.Media{})
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "sqlite", report.Driver)
		assert.Equal(t, "ok", report.Tables["media"].Status)
		assert.Empty(t, report.Tables["media"].MissingColumns)
	})

	t.Run("Legacy Table Missing Columns", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec(`CREATE TABLE media (
			id INTEGER PRIMARY KEY, url TEXT, title TEXT, folder TEXT,
			width INTEGER, height INTEGER, size INTEGER, uploaded_at DATETIME)`).Error)

		report, err := CheckSchema(db, &models.Media{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		tbl := report.Tables["media"]
		assert.Equal(t, "error", tbl.Status)
		assert.Equal(t, []string{"alt_text", "format", "updated_at"}, tbl.MissingColumns)
	})

	t.Run("Table Missing", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		report, err := CheckSchema(db, &models.Media{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "missing", report.Tables["media"].Status)
		assert.Contains(t, report.Tables["media"].MissingColumns, "url")
	})
}

func TestCheckSchema_MySQL(t *testing.T) {
	t.Run("Missing Column", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows([]string{"Field", "Type"}).
			AddRow("id", "bigint").
			AddRow("url", "varchar(1024)").
			AddRow("title", "longtext").
			AddRow("alt_text", "longtext").
			AddRow("folder", "varchar(512)").
			AddRow("width", "bigint").
			AddRow("height", "bigint").
			AddRow("size", "bigint").
			AddRow("uploaded_at", "datetime(3)").
			AddRow("updated_at", "datetime(3)")
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `media`")).WillReturnRows(rows)

		report, err := CheckSchema(db, &models.Media{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "mysql", report.Driver)
		assert.Equal(t, []string{"format"}, report.Tables["media"].MissingColumns)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Inspection Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `media`")).WillReturnError(errors.New("access denied"))

		report, err := CheckSchema(db, &models.Media{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "access denied")
	})
}

func TestCheckSchema_NilDB(t *testing.T) {
	_, err := CheckSchema(nil, &models.Media{})
	assert.Error(t, err)
}
