// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/advocate-scheduler/internal/db"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

// NewDB opens a private in-memory sqlite database with the full schema.
// One connection only: every pooled connection would otherwise see its own
// empty database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func SeedAdvocate(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	u := models.User{
		Name:         "Advocate " + email,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleAdvocate,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func SeedClient(t *testing.T, db *gorm.DB, advocateID uint, name string) models.Client {
	t.Helper()

	c := models.Client{AdvocateID: advocateID, Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func SeedCase(t *testing.T, db *gorm.DB, advocateID, clientID uint, number string) models.Case {
	t.Helper()

	cs := models.Case{
		AdvocateID: advocateID,
		ClientID:   clientID,
		CaseNumber: number,
		Title:      "Case " + number,
		Status:     models.CaseStatusOpen,
	}
	require.NoError(t, db.Omit("Client").Create(&cs).Error)
	return cs
}

func SeedAppointment(t *testing.T, db *gorm.DB, ap models.Appointment) models.Appointment {
	t.Helper()

	if ap.Status == "" {
		ap.Status = "scheduled"
	}
	require.NoError(t, db.Omit("Client", "Advocate", "Case").Create(&ap).Error)
	return ap
}

func SeedInvoice(t *testing.T, db *gorm.DB, inv models.Invoice) models.Invoice {
	t.Helper()

	if inv.Status == "" {
		inv.Status = "pending"
	}
	require.NoError(t, db.Omit("Client").Create(&inv).Error)
	return inv
}

func Date(t *testing.T, s string) wallclock.Date {
	t.Helper()
	d, err := wallclock.ParseDate(s)
	require.NoError(t, err)
	return d
}

func Clock(t *testing.T, s string) wallclock.Clock {
	t.Helper()
	c, err := wallclock.ParseClock(s)
	require.NoError(t, err)
	return c
}

func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
