package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aquashield/lead-intake/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the AttemptStore and
// SubmissionStore interfaces.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

func createSQLiteSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS form_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ip_address TEXT NOT NULL,
			user_agent TEXT,
			form_type TEXT NOT NULL,
			is_spam BOOLEAN NOT NULL,
			spam_score INTEGER NOT NULL,
			spam_reason TEXT,
			email TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_ip_created
			ON form_submissions(ip_address, created_at)`,
		`CREATE TABLE IF NOT EXISTS contact_support (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			subject TEXT,
			message TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			address_2 TEXT,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zipcode TEXT NOT NULL,
			country TEXT NOT NULL,
			insurance_property TEXT NOT NULL,
			message TEXT,
			sms_consent BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS facebook_leads (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			address_2 TEXT,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zipcode TEXT NOT NULL,
			country TEXT NOT NULL,
			insurance_property TEXT NOT NULL,
			message TEXT,
			lead_source TEXT,
			sms_consent BOOLEAN NOT NULL,
			latitude REAL,
			longitude REAL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// LogAttempt appends one immutable attempt record
func (s *SQLiteStore) LogAttempt(ctx context.Context, attempt *core.SubmissionAttempt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO form_submissions
			(ip_address, user_agent, form_type, is_spam, spam_score, spam_reason, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.IPAddress, attempt.UserAgent, string(attempt.FormType), attempt.IsSpam,
		attempt.SpamScore, attempt.SpamReason, attempt.Email, attempt.CreatedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert attempt record: %w", err)
	}
	return nil
}

// CountByIPSince counts attempts from an IP created at or after the cutoff
func (s *SQLiteStore) CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM form_submissions
		WHERE ip_address = ? AND created_at >= ?
	`, ipAddress, since.UTC().Format(time.RFC3339)).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}

// SaveContactSupport stores a contact-support request
func (s *SQLiteStore) SaveContactSupport(ctx context.Context, c *core.ContactSupport) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_support
			(id, first_name, last_name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Subject, c.Message,
		c.CreatedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert contact record: %w", err)
	}
	return nil
}

// SaveAppointment stores an appointment request
func (s *SQLiteStore) SaveAppointment(ctx context.Context, a *core.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments
			(id, first_name, last_name, email, phone, address, address_2, city, state,
			 zipcode, country, insurance_property, message, sms_consent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.Address, a.Address2, a.City,
		a.State, a.Zipcode, a.Country, a.InsuranceProperty, a.Message, a.SMSConsent,
		a.CreatedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert appointment record: %w", err)
	}
	return nil
}

// SaveFacebookLead stores an ad lead
func (s *SQLiteStore) SaveFacebookLead(ctx context.Context, l *core.FacebookLead) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO facebook_leads
			(id, first_name, last_name, email, phone, address, address_2, city, state,
			 zipcode, country, insurance_property, message, lead_source, sms_consent,
			 latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.Address, l.Address2, l.City,
		l.State, l.Zipcode, l.Country, l.InsuranceProperty, l.Message, l.LeadSource,
		l.SMSConsent, l.Latitude, l.Longitude, l.CreatedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert lead record: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
