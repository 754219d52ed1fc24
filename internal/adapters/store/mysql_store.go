package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aquashield/lead-intake/internal/core"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the AttemptStore and
// SubmissionStore interfaces. The DSN must carry parseTime=true.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

func createMySQLSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS form_submissions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			ip_address VARCHAR(45) NOT NULL,
			user_agent VARCHAR(512),
			form_type VARCHAR(32) NOT NULL,
			is_spam BOOLEAN NOT NULL,
			spam_score INT NOT NULL,
			spam_reason TEXT,
			email VARCHAR(255),
			created_at DATETIME NOT NULL,
			INDEX idx_submissions_ip_created (ip_address, created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS contact_support (
			id CHAR(36) PRIMARY KEY,
			first_name VARCHAR(50) NOT NULL,
			last_name VARCHAR(50) NOT NULL,
			email VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			subject VARCHAR(255),
			message TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id CHAR(36) PRIMARY KEY,
			first_name VARCHAR(50) NOT NULL,
			last_name VARCHAR(50) NOT NULL,
			email VARCHAR(100),
			phone VARCHAR(20) NOT NULL,
			address VARCHAR(200) NOT NULL,
			address_2 VARCHAR(100),
			city VARCHAR(100) NOT NULL,
			state CHAR(2) NOT NULL,
			zipcode CHAR(5) NOT NULL,
			country VARCHAR(10) NOT NULL,
			insurance_property VARCHAR(3) NOT NULL,
			message TEXT,
			sms_consent BOOLEAN NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS facebook_leads (
			id CHAR(36) PRIMARY KEY,
			first_name VARCHAR(50) NOT NULL,
			last_name VARCHAR(50) NOT NULL,
			email VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			address VARCHAR(200) NOT NULL,
			address_2 VARCHAR(100),
			city VARCHAR(100) NOT NULL,
			state CHAR(2) NOT NULL,
			zipcode CHAR(5) NOT NULL,
			country VARCHAR(10) NOT NULL,
			insurance_property VARCHAR(3) NOT NULL,
			message TEXT,
			lead_source VARCHAR(32),
			sms_consent BOOLEAN NOT NULL,
			latitude DOUBLE,
			longitude DOUBLE,
			created_at DATETIME NOT NULL
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
func (s *MySQLStore) LogAttempt(ctx context.Context, attempt *core.SubmissionAttempt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO form_submissions
			(ip_address, user_agent, form_type, is_spam, spam_score, spam_reason, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.IPAddress, attempt.UserAgent, string(attempt.FormType), attempt.IsSpam,
		attempt.SpamScore, attempt.SpamReason, attempt.Email, attempt.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to insert attempt record: %w", err)
	}
	return nil
}

// CountByIPSince counts attempts from an IP created at or after the cutoff
func (s *MySQLStore) CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM form_submissions
		WHERE ip_address = ? AND created_at >= ?
	`, ipAddress, since.UTC()).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}

// SaveContactSupport stores a contact-support request
func (s *MySQLStore) SaveContactSupport(ctx context.Context, c *core.ContactSupport) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_support
			(id, first_name, last_name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Subject, c.Message, c.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to insert contact record: %w", err)
	}
	return nil
}

// SaveAppointment stores an appointment request
func (s *MySQLStore) SaveAppointment(ctx context.Context, a *core.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments
			(id, first_name, last_name, email, phone, address, address_2, city, state,
			 zipcode, country, insurance_property, message, sms_consent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.Address, a.Address2, a.City,
		a.State, a.Zipcode, a.Country, a.InsuranceProperty, a.Message, a.SMSConsent,
		a.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to insert appointment record: %w", err)
	}
	return nil
}

// SaveFacebookLead stores an ad lead
func (s *MySQLStore) SaveFacebookLead(ctx context.Context, l *core.FacebookLead) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO facebook_leads
			(id, first_name, last_name, email, phone, address, address_2, city, state,
			 zipcode, country, insurance_property, message, lead_source, sms_consent,
			 latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.Address, l.Address2, l.City,
		l.State, l.Zipcode, l.Country, l.InsuranceProperty, l.Message, l.LeadSource,
		l.SMSConsent, l.Latitude, l.Longitude, l.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to insert lead record: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
