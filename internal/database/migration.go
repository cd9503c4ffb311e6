package database

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/pkg/logger"
)

type Migration struct {
	ID        int64
	Name      string
	AppliedAt time.Time
}

type MigrationService struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMigrationService(db *sql.DB, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger,
	}
}

func (m *MigrationService) InitMigrationTable() error {
	query := `
    CREATE TABLE IF NOT EXISTS migrations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL UNIQUE,
        applied_at TIMESTAMP NOT NULL
    )
    `

	_, err := m.db.Exec(query)
	if err != nil {
		m.logger.Error("Migration tablosu oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(name string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM migrations WHERE name = ?"
	err := m.db.QueryRow(query, name).Scan(&count)
	if err != nil {
		m.logger.Error("Migration durumu kontrol edilemedi", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

func (m *MigrationService) RecordMigration(name string) error {
	query := "INSERT INTO migrations (name, applied_at) VALUES (?, ?)"
	_, err := m.db.Exec(query, name, time.Now())
	if err != nil {
		m.logger.Error("Migration kaydedilemedi", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) ApplyMigration(name string, migrationFunc func(*sql.DB) error) error {
	applied, err := m.IsMigrationApplied(name)
	if err != nil {
		return err
	}

	if applied {
		m.logger.Info("Migration zaten uygulanmış", map[string]interface{}{"name": name})
		return nil
	}

	m.logger.Info("Migration uygulanıyor", map[string]interface{}{"name": name})

	if err = migrationFunc(m.db); err != nil {
		m.logger.Error("Migration uygulanamadı", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	if err = m.RecordMigration(name); err != nil {
		return err
	}

	m.logger.Info("Migration başarıyla uygulandı", map[string]interface{}{"name": name})
	return nil
}

func (m *MigrationService) RunMigrations() error {
	m.logger.Info("Migrationlar başlatılıyor", map[string]interface{}{})

	if err := m.InitMigrationTable(); err != nil {
		return fmt.Errorf("migration tablosu oluşturulamadı: %w", err)
	}

	migrations := []struct {
		Name string
		Func func(*sql.DB) error
	}{
		{"create_users_table", CreateUsersTable},
		{"create_venues_table", CreateVenuesTable},
		{"create_games_table", CreateGamesTable},
		{"create_bets_table", CreateBetsTable},
		{"create_bet_cobettors_table", CreateBetCoBettorsTable},
		{"create_ratings_table", CreateRatingsTable},
		{"create_venue_members_table", CreateVenueMembersTable},
		{"create_venue_games_table", CreateVenueGamesTable},
		{"create_ledger_entries_table", CreateLedgerEntriesTable},
		{"create_audit_logs_table", CreateAuditLogsTable},
	}

	for _, migration := range migrations {
		if err := m.ApplyMigration(migration.Name, migration.Func); err != nil {
			return fmt.Errorf("migration uygulanamadı %s: %w", migration.Name, err)
		}
	}

	return nil
}

func CreateUsersTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY,
        uid TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL,
        surname TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        career TEXT NOT NULL,
        term INTEGER NOT NULL,
        balance NUMERIC(18,2) NOT NULL DEFAULT 0,
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateVenuesTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS venues (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        address TEXT NOT NULL,
        description TEXT,
        average_rating NUMERIC(4,2) NOT NULL DEFAULT 0,
        created_at TIMESTAMP NOT NULL
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateGamesTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS games (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        description TEXT,
        multiplier NUMERIC(8,2) NOT NULL DEFAULT 1.0,
        active INTEGER NOT NULL DEFAULT 1,
        created_at TIMESTAMP NOT NULL
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateBetsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS bets (
        id TEXT PRIMARY KEY,
        bettor_id TEXT NOT NULL,
        venue_id TEXT NOT NULL,
        game_id TEXT NOT NULL,
        stake NUMERIC(18,2) NOT NULL,
        created_at TIMESTAMP NOT NULL,
        won INTEGER NOT NULL DEFAULT 0,
        settled INTEGER NOT NULL DEFAULT 0,
        potential_payout NUMERIC(18,2) NOT NULL DEFAULT 0,
        actual_payout NUMERIC(18,2) NOT NULL DEFAULT 0,
        FOREIGN KEY (bettor_id) REFERENCES users (id),
        FOREIGN KEY (venue_id) REFERENCES venues (id),
        FOREIGN KEY (game_id) REFERENCES games (id)
    );

    CREATE INDEX IF NOT EXISTS bets_bettor_id_idx ON bets (bettor_id);
    CREATE INDEX IF NOT EXISTS bets_created_at_idx ON bets (created_at);
    `

	_, err := db.Exec(query)
	return err
}

func CreateBetCoBettorsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS bet_cobettors (
        bet_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        PRIMARY KEY (bet_id, user_id),
        FOREIGN KEY (bet_id) REFERENCES bets (id),
        FOREIGN KEY (user_id) REFERENCES users (id)
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateRatingsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS ratings (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        venue_id TEXT NOT NULL,
        score INTEGER NOT NULL,
        comment TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL,
        FOREIGN KEY (user_id) REFERENCES users (id),
        FOREIGN KEY (venue_id) REFERENCES venues (id)
    );

    CREATE INDEX IF NOT EXISTS ratings_venue_id_idx ON ratings (venue_id);
    `

	_, err := db.Exec(query)
	return err
}

func CreateVenueMembersTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS venue_members (
        venue_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        PRIMARY KEY (venue_id, user_id),
        FOREIGN KEY (venue_id) REFERENCES venues (id),
        FOREIGN KEY (user_id) REFERENCES users (id)
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateVenueGamesTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS venue_games (
        venue_id TEXT NOT NULL,
        game_id TEXT NOT NULL,
        PRIMARY KEY (venue_id, game_id),
        FOREIGN KEY (venue_id) REFERENCES venues (id),
        FOREIGN KEY (game_id) REFERENCES games (id)
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateLedgerEntriesTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS ledger_entries (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        amount NUMERIC(18,2) NOT NULL,
        previous_balance NUMERIC(18,2) NOT NULL,
        new_balance NUMERIC(18,2) NOT NULL,
        reason TEXT NOT NULL,
        bet_id TEXT,
        created_at TIMESTAMP NOT NULL,
        FOREIGN KEY (user_id) REFERENCES users (id)
    );

    CREATE INDEX IF NOT EXISTS ledger_entries_user_id_idx ON ledger_entries (user_id);
    CREATE INDEX IF NOT EXISTS ledger_entries_created_at_idx ON ledger_entries (created_at);
    `

	_, err := db.Exec(query)
	return err
}

func CreateAuditLogsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS audit_logs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        entity_type TEXT NOT NULL,
        entity_id TEXT NOT NULL,
        action TEXT NOT NULL,
        details TEXT,
        created_at TIMESTAMP NOT NULL
    )
    `

	_, err := db.Exec(query)
	return err
}
