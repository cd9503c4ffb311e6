package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.UID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.Career,
		&user.Term,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id string) (*domain.User, error) {
	query := `SELECT id, uid, name, surname, email, password_hash, career, term, balance, created_at, updated_at FROM users WHERE id = ?`

	user, err := r.scanUser(r.db.QueryRow(query, id))
	if err != nil {
		r.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByUID(uid string) (*domain.User, error) {
	query := `SELECT id, uid, name, surname, email, password_hash, career, term, balance, created_at, updated_at FROM users WHERE uid = ?`

	user, err := r.scanUser(r.db.QueryRow(query, uid))
	if err != nil {
		r.logger.Error("Kullanıcı üniversite numarasına göre bulunamadı", map[string]interface{}{"uid": uid, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	query := `SELECT id, uid, name, surname, email, password_hash, career, term, balance, created_at, updated_at FROM users WHERE email = ?`

	user, err := r.scanUser(r.db.QueryRow(query, email))
	if err != nil {
		r.logger.Error("Kullanıcı e-posta adresine göre bulunamadı", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (id, uid, name, surname, email, password_hash, career, term, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(
		query,
		user.ID,
		user.UID,
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		user.Career,
		user.Term,
		user.Balance,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Kullanıcı oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	return nil
}

func (r *UserRepository) Update(user *domain.User) error {
	query := `
		UPDATE users
		SET uid = ?, name = ?, surname = ?, email = ?, password_hash = ?, career = ?, term = ?, balance = ?, updated_at = ?
		WHERE id = ?
	`

	user.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		query,
		user.UID,
		user.Name,
		user.Surname,
		user.Email,
		user.PasswordHash,
		user.Career,
		user.Term,
		user.Balance,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		r.logger.Error("Kullanıcı güncellenemedi", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = ?`

	_, err := r.db.Exec(query, id)

	if err != nil {
		r.logger.Error("Kullanıcı silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	return nil
}
