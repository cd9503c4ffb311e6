package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type AuditLogRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAuditLogRepository(db *sql.DB, logger logger.Logger) domain.AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditLogRepository) Create(log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (entity_type, entity_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	result, err := r.db.Exec(
		query,
		string(log.EntityType),
		log.EntityID,
		string(log.Action),
		log.Details,
		log.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Denetim kaydı oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("denetim kaydı oluşturulamadı: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		log.ID = id
	}

	return nil
}

func (r *AuditLogRepository) scanLogs(rows *sql.Rows) ([]*domain.AuditLog, error) {
	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		var log domain.AuditLog
		var entityType, action string
		var details sql.NullString

		err := rows.Scan(
			&log.ID,
			&entityType,
			&log.EntityID,
			&action,
			&details,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("denetim kaydı verileri okunamadı: %w", err)
		}

		log.EntityType = domain.EntityType(entityType)
		log.Action = domain.ActionType(action)
		if details.Valid {
			log.Details = details.String
		}

		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("denetim kaydı verileri okunamadı: %w", err)
	}

	return logs, nil
}

func (r *AuditLogRepository) FindByEntityID(entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM audit_logs
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, string(entityType), entityID)
	if err != nil {
		r.logger.Error("Denetim kayıtları okunamadı", map[string]interface{}{"entity_type": entityType, "entity_id": entityID, "error": err.Error()})
		return nil, fmt.Errorf("denetim kayıtları okunamadı: %w", err)
	}
	defer rows.Close()

	return r.scanLogs(rows)
}

func (r *AuditLogRepository) FindAll(limit, offset int) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.logger.Error("Denetim kayıtları okunamadı", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("denetim kayıtları okunamadı: %w", err)
	}
	defer rows.Close()

	return r.scanLogs(rows)
}
