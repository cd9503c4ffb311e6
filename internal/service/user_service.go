package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

// emailDomain is the only accepted registration domain.
const emailDomain = "@unab.edu.co"

type UserService struct {
	repo         domain.UserRepository
	betRepo      domain.BetRepository
	auditLogRepo domain.AuditLogRepository
	logger       logger.Logger
}

func NewUserService(
	repo domain.UserRepository,
	betRepo domain.BetRepository,
	auditLogRepo domain.AuditLogRepository,
	logger logger.Logger,
) domain.UserService {
	return &UserService{
		repo:         repo,
		betRepo:      betRepo,
		auditLogRepo: auditLogRepo,
		logger:       logger,
	}
}

func (s *UserService) Register(uid, name, surname, email, password, career string, term int) (*domain.User, error) {
	if uid == "" || name == "" || surname == "" {
		return nil, fmt.Errorf("%w: kimlik, ad ve soyad zorunludur", domain.ErrInvalidRequest)
	}
	if !strings.HasSuffix(strings.ToLower(email), emailDomain) {
		return nil, fmt.Errorf("%w: e-posta adresi %s ile bitmelidir", domain.ErrInvalidRequest, emailDomain)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if term < 1 || term > 10 {
		return nil, fmt.Errorf("%w: dönem 1 ile 10 arasında olmalıdır: %d", domain.ErrInvalidRequest, term)
	}

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("E-posta adresi kontrolü sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: bu e-posta adresi zaten kullanılıyor: %s", domain.ErrDuplicateRecord, email)
	}

	existing, err = s.repo.FindByUID(uid)
	if err != nil {
		s.logger.Error("Kimlik kontrolü sırasında hata oluştu", map[string]interface{}{"uid": uid, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: bu kimlik zaten kullanılıyor: %s", domain.ErrDuplicateRecord, uid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("şifre işlenemedi: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		UID:          uid,
		Name:         name,
		Surname:      surname,
		Email:        email,
		PasswordHash: string(hash),
		Career:       career,
		Term:         term,
		Balance:      0,
	}

	if err := s.repo.Create(user); err != nil {
		s.logger.Error("Kullanıcı oluşturma sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	s.audit(user.ID, domain.ActionTypeCreate, fmt.Sprintf("Kullanıcı oluşturuldu: %s", user.Email))
	s.logger.Info("Kullanıcı kaydedildi", map[string]interface{}{"user_id": user.ID, "email": user.Email})

	return user, nil
}

func (s *UserService) Login(email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("giriş yapılamadı: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("geçersiz e-posta veya şifre")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Şifre eşleşmiyor", map[string]interface{}{"email": email})
		return nil, fmt.Errorf("geçersiz e-posta veya şifre")
	}

	return user, nil
}

func (s *UserService) GetUserByID(id string) (*domain.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("Kullanıcı e-posta adresine göre bulunamadı", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(user *domain.User) error {
	existing, err := s.repo.FindByID(user.ID)
	if err != nil {
		s.logger.Error("Kullanıcı güncellemesi sırasında hata oluştu", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user.ID)
	}

	if existing.Email != user.Email {
		if !strings.HasSuffix(strings.ToLower(user.Email), emailDomain) {
			return fmt.Errorf("%w: e-posta adresi %s ile bitmelidir", domain.ErrInvalidRequest, emailDomain)
		}
		emailUser, err := s.repo.FindByEmail(user.Email)
		if err != nil {
			s.logger.Error("E-posta adresi kontrolü sırasında hata oluştu", map[string]interface{}{"email": user.Email, "error": err.Error()})
			return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
		}
		if emailUser != nil {
			return fmt.Errorf("%w: bu e-posta adresi zaten kullanılıyor: %s", domain.ErrDuplicateRecord, user.Email)
		}
	}

	if user.Term < 1 || user.Term > 10 {
		return fmt.Errorf("%w: dönem 1 ile 10 arasında olmalıdır: %d", domain.ErrInvalidRequest, user.Term)
	}

	// balance changes never travel through profile updates
	user.Balance = existing.Balance
	user.PasswordHash = existing.PasswordHash

	if err := s.repo.Update(user); err != nil {
		s.logger.Error("Kullanıcı güncelleme sırasında hata oluştu", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	s.audit(user.ID, domain.ActionTypeUpdate, fmt.Sprintf("Kullanıcı güncellendi: %s", user.Email))

	return nil
}

func (s *UserService) DeleteUser(id string) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Kullanıcı silme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}

	if err := s.betRepo.DeleteByUser(id); err != nil {
		s.logger.Error("Kullanıcının bahisleri silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Kullanıcı silme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	s.audit(id, domain.ActionTypeDelete, fmt.Sprintf("Kullanıcı silindi: %s", existing.Email))
	s.logger.Info("Kullanıcı ve bahis geçmişi silindi", map[string]interface{}{"user_id": id})

	return nil
}

// validatePassword enforces the minimum password policy: at least 8
// characters with one upper, one lower and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: şifre en az 8 karakter olmalıdır", domain.ErrInvalidRequest)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: şifre büyük harf, küçük harf ve rakam içermelidir", domain.ErrInvalidRequest)
	}

	return nil
}

func (s *UserService) audit(userID string, action domain.ActionType, details string) {
	auditLog := &domain.AuditLog{
		EntityType: domain.EntityTypeUser,
		EntityID:   userID,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now(),
	}
	if err := s.auditLogRepo.Create(auditLog); err != nil {
		s.logger.Error("Denetim kaydı oluşturulamadı", map[string]interface{}{"user_id": userID, "error": err.Error()})
	}
}
