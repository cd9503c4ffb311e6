package domain

import "errors"

var (
	ErrInvalidRequest    = errors.New("geçersiz istek")
	ErrInvalidAmount     = errors.New("geçersiz miktar")
	ErrInsufficientFunds = errors.New("yetersiz bakiye")
	ErrAlreadySettled    = errors.New("bahis zaten sonuçlandırılmış")
	ErrPersistence       = errors.New("kalıcı depolama hatası")
	ErrDuplicateRecord   = errors.New("kayıt zaten mevcut")
	ErrUserNotFound      = errors.New("kullanıcı bulunamadı")
	ErrBetNotFound       = errors.New("bahis bulunamadı")
	ErrVenueNotFound     = errors.New("mekan bulunamadı")
	ErrGameNotFound      = errors.New("oyun bulunamadı")
	ErrRatingNotFound    = errors.New("değerlendirme bulunamadı")
)
