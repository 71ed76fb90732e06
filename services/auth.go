package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fitness-club-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidAccessCode  = errors.New("access code is invalid, used or expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	DB          *gorm.DB
	progression *ProgressionService
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewAuthService(db *gorm.DB, progression *ProgressionService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		DB:          db,
		progression: progression,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

// Register redeems an access code, creates the account and its zeroed
// progression row. The progression row is created here because UserProgression
// lives and dies with the account.
func (s *AuthService) Register(email, password, name, accessCode string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var code models.AccessCode
		if err := tx.Where("code = ? AND used_by IS NULL AND expires_at > ?", accessCode, time.Now()).
			First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidAccessCode
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailAlreadyExists
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user = &models.User{
			ID:             uuid.NewString(),
			Email:          email,
			PasswordHash:   string(hash),
			Name:           name,
			Role:           models.RoleMember,
			MembershipPlan: code.Plan,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		now := time.Now()
		code.UsedBy = &user.ID
		code.UsedAt = &now
		return tx.Save(&code).Error
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.progression.EnsureProgressionRecord(user.ID); err != nil {
		return nil, fmt.Errorf("failed to create progression record: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	s.DB.Model(&user).Update("last_seen_at", now)

	return &user, token, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates an access token, returning user id and role.
func (s *AuthService) VerifyToken(tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	r, _ := claims["role"].(string)
	if sub == "" {
		return "", "", ErrInvalidToken
	}
	return sub, r, nil
}

// IssueAccessCode creates a single-use registration code (admin only).
func (s *AuthService) IssueAccessCode(adminID string, plan models.MembershipPlan, ttl time.Duration) (*models.AccessCode, error) {
	if plan == "" {
		plan = models.PlanBasic
	}
	code := &models.AccessCode{
		ID:        uuid.NewString(),
		Code:      strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10]),
		IssuedBy:  adminID,
		Plan:      plan,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.DB.Create(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}
