package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/models"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

// Identity is the resolved caller. Email doubles as the voter id for the vote
// ledger.
type Identity struct {
	UserID   uint
	Username string
	Email    string
}

func (s *AuthService) Register(username, email, password string) (string, models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		return "", models.User{}, fmt.Errorf("username or email already exists: %w", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.User{}, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", models.User{}, err
	}

	token, err := s.GenerateToken(user)
	return token, user, err
}

func (s *AuthService) Login(email, password string) (string, models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", models.User{}, fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.User{}, fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
	}

	token, err := s.GenerateToken(user)
	return token, user, err
}

func (s *AuthService) GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("invalid or expired token: %w", ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("invalid claims: %w", ErrUnauthenticated)
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, fmt.Errorf("invalid user_id claim: %w", ErrUnauthenticated)
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return Identity{}, fmt.Errorf("missing email claim: %w", ErrUnauthenticated)
	}
	username, _ := claims["username"].(string)

	return Identity{UserID: uint(userID), Username: username, Email: email}, nil
}
