package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/entity"
	"storefront/internal/repository"
)

const sessionTTL = 24 * time.Hour

// AuthService issues and validates sessions for customers and back-office
// admins. Passwords are bcrypt-hashed; issued tokens are mirrored in Redis
// keyed by email so sessions can be validated and revoked server-side.
type AuthService struct {
	userRepo  *repository.UserRepository
	rdb       *redis.Client
	jwtSecret []byte
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, jwtSecret []byte) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		rdb:       rdb,
		jwtSecret: jwtSecret,
	}
}

type JwtCustomClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates a customer account. Email must be unused.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msgf("Error checking existing user %s", input.Email)
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         entity.RoleCustomer,
	}
	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}
	return created, nil
}

// Login validates credentials against the users table, or admin_users when
// isAdmin is set, and returns a signed token plus the account.
func (s *AuthService) Login(ctx context.Context, email, password string, isAdmin bool) (string, *entity.User, error) {
	var (
		user *entity.User
		err  error
	)
	if isAdmin {
		user, err = s.userRepo.GetAdminByEmail(ctx, email)
	} else {
		user, err = s.userRepo.GetUserByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, errors.New("invalid email or password")
		}
		logger.Error().Err(err).Msgf("Error getting user %s", email)
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, errors.New("invalid email or password")
	}

	claims := &JwtCustomClaims{
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tkn.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	if err := s.rdb.Set(ctx, sessionKey(user.Email), token, sessionTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error storing session for %s", user.Email)
		return "", nil, err
	}

	return token, user, nil
}

// ValidateToken returns the stored session token for the email or an error
// when no session exists.
func (s *AuthService) ValidateToken(ctx context.Context, email string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("session not found")
		}
		return "", err
	}
	return token, nil
}

// ParseToken verifies a token's signature and expiry and returns its claims.
func (s *AuthService) ParseToken(token string) (*JwtCustomClaims, error) {
	claims := &JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SignOut revokes the server-side session.
func (s *AuthService) SignOut(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, sessionKey(email)).Err()
}

// Profile returns the signed-in customer's account.
func (s *AuthService) Profile(ctx context.Context, email string) (*entity.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}

type ProfileInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateProfile updates the contact details on the signed-in account.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, input ProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user %s", email)
		return nil, err
	}
	user.FullName = input.FullName
	user.Phone = input.Phone
	user.Address = input.Address
	return s.userRepo.UpdateUser(ctx, user)
}

// ChangePassword verifies the current password before setting a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user %s", email)
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return errors.New("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

func sessionKey(email string) string {
	return fmt.Sprintf("session:%s", email)
}
