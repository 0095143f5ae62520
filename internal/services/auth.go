package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/normalization"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
	"github.com/yungbote/readnest-backend/internal/repos"
)

const minPasswordLength = 6

type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, user *types.User) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	ParseToken(tokenString string) (*ctxutil.RequestData, error)
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, apierr.Validation("registration payload is required")
	}
	user.Email = normalization.ParseInputString(user.Email)
	user.Username = strings.TrimSpace(user.Username)
	if user.Email == "" {
		return nil, apierr.Validation("email is required")
	}
	if user.Username == "" {
		return nil, apierr.Validation("username is required")
	}
	if len(user.Password) < minPasswordLength {
		return nil, apierr.Validation("password must be at least %d characters", minPasswordLength)
	}
	if user.Role == "" {
		user.Role = types.RoleUser
	}
	if !user.Role.Valid() {
		return nil, apierr.Validation("unknown role %q", user.Role)
	}

	// Hashed exactly once, at creation.
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	user.ID = uuid.New()

	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, apierr.Duplicate("email or username already in use")
		}
		return nil, apierr.Storage(fmt.Errorf("create user: %w", err))
	}
	as.log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = normalization.ParseInputString(email)
	if email == "" || password == "" {
		return "", nil, apierr.InvalidCredentials()
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, apierr.Storage(fmt.Errorf("lookup user by email: %w", err))
	}
	// Unknown email and wrong password are indistinguishable on purpose.
	if len(users) == 0 {
		return "", nil, apierr.InvalidCredentials()
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apierr.InvalidCredentials()
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, user, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) ParseToken(tokenString string) (*ctxutil.RequestData, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return nil, apierr.Unauthenticated("invalid or expired token")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return nil, apierr.Unauthenticated("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierr.Unauthenticated("invalid user id in token")
	}
	return &ctxutil.RequestData{
		UserID:      userID,
		Email:       claims.Email,
		Role:        claims.Role,
		TokenString: tokenString,
	}, nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
