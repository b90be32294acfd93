package jwt

import (
	"Meal-Planner-Backend/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type (
	JWTService interface {
		GenerateToken(identity domain.Identity) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetIdentityByToken(token string) (domain.Identity, error)
		TTL() time.Duration
	}

	jwtAccountClaim struct {
		AccountID string `json:"account_id"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

const issuer = "MEAL-PLANNER"

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		ttl:       ttl,
	}
}

func (j *jwtService) TTL() time.Duration {
	return j.ttl
}

func (j *jwtService) GenerateToken(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := jwtAccountClaim{
		identity.AccountID.String(),
		identity.Email,
		identity.Role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtAccountClaim{}, j.parseToken)
}

func (j *jwtService) GetIdentityByToken(token string) (domain.Identity, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtAccountClaim)
	if !ok {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.Identity{
		AccountID: accountID,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}
