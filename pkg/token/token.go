package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set member role
type RoleType string

const (
	// RoleCandidate is the candidate role
	RoleCandidate RoleType = "candidate"
	// RoleRecruiter is the recruiter role
	RoleRecruiter RoleType = "recruiter"
	// RoleCompany is the company role
	RoleCompany RoleType = "company"
)

// Claims structure for the platform session JWT
type Claims struct {
	MemberID string `json:"user_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// ParseSession extracts the Claims from a session token without verifying the
// signature. Verification belongs to the API server; the client only needs
// the member identity and the expiry.
func ParseSession(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
	if tokenStr == "" {
		return nil, errors.New("missing session token")
	}

	claims := new(Claims)
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// CheckNotExpired check session token not expires
func CheckNotExpired(tokenStr string) (bool, error) {
	claims, err := ParseSession(tokenStr)
	if err != nil {
		return false, err
	}

	expire, err := claims.GetExpirationTime()
	if err != nil || expire == nil {
		// tokens without exp never expire client-side
		return true, nil
	}

	return expire.After(time.Now()), nil
}
