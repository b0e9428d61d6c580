package auth

import (
	"context"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"

func SetUserClaims(ctx context.Context, claims *OpsClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaims(ctx context.Context) *OpsClaims {
	if claims, ok := ctx.Value(userClaimsKey).(*OpsClaims); ok {
		return claims
	}
	return nil
}
