package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
)

// InvitationToken signs a token carrying the invitation ID. The token is
// what gets mailed out; its expiry mirrors the invitation's.
func (d *Backend) InvitationToken(inv models.UserInvitation) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    d.cfg.Name,
		Subject:   inv.ID,
		ExpiresAt: jwt.NewNumericDate(inv.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(inv.CreatedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(d.cfg.Invitations.TokenSigningKey))
	if err != nil {
		return "", fmt.Errorf("sign invitation token: %w", err)
	}

	return signed, nil
}

// VerifyInvitationToken validates a signed invitation token and returns the
// invitation ID it carries.
func (d *Backend) VerifyInvitationToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(d.cfg.Invitations.TokenSigningKey), nil
	},
		jwt.WithIssuer(d.cfg.Name),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", proto.ErrInvitationExpired
		}
		return "", fmt.Errorf("%w: %s", proto.ErrInvitationNotFound, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", proto.ErrInvitationNotFound
	}

	return claims.Subject, nil
}

// AcceptInvitationToken verifies the token and accepts the invitation it
// refers to.
func (d *Backend) AcceptInvitationToken(ctx context.Context, tokenString string, displayName string) (models.User, error) {
	id, err := d.VerifyInvitationToken(tokenString)
	if err != nil {
		return models.User{}, err
	}

	return d.AcceptInvitation(ctx, id, displayName)
}
