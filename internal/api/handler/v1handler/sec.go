package v1handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"linkcleaner/internal/config"
	"linkcleaner/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

// ClientIDKey holds the authenticated caller's ID (a uuid.UUID) in the request context.
const ClientIDKey contextKey = "client_id"

// SecHandlerOptions configures bearer authentication.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with. Empty
	// disables authentication.
	PublicKey string
}

// NewSecHandlerOptions reads the JWT settings from cfg.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens on the endpoints that reach out to
// the network.
type SecHandler struct {
	parser *jwt.Parser
	key    any
}

// NewSecHandler parses the configured public key. A nil handler is returned
// when no key is configured; its Authenticate accepts every request.
func NewSecHandler(options *SecHandlerOptions) (*SecHandler, error) {
	if options == nil || strings.TrimSpace(options.PublicKey) == "" {
		return nil, nil //nolint: nilnil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
		key: key,
	}, nil
}

// Enabled reports whether requests must carry a token.
func (s *SecHandler) Enabled() bool {
	return s != nil
}

// Authenticate checks the Authorization header of r and returns ctx carrying
// the caller's ID.
func (s *SecHandler) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	if !s.Enabled() {
		return ctx, nil
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return ctx, serrors.With(serrors.ErrUnauthorized, "missing bearer token")
	}

	return s.HandleBearerAuth(ctx, token)
}

// HandleBearerAuth verifies token and stores its subject in ctx.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	clientID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, ClientIDKey, clientID), nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)

	return token, token != ""
}
