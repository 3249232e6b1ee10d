package middleware

import (
	"net/http"
	"strings"

	"github.com/cosmostic/cosmostic-server/internal/api/http/response"
	"github.com/cosmostic/cosmostic-server/internal/logger"
	"github.com/cosmostic/cosmostic-server/internal/model"
	"github.com/cosmostic/cosmostic-server/internal/token"
)

// Authenticate validates bearer tokens and injects the caller identity into
// the request context. Requests without a valid token never reach the
// handler.
type Authenticate struct {
	tokens         token.Manager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens token.Manager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and forwards
// the request with the caller identity set on its context.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			response.WriteMessage(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		callerID, err := m.tokens.ParseAccessToken(tokenString)
		if err != nil {
			m.logger.Debug("rejected access token", "error", err)
			response.WriteMessage(w, http.StatusUnauthorized, "invalid authorization token")
			return
		}

		ctx := m.contextManager.SetCallerIDToContext(r.Context(), callerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
