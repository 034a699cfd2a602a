package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/adstack/meta-ads-agent/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type RateLimiterStore struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	ttl     time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiterStore(limit rate.Limit, burst int, ttl time.Duration) *RateLimiterStore {
	return &RateLimiterStore{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
	}
}

func (s *RateLimiterStore) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.clients[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	limiter := rate.NewLimiter(s.limit, s.burst)
	s.clients[key] = &clientLimiter{limiter: limiter, lastSeen: now}

	// Clean up old entries
	for k, v := range s.clients {
		if now.Sub(v.lastSeen) > s.ttl {
			delete(s.clients, k)
		}
	}
	return limiter
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(lrw, r)
			logger.Info("request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", lrw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// CORS middleware so browser-based MCP clients can reach the agent.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			// Respond to preflight requests quickly
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit middleware implements per-IP rate limiting on the inbound
// surface only; outbound Marketing API calls are never rate limited here.
func RateLimitMiddleware(store *RateLimiterStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := clientIPFromRequest(r)
			limiter := store.getLimiter(clientIP)
			if !limiter.Allow() {
				slog.Default().Warn("rate limit exceeded", "client_ip", clientIP, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit exceeded","code":"RATE_LIMIT_EXCEEDED"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Add request body size limit middleware
func LimitBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// JWTClaims represents the claims in agent-issued JWT tokens
type JWTClaims struct {
	jwt.RegisteredClaims
	Permissions struct {
		Campaigns []string `json:"campaigns,omitempty"`
		AdSets    []string `json:"adsets,omitempty"`
		Ads       []string `json:"ads,omitempty"`
		Creatives []string `json:"creatives,omitempty"`
		Accounts  []string `json:"accounts,omitempty"`
	} `json:"permissions,omitempty"`
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	ContextKeyClaims contextKey = "jwt_claims"
)

// GetClaimsFromContext retrieves JWT claims from the request context
func GetClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*JWTClaims)
	return claims, ok
}

// sendAuthErrorResponse sends an authentication error response
func sendAuthErrorResponse(w http.ResponseWriter, code string, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	statusCode := http.StatusUnauthorized
	if code == "INSUFFICIENT_PERMISSIONS" {
		statusCode = http.StatusForbidden
	}
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// ExcludePathsMiddleware wraps a middleware to exclude certain paths
func ExcludePathsMiddleware(middleware func(http.Handler) http.Handler, excludedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range excludedPaths {
				if r.URL.Path == path {
					// Skip the middleware for excluded paths
					next.ServeHTTP(w, r)
					return
				}
			}
			middleware(next).ServeHTTP(w, r)
		})
	}
}

// UnifiedAuthMiddleware creates a middleware that validates both JWT tokens
// and API keys on the REST mirror surface.
func UnifiedAuthMiddleware(jwtSecretKey string, apiKeyStore *auth.APIKeyStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try API Key authentication first
			if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
				principal, ok := apiKeyStore.GetPrincipal(apiKey)
				if !ok {
					sendAuthErrorResponse(w, "AUTH_INVALID", "Invalid or expired credentials", logger)
					return
				}
				if !authorizeOperation(w, r, principal, logger) {
					return
				}
				ctx := context.WithValue(r.Context(), auth.ContextKeyPrincipal, principal)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Try JWT Bearer token authentication
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				sendAuthErrorResponse(w, "AUTH_REQUIRED", "Authentication required for this operation", logger)
				return
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				sendAuthErrorResponse(w, "AUTH_INVALID", "Invalid authorization header format", logger)
				return
			}

			tokenString := tokenParts[1]

			claims := &JWTClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				// Verify the signing method
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecretKey), nil
			})

			if err != nil {
				logger.Debug("JWT validation failed", "error", err, "path", r.URL.Path)
				sendAuthErrorResponse(w, "AUTH_INVALID", "Invalid or expired credentials", logger)
				return
			}

			if !token.Valid {
				sendAuthErrorResponse(w, "AUTH_INVALID", "Invalid token", logger)
				return
			}

			// Convert JWT claims to Principal
			principal := &auth.Principal{
				PrincipalID: claims.Subject,
				Permissions: make(map[string][]auth.Permission),
			}
			if len(claims.Permissions.Campaigns) > 0 {
				principal.Permissions["campaigns"] = stringSliceToPermissions(claims.Permissions.Campaigns)
			}
			if len(claims.Permissions.AdSets) > 0 {
				principal.Permissions["adsets"] = stringSliceToPermissions(claims.Permissions.AdSets)
			}
			if len(claims.Permissions.Ads) > 0 {
				principal.Permissions["ads"] = stringSliceToPermissions(claims.Permissions.Ads)
			}
			if len(claims.Permissions.Creatives) > 0 {
				principal.Permissions["creatives"] = stringSliceToPermissions(claims.Permissions.Creatives)
			}
			if len(claims.Permissions.Accounts) > 0 {
				principal.Permissions["accounts"] = stringSliceToPermissions(claims.Permissions.Accounts)
			}

			if !authorizeOperation(w, r, principal, logger) {
				return
			}

			ctx := context.WithValue(r.Context(), auth.ContextKeyPrincipal, principal)
			ctx = context.WithValue(ctx, ContextKeyClaims, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authorizeOperation enforces the per-operation permission requirements.
// Endpoint paths on the mirror are the tool names, so the path minus its
// leading slash is the operation to check.
func authorizeOperation(w http.ResponseWriter, r *http.Request, principal *auth.Principal, logger *slog.Logger) bool {
	operation := strings.TrimPrefix(r.URL.Path, "/")
	if err := auth.CheckOperationPermissions(principal, operation); err != nil {
		logger.Warn("operation denied",
			"principal", principal.PrincipalID,
			"operation", operation,
			"error", err,
		)
		sendAuthErrorResponse(w, "INSUFFICIENT_PERMISSIONS", "Insufficient permissions for this operation", logger)
		return false
	}
	return true
}

// stringSliceToPermissions converts string permissions to Permission types
func stringSliceToPermissions(perms []string) []auth.Permission {
	result := make([]auth.Permission, 0, len(perms))
	for _, p := range perms {
		result = append(result, auth.Permission(p))
	}
	return result
}
