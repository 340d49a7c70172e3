package middlewares

//go:generate mockgen -source=approver.go -destination=approver_mock.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/finance-flow/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetApprover(ctx context.Context, tokenString string) (string, error)
}

// ApproverMiddleware puts the approver identity into the request context.
// A bearer token, when present, names the approver; a request without an
// Authorization header acts as defaultApprover. A nil tokener ignores the
// header entirely.
func ApproverMiddleware(tokener Tokener, defaultApprover string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			approver := defaultApprover
			if tokener != nil && r.Header.Get("Authorization") != "" {
				tokenString, err := tokener.GetTokenFromRequest(ctx, r)
				if err != nil {
					logger.FromContext(ctx).Errorw("authorization failed", "err", err)
					w.WriteHeader(http.StatusUnauthorized)
					return
				}

				approver, err = tokener.GetApprover(ctx, tokenString)
				if err != nil {
					logger.FromContext(ctx).Errorw("authorization failed", "err", err)
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(setApproverToContext(ctx, approver)))
		})
	}
}

type approverKey struct{}

func setApproverToContext(ctx context.Context, approver string) context.Context {
	return context.WithValue(ctx, approverKey{}, approver)
}

// GetApproverFromContext returns the approver set by ApproverMiddleware, or "".
func GetApproverFromContext(ctx context.Context) string {
	approver, _ := ctx.Value(approverKey{}).(string)
	return approver
}
