package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-cards/internal/jwt"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// decimalMatcher matches a decimal.Decimal by value regardless of exponent.
type decimalMatcher struct{ want decimal.Decimal }

func decEq(s string) decimalMatcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return fmt.Sprintf("is decimal %s", m.want)
}

// newRequest builds a request with an optional JSON body, principal and URL params.
func newRequest(t *testing.T, method, target string, body any, claims *jwt.Claims, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	ctx := req.Context()
	if claims != nil {
		ctx = jwt.WithClaims(ctx, claims)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func userClaims(username string) *jwt.Claims {
	return &jwt.Claims{Username: username, Roles: models.Roles{models.RoleUser}}
}

func adminClaims() *jwt.Claims {
	return &jwt.Claims{Username: "admin", Roles: models.Roles{models.RoleAdmin}}
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
