package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func passThrough(ctx context.Context, req interface{}) (interface{}, error) {
	return "ok", nil
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	interceptor := UnaryAuthInterceptor(svc, []string{"/health.v1.Health/Check"})

	t.Run("valid bearer token passes and claims reach the handler", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, uuid.New(), []string{RoleUnderwriter})
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer "+token))

		var seen *Claims
		_, err = interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: "/advancehub.underwriting.v1.UnderwritingService/GetDeal"},
			func(ctx context.Context, req interface{}) (interface{}, error) {
				seen, _ = ClaimsFromContext(ctx)
				return "ok", nil
			})
		if err != nil {
			t.Fatalf("interceptor error = %v", err)
		}
		if seen == nil || seen.UserID != userID {
			t.Fatalf("handler claims = %+v, want UserID %v", seen, userID)
		}
	})

	t.Run("skipped method needs no token", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: "/health.v1.Health/Check"}, passThrough)
		if err != nil {
			t.Fatalf("interceptor error = %v", err)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})
		_, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: "/advancehub.underwriting.v1.UnderwritingService/GetDeal"}, passThrough)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer not-a-jwt"))
		_, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: "/advancehub.underwriting.v1.UnderwritingService/GetDeal"}, passThrough)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
		}
	})
}

func TestRequireRole(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/advancehub.underwriting.v1.UnderwritingService/DecideDeal"}
	interceptor := RequireRole(RoleUnderwriter, RoleAdmin)

	t.Run("matching role passes", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), &Claims{Roles: []string{RoleUnderwriter}})
		if _, err := interceptor(ctx, nil, info, passThrough); err != nil {
			t.Fatalf("interceptor error = %v", err)
		}
	})

	t.Run("wrong role is denied", func(t *testing.T) {
		ctx := ContextWithClaims(context.Background(), &Claims{Roles: []string{RoleBroker}})
		_, err := interceptor(ctx, nil, info, passThrough)
		if status.Code(err) != codes.PermissionDenied {
			t.Fatalf("code = %v, want PermissionDenied", status.Code(err))
		}
	})

	t.Run("no claims is unauthenticated", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, info, passThrough)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
		}
	})
}
