package middleware

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	apictx "github.com/dtroode/salon-server/internal/api/context"
	"github.com/dtroode/salon-server/internal/mocks"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/testutil"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/salon.v1.Scheduling/GetAppointment"}

func okHandler(ctx context.Context, req any) (any, error) {
	return "ok", nil
}

func TestTimeout_HandleGRPC(t *testing.T) {
	t.Parallel()

	t.Run("sets deadline", func(t *testing.T) {
		t.Parallel()
		m := NewTimeout(50 * time.Millisecond)
		_, err := m.HandleGRPC(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
			return nil, nil
		})
		require.NoError(t, err)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		m := NewTimeout(0)
		_, err := m.HandleGRPC(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
			_, ok := ctx.Deadline()
			assert.False(t, ok)
			return nil, nil
		})
		require.NoError(t, err)
	})
}

func TestRateLimit_HandleGRPC(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cm := apictx.NewManager()

	tests := []struct {
		name     string
		ctx      context.Context
		wantKey  string
		allowed  bool
		limitErr error
		wantCode codes.Code
	}{
		{
			name:     "authenticated user under budget",
			ctx:      cm.SetRequesterToContext(context.Background(), model.Requester{ID: userID, Role: model.RoleCustomer}),
			wantKey:  "user:" + userID.String(),
			allowed:  true,
			wantCode: codes.OK,
		},
		{
			name:     "anonymous peer over budget",
			ctx:      peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 51234}}),
			wantKey:  "addr:10.0.0.7",
			allowed:  false,
			wantCode: codes.ResourceExhausted,
		},
		{
			name:     "limiter down, fail open",
			ctx:      context.Background(),
			wantKey:  "addr:unknown",
			allowed:  true,
			limitErr: errors.New("redis: connection refused"),
			wantCode: codes.OK,
		},
		{
			name:     "limiter down, fail closed",
			ctx:      context.Background(),
			wantKey:  "addr:unknown",
			allowed:  false,
			limitErr: errors.New("redis: connection refused"),
			wantCode: codes.ResourceExhausted,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := &mocks.Limiter{}
			limiter.On("Allow", mock.Anything, tt.wantKey).Return(tt.allowed, tt.limitErr)

			m := NewRateLimit(limiter, cm, testutil.MakeNoopLogger())
			resp, err := m.HandleGRPC(tt.ctx, nil, testInfo, okHandler)
			limiter.AssertExpectations(t)

			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, "ok", resp)
			}
		})
	}
}

func TestRecoveryHandler(t *testing.T) {
	t.Parallel()

	interceptor := recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(RecoveryHandler(testutil.MakeNoopLogger())))

	_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		panic("nil map write")
	})

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "internal server error", st.Message())
}
