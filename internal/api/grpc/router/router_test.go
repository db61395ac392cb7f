package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	apictx "github.com/dtroode/salon-server/internal/api/context"
	"github.com/dtroode/salon-server/internal/api/grpc/middleware"
	"github.com/dtroode/salon-server/internal/api/grpc/wire"
	"github.com/dtroode/salon-server/internal/mocks"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/testutil"
)

type harness struct {
	client        *wire.SchedulingClient
	booking       *mocks.BookingService
	authenticator *mocks.Authenticator
}

func startServer(t *testing.T, limiter *mocks.Limiter) harness {
	t.Helper()

	booking := &mocks.BookingService{}
	authenticator := &mocks.Authenticator{}

	var lim middleware.Limiter
	if limiter != nil {
		lim = limiter
	}
	srv := New(booking, authenticator, lim, apictx.NewManager(), time.Second, testutil.MakeNoopLogger()).Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		booking.AssertExpectations(t)
		authenticator.AssertExpectations(t)
	})

	return harness{client: wire.NewSchedulingClient(conn), booking: booking, authenticator: authenticator}
}

func bearer(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

func TestRouter_ListAvailableStaffIsPublic(t *testing.T) {
	t.Parallel()

	h := startServer(t, nil)
	staff := []model.StaffSummary{{ID: uuid.New(), Name: "Ava", SpecialtyCategory: "Manicure"}}
	h.booking.On("ListAvailableStaff", mock.Anything, "Manicure", "2025-06-02", "10:00", "10:30").Return(staff, nil)

	resp, err := h.client.ListAvailableStaff(context.Background(), &wire.ListAvailableStaffRequest{
		Category: "Manicure", Date: "2025-06-02", StartTime: "10:00", EndTime: "10:30",
	})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, "Ava", resp.Staff[0].Name)
}

func TestRouter_ProtectedMethodNeedsToken(t *testing.T) {
	t.Parallel()

	h := startServer(t, nil)

	_, err := h.client.GetAppointment(context.Background(), &wire.GetAppointmentRequest{ID: uuid.NewString()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "UNAUTHENTICATED", reasonOf(t, err))
}

func TestRouter_BookAppointmentRoundTrip(t *testing.T) {
	t.Parallel()

	h := startServer(t, nil)
	customer := model.Requester{ID: uuid.New(), Role: model.RoleCustomer}
	serviceID := uuid.New()

	h.authenticator.On("Authenticate", mock.Anything, "tok").Return(customer, nil)
	h.booking.On("BookAppointment", mock.Anything, mock.MatchedBy(func(p model.BookAppointmentParams) bool {
		return p.CustomerID == customer.ID && p.ServiceID == serviceID && p.StartTime == "09:00"
	})).Return(model.Appointment{
		ID:        uuid.New(),
		UserID:    customer.ID,
		ServiceID: serviceID,
		Date:      testutil.Date("2025-06-02"),
		StartTime: "09:00",
		EndTime:   "09:30",
		Status:    model.StatusPending,
	}, nil)

	resp, err := h.client.BookAppointment(bearer("tok"), &wire.BookAppointmentRequest{
		ServiceID: serviceID.String(), Date: "2025-06-02", StartTime: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", resp.Appointment.EndTime)
	assert.Equal(t, "PENDING", resp.Appointment.Status)
}

func TestRouter_SlotTakenCarriesReason(t *testing.T) {
	t.Parallel()

	h := startServer(t, nil)
	customer := model.Requester{ID: uuid.New(), Role: model.RoleCustomer}

	h.authenticator.On("Authenticate", mock.Anything, "tok").Return(customer, nil)
	h.booking.On("BookAppointment", mock.Anything, mock.Anything).Return(model.Appointment{}, model.ErrSlotTaken)

	_, err := h.client.BookAppointment(bearer("tok"), &wire.BookAppointmentRequest{
		ServiceID: uuid.NewString(), Date: "2025-06-02", StartTime: "09:00",
	})
	assert.Equal(t, codes.Aborted, status.Code(err))
	assert.Equal(t, "SLOT_TAKEN", reasonOf(t, err))
}

func TestRouter_RateLimited(t *testing.T) {
	t.Parallel()

	limiter := &mocks.Limiter{}
	limiter.On("Allow", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	h := startServer(t, limiter)

	_, err := h.client.ListAvailableStaff(context.Background(), &wire.ListAvailableStaffRequest{Category: "Manicure"})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.Equal(t, "RATE_LIMITED", reasonOf(t, err))
}
