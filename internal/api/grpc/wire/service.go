package wire

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "salon.v1.Scheduling"

// Full method names.
const (
	MethodBookAppointment       = "/" + ServiceName + "/BookAppointment"
	MethodListAvailableStaff    = "/" + ServiceName + "/ListAvailableStaff"
	MethodTransitionAppointment = "/" + ServiceName + "/TransitionAppointment"
	MethodUpdateAppointment     = "/" + ServiceName + "/UpdateAppointment"
	MethodAssignStaff           = "/" + ServiceName + "/AssignStaff"
	MethodGetAppointment        = "/" + ServiceName + "/GetAppointment"
	MethodListAppointments      = "/" + ServiceName + "/ListAppointments"
)

// SchedulingServer is the server API for salon.v1.Scheduling.
type SchedulingServer interface {
	BookAppointment(context.Context, *BookAppointmentRequest) (*AppointmentResponse, error)
	ListAvailableStaff(context.Context, *ListAvailableStaffRequest) (*ListAvailableStaffResponse, error)
	TransitionAppointment(context.Context, *TransitionAppointmentRequest) (*AppointmentResponse, error)
	UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*AppointmentResponse, error)
	AssignStaff(context.Context, *AssignStaffRequest) (*AppointmentResponse, error)
	GetAppointment(context.Context, *GetAppointmentRequest) (*AppointmentResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
}

// RegisterSchedulingServer registers srv on s.
func RegisterSchedulingServer(s grpc.ServiceRegistrar, srv SchedulingServer) {
	s.RegisterService(&SchedulingServiceDesc, srv)
}

// unaryHandler builds a grpc.MethodHandler for one request type.
func unaryHandler[Req any, Resp any](fullMethod string, call func(SchedulingServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SchedulingServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SchedulingServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SchedulingServiceDesc describes salon.v1.Scheduling.
var SchedulingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SchedulingServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BookAppointment",
			Handler:    unaryHandler(MethodBookAppointment, SchedulingServer.BookAppointment),
		},
		{
			MethodName: "ListAvailableStaff",
			Handler:    unaryHandler(MethodListAvailableStaff, SchedulingServer.ListAvailableStaff),
		},
		{
			MethodName: "TransitionAppointment",
			Handler:    unaryHandler(MethodTransitionAppointment, SchedulingServer.TransitionAppointment),
		},
		{
			MethodName: "UpdateAppointment",
			Handler:    unaryHandler(MethodUpdateAppointment, SchedulingServer.UpdateAppointment),
		},
		{
			MethodName: "AssignStaff",
			Handler:    unaryHandler(MethodAssignStaff, SchedulingServer.AssignStaff),
		},
		{
			MethodName: "GetAppointment",
			Handler:    unaryHandler(MethodGetAppointment, SchedulingServer.GetAppointment),
		},
		{
			MethodName: "ListAppointments",
			Handler:    unaryHandler(MethodListAppointments, SchedulingServer.ListAppointments),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salon/v1/scheduling.json",
}

// SchedulingClient calls salon.v1.Scheduling using the JSON codec.
type SchedulingClient struct {
	cc grpc.ClientConnInterface
}

// NewSchedulingClient creates a client over cc.
func NewSchedulingClient(cc grpc.ClientConnInterface) *SchedulingClient {
	return &SchedulingClient{cc: cc}
}

func (c *SchedulingClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *SchedulingClient) BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := new(AppointmentResponse)
	if err := c.invoke(ctx, MethodBookAppointment, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SchedulingClient) ListAvailableStaff(ctx context.Context, in *ListAvailableStaffRequest, opts ...grpc.CallOption) (*ListAvailableStaffResponse, error) {
	out := new(ListAvailableStaffResponse)
	if err := c.invoke(ctx, MethodListAvailableStaff, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SchedulingClient) TransitionAppointment(ctx context.Context, in *TransitionAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := new(AppointmentResponse)
	if err := c.invoke(ctx, MethodTransitionAppointment, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SchedulingClient) UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := new(AppointmentResponse)
	if err := c.invoke(ctx, MethodUpdateAppointment, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SchedulingClient) AssignStaff(ctx context.Context, in *AssignStaffRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := new(AppointmentResponse)
	if err := c.invoke(ctx, MethodAssignStaff, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SchedulingClient) GetAppointment(ctx context.Context, in *GetAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := new(AppointmentResponse)
	if err := c.invoke(ctx, MethodGetAppointment, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SchedulingClient) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	out := new(ListAppointmentsResponse)
	if err := c.invoke(ctx, MethodListAppointments, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
