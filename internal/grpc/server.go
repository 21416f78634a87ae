package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/grubdash-service/internal/apperr"
	"github.com/grubdash-service/internal/logger"
	"github.com/grubdash-service/internal/pipeline"
	"github.com/grubdash-service/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server exposes the dish and order chains over gRPC. Requests are
// google.protobuf.Struct values shaped {"id": ..., "data": {...}} and
// responses {"data": ...}, mirroring the HTTP bodies.
type Server struct {
	dishes *service.DishService
	orders *service.OrderService
	log    *zap.Logger
}

func NewServer(dishes *service.DishService, orders *service.OrderService, log *zap.Logger) *Server {
	return &Server{dishes: dishes, orders: orders, log: log}
}

func (s *Server) ListDishes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.dishes.List(ctx, routeID(req))
	return reply(log, resp, err)
}

func (s *Server) CreateDish(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.dishes.Create(ctx, payload(req))
	if err == nil {
		log.Info("dish created via gRPC")
	}
	return reply(log, resp, err)
}

func (s *Server) ReadDish(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.dishes.Read(ctx, routeID(req))
	return reply(log, resp, err)
}

func (s *Server) UpdateDish(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.dishes.Update(ctx, routeID(req), payload(req))
	return reply(log, resp, err)
}

func (s *Server) ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.orders.List(ctx, routeID(req))
	return reply(log, resp, err)
}

func (s *Server) CreateOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.orders.Create(ctx, payload(req))
	if err == nil {
		log.Info("order created via gRPC")
	}
	return reply(log, resp, err)
}

func (s *Server) ReadOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.orders.Read(ctx, routeID(req))
	return reply(log, resp, err)
}

func (s *Server) UpdateOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.orders.Update(ctx, routeID(req), payload(req))
	return reply(log, resp, err)
}

func (s *Server) DeleteOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, log := s.setupContext(ctx)
	resp, err := s.orders.Delete(ctx, routeID(req))
	if err == nil {
		log.Info("order deleted via gRPC", zap.String("order_id", routeID(req)))
	}
	return reply(log, resp, err)
}

func (s *Server) setupContext(ctx context.Context) (context.Context, *zap.Logger) {
	requestID := getRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log := s.log.With(zap.String("request_id", requestID))
	ctx = logger.WithContext(logger.WithRequestID(ctx, requestID), log)
	return ctx, log
}

func getRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("x-request-id")
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

func routeID(req *structpb.Struct) string {
	v, ok := req.GetFields()["id"]
	if !ok {
		return ""
	}
	return pipeline.Text(v.AsInterface())
}

func payload(req *structpb.Struct) pipeline.Payload {
	if data := req.GetFields()["data"].GetStructValue(); data != nil {
		return pipeline.Payload(data.AsMap())
	}
	return pipeline.Payload{}
}

func reply(log *zap.Logger, resp pipeline.Response, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(log, err)
	}
	out, err := encode(resp.Data)
	if err != nil {
		log.Error("failed to encode response", zap.Error(err))
		return nil, status.Error(codes.Internal, apperr.MessageOf(err))
	}
	return out, nil
}

// encode goes through JSON so the gRPC body uses the same field names as
// the HTTP one.
func encode(data any) (*structpb.Struct, error) {
	if data == nil {
		return &structpb.Struct{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	v, err := structpb.NewValue(decoded)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{"data": v}}, nil
}

func toStatus(log *zap.Logger, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error("request failed", zap.Error(err))
		return status.Error(codes.Internal, apperr.MessageOf(err))
	}
	switch appErr.Kind {
	case apperr.KindNotFound:
		log.Warn("record not found", zap.String("reason", appErr.Message))
		return status.Error(codes.NotFound, appErr.Message)
	default:
		return status.Error(codes.InvalidArgument, appErr.Message)
	}
}
