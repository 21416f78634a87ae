package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/grubdash-service/internal/model"
	"github.com/grubdash-service/internal/repo"
	"github.com/grubdash-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fixture struct {
	conn   *grpc.ClientConn
	orders *repo.MemoryStore[*model.Order]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dishes := repo.NewMemoryStore(&model.Dish{ID: "d1", Name: "Pho", Description: "soup", Price: 12, ImageURL: "pho.jpg"})
	orders := repo.NewMemoryStore(
		&model.Order{ID: "1", DeliverTo: "1 Main St", MobileNumber: "555", Status: model.StatusPending,
			Dishes: []model.OrderDish{{"id": "d1", "quantity": 1}}},
		&model.Order{ID: "7", DeliverTo: "7 Elm St", MobileNumber: "555", Status: model.StatusDelivered,
			Dishes: []model.OrderDish{{"id": "d1", "quantity": 2}}},
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	NewServer(service.NewDishService(dishes), service.NewOrderService(orders), zap.NewNop()).Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{conn: conn, orders: orders}
}

func (f *fixture) call(t *testing.T, svc, method string, req map[string]any) (*structpb.Struct, error) {
	t.Helper()
	in, err := structpb.NewStruct(req)
	require.NoError(t, err)

	out := new(structpb.Struct)
	err = f.conn.Invoke(context.Background(), "/"+svc+"/"+method, in, out)
	return out, err
}

func TestCreateAndReadDish(t *testing.T) {
	f := newFixture(t)

	out, err := f.call(t, DishServiceName, "CreateDish", map[string]any{
		"data": map[string]any{"name": "Taco", "description": "d", "price": 5, "image_url": "u"},
	})
	require.NoError(t, err)

	dish := out.GetFields()["data"].GetStructValue().AsMap()
	assert.Equal(t, "Taco", dish["name"])
	assert.Equal(t, float64(5), dish["price"])
	id, ok := dish["id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, id)

	out, err = f.call(t, DishServiceName, "ReadDish", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, "Taco", out.GetFields()["data"].GetStructValue().AsMap()["name"])
}

func TestListDishesWithFilter(t *testing.T) {
	f := newFixture(t)

	out, err := f.call(t, DishServiceName, "ListDishes", map[string]any{})
	require.NoError(t, err)
	assert.Len(t, out.GetFields()["data"].GetListValue().GetValues(), 1)

	out, err = f.call(t, DishServiceName, "ListDishes", map[string]any{"id": "other"})
	require.NoError(t, err)
	assert.Empty(t, out.GetFields()["data"].GetListValue().GetValues())
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		svc     string
		method  string
		req     map[string]any
		code    codes.Code
		message string
	}{
		{
			name:    "missing field",
			svc:     DishServiceName,
			method:  "CreateDish",
			req:     map[string]any{"data": map[string]any{"name": "Taco"}},
			code:    codes.InvalidArgument,
			message: "Dish must include a description",
		},
		{
			name:    "unknown dish",
			svc:     DishServiceName,
			method:  "UpdateDish",
			req:     map[string]any{"id": "zzz", "data": map[string]any{}},
			code:    codes.NotFound,
			message: "Dish id not found: zzz",
		},
		{
			name:    "delivered order",
			svc:     OrderServiceName,
			method:  "UpdateOrder",
			req: map[string]any{"id": "7", "data": map[string]any{
				"deliverTo": "x", "mobileNumber": "y", "status": "pending",
				"dishes": []any{map[string]any{"quantity": 1}},
			}},
			code:    codes.InvalidArgument,
			message: "A delivered order cannot be changed",
		},
		{
			name:    "delete non pending",
			svc:     OrderServiceName,
			method:  "DeleteOrder",
			req:     map[string]any{"id": "7"},
			code:    codes.InvalidArgument,
			message: "An order cannot be deleted unless it is pending.",
		},
		{
			name:    "unknown method",
			svc:     OrderServiceName,
			method:  "CancelOrder",
			req:     map[string]any{},
			code:    codes.Unimplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.call(t, tt.svc, tt.method, tt.req)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			if tt.message != "" {
				assert.Equal(t, tt.message, st.Message())
			}
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)

	out, err := f.call(t, OrderServiceName, "CreateOrder", map[string]any{"data": map[string]any{
		"deliverTo": "Home", "mobileNumber": "555",
		"dishes": []any{map[string]any{"id": "d1", "quantity": 2}},
	}})
	require.NoError(t, err)
	order := out.GetFields()["data"].GetStructValue().AsMap()
	assert.Equal(t, "pending", order["status"])
	id := order["id"].(string)

	out, err = f.call(t, OrderServiceName, "UpdateOrder", map[string]any{"id": id, "data": map[string]any{
		"deliverTo": "Work", "mobileNumber": "555", "status": "preparing",
		"dishes": []any{map[string]any{"id": "d1", "quantity": 3}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "preparing", out.GetFields()["data"].GetStructValue().AsMap()["status"])

	_, err = f.call(t, OrderServiceName, "DeleteOrder", map[string]any{"id": "1"})
	require.NoError(t, err)

	out, err = f.call(t, OrderServiceName, "ListOrders", map[string]any{})
	require.NoError(t, err)
	assert.Len(t, out.GetFields()["data"].GetListValue().GetValues(), 2)

	_, err = f.call(t, OrderServiceName, "ReadOrder", map[string]any{"id": "1"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
