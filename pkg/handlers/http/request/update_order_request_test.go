package request

import (
	"testing"
)

func TestUpdateOrderRequest_Validate(t *testing.T) {
	valid := UpdateOrderRequest{
		CustomerName: "john doe",
		Item:         "mechanical keyboard",
		Quantity:     2,
		UnitPrice:    49.90,
		Status:       "shipped",
	}

	tests := []struct {
		name    string
		mutate  func(r *UpdateOrderRequest)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request should succeed",
			mutate:  func(r *UpdateOrderRequest) {},
			wantErr: false,
		},
		{
			name:    "missing customer_name should fail",
			mutate:  func(r *UpdateOrderRequest) { r.CustomerName = "" },
			wantErr: true,
			errMsg:  "customer_name is required",
		},
		{
			name:    "missing item should fail",
			mutate:  func(r *UpdateOrderRequest) { r.Item = "" },
			wantErr: true,
			errMsg:  "item is required",
		},
		{
			name:    "zero quantity should fail",
			mutate:  func(r *UpdateOrderRequest) { r.Quantity = 0 },
			wantErr: true,
			errMsg:  "quantity must be a positive value",
		},
		{
			name:    "negative unit_price should fail",
			mutate:  func(r *UpdateOrderRequest) { r.UnitPrice = -1 },
			wantErr: true,
			errMsg:  "unit_price cannot be negative",
		},
		{
			name:    "unknown status should fail",
			mutate:  func(r *UpdateOrderRequest) { r.Status = "teleported" },
			wantErr: true,
			errMsg:  "status must be one of 'pending', 'shipped' or 'cancelled'",
		},
		{
			name:    "cancelled status should succeed",
			mutate:  func(r *UpdateOrderRequest) { r.Status = "cancelled" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("UpdateOrderRequest.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("UpdateOrderRequest.Validate() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
