package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderAdvance(t *testing.T) {
	t.Parallel()

	o := &entity.Order{Status: enum.OrderStatusPending}
	assert.True(t, o.Advance())
	assert.Equal(t, enum.OrderStatusSentToLab, o.Status)
	assert.True(t, o.Advance())
	assert.True(t, o.Advance())
	assert.Equal(t, enum.OrderStatusDelivered, o.Status)

	assert.False(t, o.Advance())
	assert.Equal(t, enum.OrderStatusDelivered, o.Status)
}

func TestOrderApplyAmounts(t *testing.T) {
	t.Parallel()

	o := &entity.Order{}
	o.ApplyAmounts(money.FromUnits(300), money.FromUnits(100))
	assert.Equal(t, enum.PaymentStatusPartial, o.PaymentStatus)
	assert.Equal(t, money.FromUnits(200), o.Balance())

	o.PaymentStatus = enum.PaymentStatusPaid
	require.NoError(t, o.BeforeSave(nil))
	assert.Equal(t, enum.PaymentStatusPartial, o.PaymentStatus)

	o.ApplyAmounts(money.FromUnits(300), money.FromUnits(300))
	assert.Equal(t, enum.PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, money.Zero, o.Balance())
}

func TestOrderWireRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	rx := uuid.New()
	in := entity.Order{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		OrderNumber:    "OS-2025-0A1B2C3D",
		CustomerID:     uuid.New(),
		CustomerName:   "José da Silva",
		Date:           entity.NewDate(2025, 3, 1),
		Status:         enum.OrderStatusSentToLab,
		TotalAmount:    money.Cents(123456),
		PaidAmount:     money.Cents(100001),
		PaymentStatus:  enum.PaymentStatusPartial,
		PrescriptionID: &rx,
		FrameModel:     "Ray-Ban RB5154",
		LensType:       "Multifocal",
		DeliveryDate:   entity.NewDate(2025, 3, 10),
		Source:         enum.OrderSourcePOS,
		CreatedAt:      created,
		UpdatedAt:      created,
		Items: []entity.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "B", UnitPrice: 5000, Quantity: 1, LineTotal: 5000},
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "A", UnitPrice: 10000, Quantity: 2, LineTotal: 20000},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_amount":1234.56`)
	assert.Contains(t, string(data), `"date":"2025-03-01"`)

	var out entity.Order
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out, spew.Sdump(out))
}

func TestCustomerWireRoundTrip(t *testing.T) {
	t.Parallel()

	email := "maria@mail.com"
	birth := entity.NewDate(1990, 7, 15)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	in := entity.Customer{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		Name:         "Maria",
		Phone:        "(11) 99999-0000",
		Email:        &email,
		BirthDate:    &birth,
		Gender:       enum.GenderFemale,
		Address:      &entity.Address{ZipCode: "01001000", Street: "Praça da Sé", Number: "1", City: "São Paulo", State: "SP"},
		CreditLimit:  money.FromUnits(1500),
		CreditStatus: enum.CreditStatusApproved,
		CreatedAt:    at,
		UpdatedAt:    at,
		Prescriptions: []entity.Prescription{{
			ID:         uuid.New(),
			CustomerID: uuid.New(),
			Date:       entity.NewDate(2024, 12, 1),
			DoctorName: "Dr. Souza",
			OD:         entity.EyePrescription{Spherical: "-2.25", Cylinder: "-0.50", Axis: "180"},
			OE:         entity.EyePrescription{Spherical: "-2.00", Cylinder: "-0.75", Axis: "170", Addition: "+1.50"},
			CreatedAt:  at,
		}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out entity.Customer
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out, spew.Sdump(out))
}
