package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/pkg/cep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAddresses struct {
	calls int
	err   error
}

func (s *stubAddresses) Lookup(_ context.Context, code string) (*cep.Address, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &cep.Address{
		ZipCode:      code,
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}, nil
}

func customersWith(f *fixture, lookup service.AddressLookup) *service.CustomerService {
	return service.NewCustomerService(
		repository.NewCustomerRepository(f.db),
		repository.NewPrescriptionRepository(f.db),
		lookup,
		f.calendar,
	)
}

func TestCreateCustomerValidation(t *testing.T) {
	f := newFixture(t)
	bad := "not-an-email"

	_, err := f.customers.CreateCustomer(f.ctx, &service.CustomerInput{Email: &bad, CreditStatus: "maybe"})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	assert.ElementsMatch(t, []string{"name", "email", "credit_status"}, fieldsOf(err))

	_, err = f.customers.CreateCustomer(context.Background(), &service.CustomerInput{Name: "Sem Loja"})
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestCustomerAddressEnrichment(t *testing.T) {
	f := newFixture(t)

	t.Run("fills a blank street from the postal code", func(t *testing.T) {
		lookup := &stubAddresses{}
		c, err := customersWith(f, lookup).CreateCustomer(f.ctx, &service.CustomerInput{
			Name:    "Ana",
			Address: &entity.Address{ZipCode: "01310-100", Number: "1000"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, lookup.calls)
		assert.Equal(t, "01310100", c.Address.ZipCode)
		assert.Equal(t, "Avenida Paulista", c.Address.Street)
		assert.Equal(t, "1000", c.Address.Number)
		assert.Equal(t, "SP", c.Address.State)
	})

	t.Run("keeps a typed street", func(t *testing.T) {
		lookup := &stubAddresses{}
		c, err := customersWith(f, lookup).CreateCustomer(f.ctx, &service.CustomerInput{
			Name:    "Bia",
			Address: &entity.Address{ZipCode: "01310100", Street: "Rua Augusta"},
		})
		require.NoError(t, err)
		assert.Zero(t, lookup.calls)
		assert.Equal(t, "Rua Augusta", c.Address.Street)
	})

	t.Run("lookup failure never fails the save", func(t *testing.T) {
		lookup := &stubAddresses{err: errors.New("timeout")}
		c, err := customersWith(f, lookup).CreateCustomer(f.ctx, &service.CustomerInput{
			Name:    "Caio",
			Address: &entity.Address{ZipCode: "01310100"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, lookup.calls)
		assert.Empty(t, c.Address.Street)
	})
}

func TestLookupAddress(t *testing.T) {
	f := newFixture(t)

	_, err := f.customers.LookupAddress(f.ctx, "123")
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	_, err = f.customers.LookupAddress(f.ctx, "01310100")
	assert.Equal(t, http.StatusNotFound, appCode(t, err), "no lookup configured")

	_, err = customersWith(f, &stubAddresses{err: cep.ErrNotFound}).LookupAddress(f.ctx, "01310100")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	addr, err := customersWith(f, &stubAddresses{}).LookupAddress(f.ctx, "01310100")
	require.NoError(t, err)
	assert.Equal(t, "Bela Vista", addr.Neighborhood)
}

func TestBirthdays(t *testing.T) {
	f := newFixture(t)

	for name, born := range map[string]*entity.Date{
		"Hoje":   date(1990, time.March, 15),
		"Ontem":  date(1985, time.March, 14),
		"Amanhã": date(2000, time.March, 16),
		"Sem":    nil,
	} {
		_, err := f.customers.CreateCustomer(f.ctx, &service.CustomerInput{Name: name, BirthDate: born})
		require.NoError(t, err)
	}

	customers, err := f.customers.Birthdays(f.ctx, nil)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Hoje", customers[0].Name)

	_, err = f.customers.CreateCustomer(f.ctx, &service.CustomerInput{Name: "Abril", BirthDate: date(1970, time.April, 1)})
	require.NoError(t, err)

	march := time.March
	customers, err = f.customers.Birthdays(f.ctx, &march)
	require.NoError(t, err)
	names := make([]string, 0, len(customers))
	for _, c := range customers {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Ontem", "Hoje", "Amanhã"}, names, "ordered by day of month")

	bad := time.Month(13)
	_, err = f.customers.Birthdays(f.ctx, &bad)
	assert.ElementsMatch(t, []string{"month"}, fieldsOf(err))
}

func TestPrescriptions(t *testing.T) {
	f := newFixture(t)
	ana := f.customer(t, "Ana")
	eye := entity.EyePrescription{Spherical: "-2.25", Cylinder: "-0.50", Axis: "180"}

	_, err := f.customers.AddPrescription(f.ctx, ana.ID, &service.PrescriptionInput{})
	assert.ElementsMatch(t, []string{"date", "od", "oe"}, fieldsOf(err))

	_, err = f.customers.AddPrescription(f.ctx, uuid.New(), &service.PrescriptionInput{
		Date: entity.NewDate(2024, time.January, 10), OD: eye, OE: eye,
	})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	old, err := f.customers.AddPrescription(f.ctx, ana.ID, &service.PrescriptionInput{
		Date: entity.NewDate(2023, time.March, 10), OD: eye, OE: eye, DoctorName: " Dr. Lima ",
	})
	require.NoError(t, err)
	assert.True(t, old.Expired)
	assert.Equal(t, "Dr. Lima", old.DoctorName)

	recent, err := f.customers.AddPrescription(f.ctx, ana.ID, &service.PrescriptionInput{
		Date: entity.NewDate(2024, time.January, 10), OD: eye, OE: eye,
	})
	require.NoError(t, err)
	assert.False(t, recent.Expired)

	list, err := f.customers.ListPrescriptions(f.ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID, "newest first")
	assert.Equal(t, "-2.25", list[1].OD.Spherical)

	got, err := f.customers.GetPrescription(f.ctx, ana.ID, old.ID)
	require.NoError(t, err)
	assert.True(t, got.Expired)

	bia := f.customer(t, "Bia")
	_, err = f.customers.GetPrescription(f.ctx, bia.ID, old.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err), "prescription of another customer")
}
