package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerPIN(t *testing.T) {
	f := newFixture(t)

	ok, err := f.tenants.VerifyManagerPIN(f.ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok, "a store without a PIN never verifies")

	for _, bad := range []string{"12", "123456789", "12a4"} {
		assert.ElementsMatch(t, []string{"pin"}, fieldsOf(f.tenants.SetManagerPIN(f.ctx, bad)), bad)
	}
	require.NoError(t, f.tenants.SetManagerPIN(f.ctx, "4321"))

	store, err := f.tenants.Current(f.ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "4321", store.ManagerPINHash)

	ok, err = f.tenants.VerifyManagerPIN(f.ctx, "4321")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.tenants.VerifyManagerPIN(f.ctx, "0000")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = f.tenants.VerifyManagerPIN(f.ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateStore(t *testing.T) {
	f := newFixture(t)
	blank, name, doc := "  ", "Ótica Nova", "12.345.678/0001-90"

	_, err := f.tenants.UpdateStore(f.ctx, &service.UpdateStoreInput{Name: &blank})
	assert.ElementsMatch(t, []string{"name"}, fieldsOf(err))

	store, err := f.tenants.UpdateStore(f.ctx, &service.UpdateStoreInput{Name: &name, Document: &doc})
	require.NoError(t, err)
	assert.Equal(t, "Ótica Nova", store.Name)
	assert.Equal(t, "(11) 3333-4444", store.Phone, "fields left out are kept")
	assert.Equal(t, doc, store.ReceiptHeader().Document)

	_, err = f.tenants.Current(context.Background())
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestStaffManagement(t *testing.T) {
	f := newFixture(t)
	users := service.NewUserService(repository.NewUserRepository(f.db))

	_, err := users.CreateUser(f.ctx, &service.CreateUserInput{Password: "short", Role: "admin"})
	assert.ElementsMatch(t, []string{"name", "email", "password", "role"}, fieldsOf(err))

	clerk, err := users.CreateUser(f.ctx, &service.CreateUserInput{
		Name: "Caixa", Email: " Caixa@Loja.Test ", Password: "segredo123",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleSeller, clerk.Role, "seller by default")
	assert.Equal(t, "caixa@loja.test", clerk.Email)
	assert.Equal(t, f.tenant.ID, clerk.TenantID)
	assert.NotEqual(t, "segredo123", clerk.Password)

	_, err = users.CreateUser(f.ctx, &service.CreateUserInput{
		Name: "Outro", Email: "CAIXA@loja.test", Password: "segredo123",
	})
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	manager := enum.UserRoleManager
	promoted, err := users.UpdateUser(f.ctx, f.owner.ID, &service.UpdateUserInput{ID: clerk.ID, Role: &manager})
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleManager, promoted.Role)

	off := false
	_, err = users.UpdateUser(f.ctx, f.owner.ID, &service.UpdateUserInput{ID: f.owner.ID, Active: &off})
	assert.Equal(t, http.StatusBadRequest, appCode(t, err), "nobody deactivates themselves")

	disabled, err := users.UpdateUser(f.ctx, f.owner.ID, &service.UpdateUserInput{ID: clerk.ID, Active: &off})
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	_, err = users.UpdateUser(f.ctx, f.owner.ID, &service.UpdateUserInput{ID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	staff, err := users.ListUsers(f.ctx)
	require.NoError(t, err)
	assert.Len(t, staff, 3)
}
