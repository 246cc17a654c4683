package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/pkg/apperror"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey is the context key for tenant ID
	TenantIDKey ctxKey = "tenant_id"
	// SkipTenantScopeKey is the context key for skipping tenant scope (operator CLI)
	SkipTenantScopeKey ctxKey = "skip_tenant_scope"

	txKey ctxKey = "gorm_tx"
)

// TenantScope returns a GORM scope that filters by tenant
// This should be applied to all queries for tenant-scoped entities
// If SkipTenantScopeKey is true in context, returns all records
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipTenantScopeKey).(bool); ok && skipScope {
			return db
		}

		tenantID, ok := GetTenantID(ctx)
		if !ok {
			// Fail-safe: no tenant, no rows
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// WithSkipTenantScope adds skip tenant scope flag to context
func WithSkipTenantScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipTenantScopeKey, skip)
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok && tenantID != uuid.Nil
}

// requireTenant returns the tenant a new row must belong to.
func requireTenant(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return uuid.Nil, apperror.ErrTenantRequired
	}
	return tenantID, nil
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// likePattern builds a case-insensitive LIKE argument; callers compare
// against LOWER(column) so the query runs on both postgres and sqlite.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// orderClause whitelists sortable columns.
func orderClause(sortBy, sortOrder, fallback string, allowed ...string) string {
	column := fallback
	for _, a := range allowed {
		if a == sortBy {
			column = sortBy
			break
		}
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}
