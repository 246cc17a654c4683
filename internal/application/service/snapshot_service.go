package service

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
)

// SnapshotService loads every collection of the current store at once, for
// clients that work from a full local copy.
type SnapshotService struct {
	customerRepo     repository.CustomerRepository
	prescriptionRepo repository.PrescriptionRepository
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	txnRepo          repository.FinancialTransactionRepository
	supplierRepo     repository.SupplierRepository
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(
	customerRepo repository.CustomerRepository,
	prescriptionRepo repository.PrescriptionRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.FinancialTransactionRepository,
	supplierRepo repository.SupplierRepository,
) *SnapshotService {
	return &SnapshotService{
		customerRepo:     customerRepo,
		prescriptionRepo: prescriptionRepo,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		txnRepo:          txnRepo,
		supplierRepo:     supplierRepo,
	}
}

// LoadWarning names a collection that could not be loaded.
type LoadWarning struct {
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

// Snapshot holds all collections of a store. A collection that failed to
// load is empty and listed in Warnings.
type Snapshot struct {
	Customers    []entity.Customer             `json:"customers"`
	Products     []entity.Product              `json:"products"`
	Orders       []entity.Order                `json:"orders"`
	Transactions []entity.FinancialTransaction `json:"transactions"`
	Suppliers    []entity.Supplier             `json:"suppliers"`
	Warnings     []LoadWarning                 `json:"warnings"`
}

// Partial reports whether any collection failed.
func (s *Snapshot) Partial() bool {
	return len(s.Warnings) > 0
}

// LoadAll fetches the six collections concurrently and joins prescriptions
// onto their customers, newest first. A failed collection only produces a
// warning unless strict is set; the load fails when every fetch failed.
func (s *SnapshotService) LoadAll(ctx context.Context, strict bool) (*Snapshot, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}

	var (
		snap          = &Snapshot{}
		prescriptions []entity.Prescription
		mu            sync.Mutex
		wg            sync.WaitGroup
		failures      int
	)

	fetch := func(name string, load func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(); err != nil {
				log.Printf("Warning: snapshot could not load %s: %v", name, err)
				mu.Lock()
				snap.Warnings = append(snap.Warnings, LoadWarning{Entity: name, Message: err.Error()})
				failures++
				mu.Unlock()
			}
		}()
	}

	fetch("customers", func() (err error) {
		snap.Customers, err = s.customerRepo.All(ctx)
		return
	})
	fetch("prescriptions", func() (err error) {
		prescriptions, err = s.prescriptionRepo.All(ctx)
		return
	})
	fetch("products", func() (err error) {
		snap.Products, err = s.productRepo.All(ctx)
		return
	})
	fetch("orders", func() (err error) {
		snap.Orders, err = s.orderRepo.All(ctx)
		return
	})
	fetch("transactions", func() (err error) {
		snap.Transactions, err = s.txnRepo.All(ctx)
		return
	})
	fetch("suppliers", func() (err error) {
		snap.Suppliers, err = s.supplierRepo.All(ctx)
		return
	})
	wg.Wait()
	sort.Slice(snap.Warnings, func(i, j int) bool { return snap.Warnings[i].Entity < snap.Warnings[j].Entity })

	if failures == 6 {
		return nil, apperror.NewAppError(503, "Could not load any store data")
	}
	if strict && failures > 0 {
		return nil, apperror.NewAppError(503, "Store data is incomplete: "+snap.Warnings[0].Entity+" failed to load")
	}

	snap.Customers = emptyIfNil(snap.Customers)
	snap.Products = emptyIfNil(snap.Products)
	snap.Orders = emptyIfNil(snap.Orders)
	snap.Transactions = emptyIfNil(snap.Transactions)
	snap.Suppliers = emptyIfNil(snap.Suppliers)
	if snap.Warnings == nil {
		snap.Warnings = []LoadWarning{}
	}

	joinPrescriptions(snap.Customers, prescriptions)
	return snap, nil
}

func joinPrescriptions(customers []entity.Customer, prescriptions []entity.Prescription) {
	byCustomer := make(map[uuid.UUID][]entity.Prescription)
	for _, p := range prescriptions {
		byCustomer[p.CustomerID] = append(byCustomer[p.CustomerID], p)
	}
	for i := range customers {
		list := byCustomer[customers[i].ID]
		sort.SliceStable(list, func(a, b int) bool {
			if list[a].Date.Equal(list[b].Date.Time) {
				return list[a].CreatedAt.After(list[b].CreatedAt)
			}
			return list[a].Date.After(list[b].Date.Time)
		})
		if list == nil {
			list = []entity.Prescription{}
		}
		customers[i].Prescriptions = list
	}
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
