package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

const ordersCollection = "orders"

type ordersDocument struct {
	Orders []*models.Order `json:"orders"`
	NextID int             `json:"next_id"`
}

// OrderStore owns the orders document. Identifier allocation happens inside
// the store's critical section, so concurrent creates always get distinct,
// sequential identifiers.
type OrderStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewOrderStore(dataDir string, log *zap.Logger) *OrderStore {
	return &OrderStore{path: filepath.Join(dataDir, "orders.json"), log: log}
}

// load assumes s.mu is held.
func (s *OrderStore) load() *ordersDocument {
	doc := &ordersDocument{Orders: []*models.Order{}, NextID: 1}
	err := readDocument(s.path, doc)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Error("orders document unreadable",
			zap.String("path", s.path), zap.Error(err))
		return &ordersDocument{Orders: []*models.Order{}, NextID: 1}
	}
	if doc.NextID < 1 {
		// Repair a hand-edited counter; identifiers must stay monotonic.
		max := 0
		for _, o := range doc.Orders {
			if o.ID > max {
				max = o.ID
			}
		}
		doc.NextID = max + 1
	}
	return doc
}

func (s *OrderStore) save(op string, doc *ordersDocument) error {
	if err := writeDocument(s.path, doc); err != nil {
		return &models.PersistenceError{Collection: ordersCollection, Op: op, Err: err}
	}
	return nil
}

// Create allocates the next identifier and persists a new active order.
func (s *OrderStore) Create(userID int64, username string, orderType models.OrderType, amount decimal.Decimal) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	order := models.NewOrder(doc.NextID, userID, username, orderType, amount)
	doc.Orders = append(doc.Orders, order)
	doc.NextID = order.ID + 1
	if err := s.save("create", doc); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderStore) GetAll() ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Orders, nil
}

func (s *OrderStore) GetByID(id int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.load().Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetByNumber looks an order up by its human-readable number (Z00001).
func (s *OrderStore) GetByNumber(number string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.load().Orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *OrderStore) ByStatus(status models.OrderStatus) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Order
	for _, o := range s.load().Orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderStore) ByOwner(userID int64) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Order
	for _, o := range s.load().Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderStore) ByOperator(operatorID int64) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Order
	for _, o := range s.load().Orders {
		if o.OperatorID != nil && *o.OperatorID == operatorID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Update applies mutate to one order inside the critical section, stamps
// UpdatedAt and persists. A mutate error (e.g. a state-machine rejection)
// leaves the document untouched.
func (s *OrderStore) Update(id int, mutate func(*models.Order) error) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for _, o := range doc.Orders {
		if o.ID != id {
			continue
		}
		if err := mutate(o); err != nil {
			return nil, err
		}
		o.UpdatedAt = time.Now()
		if err := s.save("update", doc); err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, models.ErrNotFound
}
