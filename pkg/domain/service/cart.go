package service

import (
	"errors"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least one")
	ErrNegativePrice   = errors.New("item price cannot be negative")
)

// CartService owns the advanced cart. Every mutation persists the advanced
// snapshot and the derived legacy snapshot on the same path, then notifies;
// listeners treat the notification as the only signal that the derived view
// is safe to re-read.
type CartService interface {
	AddItem(draft model.LineItemDraft) (*model.CartLineItem, error)
	RemoveItem(id int64)
	UpdateQuantity(id int64, delta int)
	Clear()
	Items() []model.CartLineItem
	LegacyRows() []model.LegacyCartRow
	Total() decimal.Decimal
	ItemCount() int
}

func NewCartService(store SnapshotStore, dispatcher EventDispatcher, ids IDGenerator) CartService {
	s := &cartService{store: store, dispatcher: dispatcher, ids: ids}
	s.items = s.loadItems()
	return s
}

type cartService struct {
	store      SnapshotStore
	dispatcher EventDispatcher
	ids        IDGenerator
	items      []model.CartLineItem
}

func (s *cartService) loadItems() []model.CartLineItem {
	var items []model.CartLineItem
	found, err := s.store.Load(AdvancedCartKey, &items)
	if err != nil {
		log.WithError(err).Error("Failed to read advanced cart snapshot, starting empty")
		return []model.CartLineItem{}
	}
	if !found || items == nil {
		return []model.CartLineItem{}
	}
	return items
}

func (s *cartService) AddItem(draft model.LineItemDraft) (*model.CartLineItem, error) {
	if draft.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if draft.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	candidate := model.CartLineItem{
		ProductID: draft.ProductID,
		Size:      draft.Size,
		Delivery:  draft.Delivery,
	}
	for i := range s.items {
		if s.items[i].SameSelection(candidate) {
			s.items[i].Quantity += draft.Quantity
			s.persistAndNotify()
			merged := s.items[i]
			return &merged, nil
		}
	}

	item := model.CartLineItem{
		ID:        s.ids.NextID(),
		ProductID: draft.ProductID,
		Name:      draft.Name,
		Price:     draft.Price,
		Image:     draft.Image,
		Category:  draft.Category,
		Quantity:  draft.Quantity,
		Size:      draft.Size,
		Delivery:  draft.Delivery,
		Customer:  draft.Customer,
		Address:   draft.Address,
	}
	s.items = append(s.items, item)
	s.persistAndNotify()
	return &item, nil
}

func (s *cartService) RemoveItem(id int64) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistAndNotify()
}

func (s *cartService) UpdateQuantity(id int64, delta int) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Quantity+delta <= 0 {
			s.RemoveItem(id)
			return
		}
		s.items[i].Quantity += delta
		s.persistAndNotify()
		return
	}
}

func (s *cartService) Clear() {
	s.items = []model.CartLineItem{}
	s.persistAndNotify()
}

func (s *cartService) Items() []model.CartLineItem {
	items := make([]model.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *cartService) LegacyRows() []model.LegacyCartRow {
	return model.LegacyProjection(s.items)
}

func (s *cartService) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (s *cartService) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persistAndNotify writes both cart snapshots before signalling listeners,
// so the legacy rows never lag the line items across an event boundary.
// Write failures are logged and absorbed; the in-memory state may then
// diverge from the durable state until the next successful write.
func (s *cartService) persistAndNotify() {
	if err := s.store.Save(AdvancedCartKey, s.items); err != nil {
		log.WithError(err).Error("Failed to persist advanced cart snapshot")
	}
	if err := s.store.Save(LegacyCartKey, model.LegacyProjection(s.items)); err != nil {
		log.WithError(err).Error("Failed to persist legacy cart snapshot")
	}
	_ = s.dispatcher.Dispatch(model.AdvancedCartChanged{})
	_ = s.dispatcher.Dispatch(model.CartChanged{})
}
