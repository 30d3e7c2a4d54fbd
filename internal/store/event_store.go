package store

import (
	"context"

	"buglog/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventStore struct{ db *gorm.DB }

func (s *Store) Events() *EventStore { return &EventStore{db: s.DB} }

func (e *EventStore) Insert(ctx context.Context, ev *domain.Event) error {
	if err := e.db.WithContext(ctx).Create(ev).Error; err != nil {
		return dbError("insert event", err)
	}
	return nil
}

// SelectPage returns one page of all events, newest first, with the total
// row count. A page past the end has no records but still carries the total.
func (e *EventStore) SelectPage(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Event], error) {
	req = req.Normalize()
	db := e.db.WithContext(ctx)

	var total int64
	if err := db.Model(&domain.Event{}).Count(&total).Error; err != nil {
		return domain.Page[domain.Event]{}, dbError("count events", err)
	}

	records := []domain.Event{}
	if !req.Beyond(total) {
		err := db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}, Desc: true}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Offset(req.Offset()).
			Limit(req.PageSize).
			Find(&records).Error
		if err != nil {
			return domain.Page[domain.Event]{}, dbError("select events page", err)
		}
	}
	return domain.NewPage(req, records, total), nil
}
