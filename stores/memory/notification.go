package memory

import (
	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
)

type notificationRepo struct {
	s *Store
}

func (r *notificationRepo) Insert(c ctx.Ctx, n notification.Notification) error {
	release, err := r.s.write(c, "notifications.Insert")
	if err != nil {
		return err
	}
	defer release()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.notifications[n.ItemId] = append(r.s.st.notifications[n.ItemId], n)
	return nil
}

func (r *notificationRepo) FindAll(c ctx.Ctx, id domain.ItemId, offset, limit int) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ns := r.s.st.notifications[id]
	if offset >= len(ns) {
		return []notification.Notification{}, nil
	}
	ns = ns[offset:]
	if limit > 0 && limit < len(ns) {
		ns = ns[:limit]
	}
	return append([]notification.Notification{}, ns...), nil
}
