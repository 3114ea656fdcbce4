package mappers

import (
	"time"

	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	"github.com/servicedesk-hq/servicedesk/modules/core/presentation/viewmodels"
)

func UserToListItem(u user.User) viewmodels.UserListItem {
	return viewmodels.UserListItem{
		ID:        u.ID().String(),
		Email:     u.Email(),
		Username:  u.Username(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		FullName:  u.FullName(),
		CreatedAt: formatTimestamp(u.CreatedAt()),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
