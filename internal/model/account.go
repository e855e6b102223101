package model

import (
	"time"
)

// AdminAccount is the row gating dashboard access. It is distinct from the
// identity service's own user record: the identity service answers "who is
// this", the account row answers "may they administer".
type AdminAccount struct {
	ID        int64         `db:"id" json:"id"`
	Email     *string       `db:"email" json:"email"`
	UserID    *string       `db:"user_id" json:"userId"`
	Status    AccountStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}

type CreateAdminAccountParams struct {
	Email  string
	UserID string
	Status AccountStatus
}
