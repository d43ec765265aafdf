package tokens

import (
	"context"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

type Store interface {
	Put(ctx context.Context, t models.ResetToken) error
	// Get reports false when the token is unknown.
	Get(ctx context.Context, token string) (models.ResetToken, bool, error)
	Delete(ctx context.Context, token string) error
}

// record is the stored value. Created is Unix milliseconds.
type record struct {
	Username string `json:"username"`
	Created  int64  `json:"created"`
}

func toRecord(t models.ResetToken) record {
	return record{Username: t.Username, Created: t.Created.UnixMilli()}
}

func (r record) token(token string) models.ResetToken {
	return models.ResetToken{Token: token, Username: r.Username, Created: timeFromMillis(r.Created)}
}
