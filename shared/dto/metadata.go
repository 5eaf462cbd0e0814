package dto

import (
	"studio/shared/constant"
	"studio/shared/model"
	"studio/shared/timezone"
	"time"
)

// Metadata is the audit block shared by every response, rendered in the
// studio's timezone. Unset timestamps are left out.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  formatAudit(source.CreatedAt),
		ModifiedAt: formatAudit(source.ModifiedAt),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}

func formatAudit(at time.Time) string {
	if at.IsZero() {
		return ""
	}

	return timezone.Format(at, constant.DateFormat)
}
