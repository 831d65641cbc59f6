package db

import (
	"context"
	"encoding/json"

	"github.com/learnnect/platform-api/internal/engagement/entity"
)

const createLeadSQL = `
INSERT INTO engagement_leads (id, form_type, name, email, phone, fields, attachment_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (s *DB) CreateLead(ctx context.Context, lead entity.Lead) (err error) {
	ctx, span := s.startSpan(ctx, "CreateLead")
	defer func() { s.endSpan(span, err) }()

	fields, err := json.Marshal(lead.Fields)
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx, createLeadSQL,
		lead.ID,
		lead.FormType.String(),
		lead.Name,
		lead.Email,
		lead.Phone,
		fields,
		lead.AttachmentKey,
		lead.CreatedAt,
	)
	err = s.mapError(err)
	return err
}
