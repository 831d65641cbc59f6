package db

import (
	"context"
	"encoding/json"

	"github.com/learnnect/platform-api/internal/engagement/entity"
)

const listLeadsSQL = `
SELECT id, form_type, name, email, phone, fields, attachment_key, created_at
FROM engagement_leads
WHERE ($1 = '' OR form_type = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

const countLeadsSQL = `
SELECT COUNT(*) FROM engagement_leads WHERE ($1 = '' OR form_type = $1)
`

func (s *DB) ListLeads(ctx context.Context, filter entity.LeadListFilter) (leads []entity.Lead, total int64, err error) {
	ctx, span := s.startSpan(ctx, "ListLeads")
	defer func() { s.endSpan(span, err) }()

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.Query(ctx, listLeadsSQL, filter.FormType.String(), limit, filter.Offset)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	leads = make([]entity.Lead, 0, limit)
	for rows.Next() {
		var (
			lead      entity.Lead
			formType  string
			rawFields []byte
		)
		if err = rows.Scan(&lead.ID, &formType, &lead.Name, &lead.Email, &lead.Phone, &rawFields, &lead.AttachmentKey, &lead.CreatedAt); err != nil {
			return nil, 0, err
		}

		lead.FormType = entity.FormTypeFromString(formType)
		if len(rawFields) > 0 {
			if err = json.Unmarshal(rawFields, &lead.Fields); err != nil {
				return nil, 0, err
			}
		}

		leads = append(leads, lead)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	if err = s.conn.QueryRow(ctx, countLeadsSQL, filter.FormType.String()).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	return leads, total, nil
}
