package inbound

import (
	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/engagement/usecase"
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes the form gateway: submit, verified completion,
// attachment upload, and the admin lead listing.
type HTTPEndpoint struct {
	uc uc
}

// SubmitForm accepts a public form submission, answering either with the
// stored lead or with otp_required=true when verification gates it.
func (h *HTTPEndpoint) SubmitForm(r *router.Request) (any, error) {
	var req SubmitFormRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitForm(r.Context(), usecase.SubmitFormInput{
		FormType:      entity.FormTypeFromString(req.FormType),
		Fields:        req.Fields,
		AttachmentKey: req.AttachmentKey,
	})
	if err != nil {
		return nil, err
	}

	return SubmitFormResponse{
		OTPRequired: resp.OTPRequired,
		LeadID:      resp.LeadID,
		Message:     resp.Message,
	}, nil
}

// CompleteForm finishes a stashed submission with the emailed code.
func (h *HTTPEndpoint) CompleteForm(r *router.Request) (any, error) {
	var req CompleteFormRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CompleteForm(r.Context(), usecase.CompleteFormInput{
		FormType: entity.FormTypeFromString(req.FormType),
		Email:    req.Email,
		Code:     req.Code,
	})
	if err != nil {
		return nil, err
	}

	return CompleteFormResponse{
		Success:           resp.Completed,
		LeadID:            resp.LeadID,
		Message:           resp.Message,
		RemainingAttempts: resp.RemainingAttempts,
	}, nil
}

// UploadAttachment stores a multipart document and returns its storage key.
func (h *HTTPEndpoint) UploadAttachment(r *router.Request) (any, error) {
	file, err := r.StreamSingleUpload("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// The part length is unknown while streaming; -1 lets the storage
	// backend fall back to a chunked upload.
	resp, err := h.uc.UploadAttachment(r.Context(), usecase.UploadAttachmentInput{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        -1,
		Body:        file,
	})
	if err != nil {
		return nil, err
	}

	return UploadAttachmentResponse{Key: resp.Key}, nil
}

// LeadList returns stored submissions for the admin console.
func (h *HTTPEndpoint) LeadList(r *router.Request) (any, error) {
	limit, _ := r.GetQueryInt32("limit")
	offset, _ := r.GetQueryInt32("offset")

	resp, err := h.uc.LeadList(r.Context(), usecase.LeadListInput{
		FormType: entity.FormTypeFromString(r.GetQuery("form_type")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return LeadListResponse{
		Leads: lo.Map(resp.Leads, func(l entity.Lead, _ int) LeadResponse {
			return LeadResponse{
				ID:            l.ID,
				FormType:      l.FormType.String(),
				Name:          l.Name,
				Email:         l.Email,
				Phone:         l.Phone,
				Fields:        l.Fields,
				AttachmentKey: l.AttachmentKey,
				CreatedAt:     l.CreatedAt,
			}
		}),
		Total: resp.Total,
	}, nil
}
