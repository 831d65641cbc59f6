package inbound

import (
	"context"

	"github.com/learnnect/platform-api/internal/engagement/usecase"
	"github.com/learnnect/platform-api/internal/pkg/router"
)

type uc interface {
	SubmitForm(ctx context.Context, in usecase.SubmitFormInput) (*usecase.SubmitFormOutput, error)
	CompleteForm(ctx context.Context, in usecase.CompleteFormInput) (*usecase.CompleteFormOutput, error)
	UploadAttachment(ctx context.Context, in usecase.UploadAttachmentInput) (*usecase.UploadAttachmentOutput, error)
	LeadList(ctx context.Context, in usecase.LeadListInput) (*usecase.LeadListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/engagement/forms", end.SubmitForm)
	r.POST("/api/v1/engagement/forms/complete", end.CompleteForm)
	r.POST("/api/v1/engagement/forms/attachment", end.UploadAttachment) // need authenticated
	r.GET("/api/v1/engagement/leads", end.LeadList)                     // need authenticated & authorization
}
