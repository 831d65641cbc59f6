package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/storage"
)

type UploadAttachmentInput struct {
	Filename    string `validate:"required"`
	ContentType string
	Size        int64
	Body        io.Reader `validate:"required"`
}

type UploadAttachmentOutput struct {
	Key string
}

var allowedAttachmentExts = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// UploadAttachment stores a resume or similar document in object storage
// and returns the key a later form submission references.
func (s *Usecase) UploadAttachment(ctx context.Context, in UploadAttachmentInput) (*UploadAttachmentOutput, error) {
	ctx, span := s.startSpan(ctx, "UploadAttachment")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ext := strings.ToLower(path.Ext(in.Filename))
	if _, ok := allowedAttachmentExts[ext]; !ok {
		return nil, goerror.NewBusiness("File type not supported. Please upload a PDF, Word document, or image.", goerror.CodeInvalidInput)
	}

	bucket := s.cfg.GetString("storage.bucket")
	key := fmt.Sprintf("attachments/%s%s", s.keys.Generate(), ext)

	if _, err := s.storage.PutObject(ctx, bucket, key, in.Body, storage.PutOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    map[string]string{"original_filename": path.Base(in.Filename)},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store attachment", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UploadAttachmentOutput{Key: key}, nil
}
