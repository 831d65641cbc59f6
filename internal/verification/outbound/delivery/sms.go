package delivery

import (
	"context"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/smsgw"
	"go.opentelemetry.io/otel/codes"
)

// SMS forwards one-time codes to the SMS gateway with the Indian dial
// prefix; the gateway template carries the wording.
type SMS struct {
	gateway smsgw.SMS
	ins     instrument.Instrumentation
}

func NewSMS(gateway smsgw.SMS, ins instrument.Instrumentation) *SMS {
	return &SMS{gateway: gateway, ins: ins}
}

func (s *SMS) SendCode(ctx context.Context, mobile, code string, expiry time.Duration) error {
	ctx, span := s.ins.Tracer("verification.outbound.delivery").Start(ctx, "SendSMSCode")
	defer span.End()

	err := s.gateway.SendOTP(ctx, smsgw.OTPMessage{
		Mobile:        mobile,
		CountryCode:   "91",
		Code:          code,
		ExpiryMinutes: int(expiry.Minutes()),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
