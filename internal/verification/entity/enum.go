package entity

// Channel is the delivery medium for a one-time code.
type Channel string

const (
	ChannelUnknown Channel = ""
	ChannelEmail   Channel = "email"
	ChannelSMS     Channel = "sms"
)

func (c Channel) String() string {
	return string(c.Ensure())
}

func (c Channel) Ensure() Channel {
	switch c {
	case ChannelEmail:
		return ChannelEmail
	case ChannelSMS:
		return ChannelSMS
	default:
		return ChannelUnknown
	}
}

func ChannelFromString(s string) Channel {
	return Channel(s).Ensure()
}

// Purpose is the business reason a one-time code was requested. It selects
// the wording of the delivery message.
type Purpose string

const (
	PurposeUnknown           Purpose = ""
	PurposeSignup            Purpose = "signup"
	PurposeLogin             Purpose = "login"
	PurposePasswordReset     Purpose = "password_reset"
	PurposePhoneVerification Purpose = "phone_verification"
)

func (p Purpose) String() string {
	return string(p.Ensure())
}

func (p Purpose) Ensure() Purpose {
	switch p {
	case PurposeSignup:
		return PurposeSignup
	case PurposeLogin:
		return PurposeLogin
	case PurposePasswordReset:
		return PurposePasswordReset
	case PurposePhoneVerification:
		return PurposePhoneVerification
	default:
		return PurposeUnknown
	}
}

func PurposeFromString(s string) Purpose {
	return Purpose(s).Ensure()
}

// Title returns the human wording used in delivery templates.
func (p Purpose) Title() string {
	switch p.Ensure() {
	case PurposeSignup:
		return "Account Signup"
	case PurposeLogin:
		return "Login Verification"
	case PurposePasswordReset:
		return "Password Reset"
	case PurposePhoneVerification:
		return "Phone Verification"
	default:
		return "Verification"
	}
}
