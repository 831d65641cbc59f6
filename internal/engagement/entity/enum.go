package entity

// FormType identifies which public form a submission came from. It picks
// the email field name, the confirmation template, and the lead bucket.
type FormType string

const (
	FormTypeUnknown    FormType = ""
	FormTypeEnquiry    FormType = "enquiry"
	FormTypeContact    FormType = "contact"
	FormTypeNewsletter FormType = "newsletter"
	FormTypeSignup     FormType = "signup"
)

func (f FormType) String() string {
	return string(f.Ensure())
}

func (f FormType) Ensure() FormType {
	switch f {
	case FormTypeEnquiry:
		return FormTypeEnquiry
	case FormTypeContact:
		return FormTypeContact
	case FormTypeNewsletter:
		return FormTypeNewsletter
	case FormTypeSignup:
		return FormTypeSignup
	default:
		return FormTypeUnknown
	}
}

func FormTypeFromString(s string) FormType {
	return FormType(s).Ensure()
}
