package constvars

// Password strength rules, each checked independently.
const (
	RegexPasswordSpecialChar = `[!@#$%^&*(),.?":{}|<>]`
	RegexPasswordUppercase   = `[A-Z]`
	RegexPasswordLowercase   = `[a-z]`
	RegexPasswordDigit       = `\d`
)

const (
	RegexCurrencyCode = `^[A-Z]{3}$`
	// E.164, leading plus required.
	RegexPhoneNumberE164 = `^\+[1-9]\d{9,14}$`
	// Paystack references are free text chosen by the merchant; ours are
	// payment ids but the gateway may echo its own.
	RegexPaymentReference = `^[A-Za-z0-9._=-]{1,100}$`
)
