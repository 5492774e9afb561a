package billing

// Method is the closed set of accepted payment methods.
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodPayPal       Method = "paypal"
	MethodCash         Method = "cash"
	MethodCheck        Method = "check"
	MethodOther        Method = "other"
)

var Methods = []Method{
	MethodCreditCard,
	MethodBankTransfer,
	MethodPayPal,
	MethodCash,
	MethodCheck,
	MethodOther,
}

func ParseMethod(s string) (Method, bool) {
	for _, m := range Methods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}
