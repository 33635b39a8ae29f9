package chat

import "strings"

// Canned replies used when the conversational API is not available.
const (
	fallbackSell     = "To sell your license, follow our 3-step process: Upload your license details, receive a valuation within 24 hours, and get paid once you accept our offer!"
	fallbackWorth    = "Our pricing depends on the license type, age, and demand. Upload your license details through our portal for a quick, no-obligation valuation."
	fallbackPayment  = "We offer payments via bank transfer, PayPal, or cryptocurrency. Funds are typically processed within 48 hours of completing the sale."
	fallbackProcess  = "Our process is simple: 1) Upload your license details, 2) Receive a valuation from our team, 3) Accept the offer and get paid!"
	fallbackTypes    = "We purchase a wide range of software licenses including Microsoft, Adobe, Autodesk, Oracle, and many more. Enterprise, OEM, and perpetual licenses are all accepted."
	fallbackGeneric  = "Thanks for your message! If you have specific questions about selling software licenses, I'd be happy to help."
	predefinedTiming = "The entire process typically takes 2-5 business days. Valuation is provided within 24 hours, and payment is processed within 48 hours of accepting the offer."
	predefinedOther  = "Thanks for your question! Our team will be happy to provide more information."
)

// Predefined questions offered as one-click shortcuts in the chat widget.
const (
	QuestionSell    = "How do I sell my license?"
	QuestionTiming  = "How long does the process take?"
	QuestionLicense = "What types of licenses do you buy?"
)

func PredefinedQuestions() []string {
	return []string{QuestionSell, QuestionTiming, QuestionLicense}
}

type keywordRule struct {
	matches func(m string) bool
	reply   string
}

// keywordRules are checked in order; the first match wins.
var keywordRules = []keywordRule{
	{func(m string) bool { return strings.Contains(m, "sell") && strings.Contains(m, "license") }, fallbackSell},
	{func(m string) bool { return containsAny(m, "valuation", "worth") }, fallbackWorth},
	{func(m string) bool { return containsAny(m, "payment", "paid") }, fallbackPayment},
	{func(m string) bool { return containsAny(m, "process", "how") }, fallbackProcess},
	{func(m string) bool { return containsAny(m, "types", "what licenses") }, fallbackTypes},
}

// Fallback picks a canned reply by keyword.
func Fallback(message string) string {
	m := strings.ToLower(message)
	for _, r := range keywordRules {
		if r.matches(m) {
			return r.reply
		}
	}
	return fallbackGeneric
}

// predefinedAnswer is the canned answer for a predefined question whose API
// call failed.
func predefinedAnswer(question string) string {
	switch question {
	case QuestionSell:
		return fallbackSell
	case QuestionTiming:
		return predefinedTiming
	case QuestionLicense:
		return fallbackTypes
	default:
		return predefinedOther
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
