package dialogue

import (
	"fmt"
	"strconv"

	"github.com/foxseedlab/kaishu/internal/repository"
)

const (
	messageAgreeReplyFormat = "Excellent. Thank you, %s. To make it easy, I am sending a secure payment link to your phone right now."
	messagePaymentSMSFormat = "Hello %s, here is your link to pay the outstanding amount of $%s. Link: %s"
	messageAgreeClose       = "The link has been sent. Thank you for your time. Goodbye."
	messageRefuseCloseFmt   = "I understand. We've made a note of your response. Thank you for your time, %s. Goodbye."
	messageAskToRepeat      = "I'm sorry, I didn't quite catch that. Could you please repeat it?"
)

func agreeReply(c *repository.Customer) string {
	return fmt.Sprintf(messageAgreeReplyFormat, c.DisplayName())
}

func paymentSMS(c *repository.Customer, paymentLink string) string {
	amount := 0.0
	if c != nil {
		amount = c.LoanAmount
	}
	return fmt.Sprintf(messagePaymentSMSFormat, c.DisplayName(), formatAmount(amount), paymentLink)
}

func refuseClose(c *repository.Customer) string {
	return fmt.Sprintf(messageRefuseCloseFmt, c.DisplayName())
}

// formatAmount drops trailing zeros: 500 -> "500", 120.5 -> "120.5".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
