package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/notify"
)

// RedemptionCode builds the short code the operator pastes into the game's
// admin tool. Weekly and monthly memberships map to fixed denominations (161
// and 800); diamond packs carry their diamond count; anything else is just
// the player reference.
func RedemptionCode(prefix, playerID string, productType model.ProductType, diamonds int) string {
	switch {
	case productType == model.ProductTypeWeekly:
		return fmt.Sprintf("%s %s 161", prefix, playerID)
	case productType == model.ProductTypeMonthly:
		return fmt.Sprintf("%s %s 800", prefix, playerID)
	case productType == model.ProductTypeDiamond && diamonds > 0:
		return fmt.Sprintf("%s %s %d", prefix, playerID, diamonds)
	default:
		return fmt.Sprintf("%s %s", prefix, playerID)
	}
}

func (c *Client) localTime(t time.Time) string {
	return t.In(c.location).Format("02 Jan 2006 03:04 PM")
}

func (c *Client) paymentMessage(note notify.PaymentNote) string {
	code := RedemptionCode(c.codePrefix, note.PlayerID, note.ProductType, note.Diamonds)

	var b strings.Builder
	b.WriteString("💰 <b>New Payment Received!</b>\n\n")
	fmt.Fprintf(&b, "📌 <b>Transaction ID:</b> <code>%s</code>\n", note.TransactionID)
	fmt.Fprintf(&b, "💵 <b>Amount:</b> %s ৳\n", note.Amount.String())
	fmt.Fprintf(&b, "🎮 <b>Player ID:</b> <code>%s</code>\n", note.PlayerID)
	fmt.Fprintf(&b, "📦 <b>Product:</b> %s\n", note.ProductName)
	if note.Diamonds > 0 {
		fmt.Fprintf(&b, "💎 <b>Diamonds:</b> %d\n", note.Diamonds)
	}
	fmt.Fprintf(&b, "⏰ <b>Time:</b> %s\n\n", c.localTime(time.Now()))
	b.WriteString("<b>Top Up Code:</b>\n")
	fmt.Fprintf(&b, "<code>%s</code>\n\n", code)
	b.WriteString("✅ <b>Payment Verified</b>\n")
	b.WriteString("🚀 <b>Start Delivery!</b>\n\n")
	b.WriteString("🔗 <i>Robo Top Up System</i>")

	return b.String()
}

func (c *Client) deliveryMessage(transactionID, playerID, productName string) string {
	return fmt.Sprintf(
		"🎉 <b>Order Delivered!</b>\n\n"+
			"📌 <b>Transaction:</b> <code>%s</code>\n"+
			"🎮 <b>Player ID:</b> <code>%s</code>\n"+
			"📦 <b>Product:</b> %s\n"+
			"⏰ <b>Time:</b> %s\n\n"+
			"✅ <b>Status: COMPLETED</b>",
		transactionID, playerID, productName, c.localTime(time.Now()))
}

func (c *Client) deliveredUpdateMessage(transactionID, playerID, productName string) string {
	return fmt.Sprintf(
		"✅ <b>Order Marked Delivered!</b>\n\n"+
			"📌 Transaction: %s\n"+
			"🎮 Player ID: %s\n"+
			"📦 Product: %s\n"+
			"⏰ Time: %s\n\n"+
			"🎉 <b>Status: ✅ COMPLETED</b>",
		transactionID, playerID, productName, c.localTime(time.Now()))
}

func (c *Client) failedUpdateMessage(transactionID, playerID, productName, reason string) string {
	return fmt.Sprintf(
		"❌ <b>Order Marked Failed!</b>\n\n"+
			"📌 Transaction: %s\n"+
			"🎮 Player ID: %s\n"+
			"📦 Product: %s\n"+
			"⏰ Time: %s\n"+
			"📝 Reason: %s\n\n"+
			"🚫 <b>Status: ❌ FAILED</b>",
		transactionID, playerID, productName, c.localTime(time.Now()), reason)
}
