package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

// Notifier posts completed-order messages to the operator channel via the
// bot API. Delivery is best-effort: failures are logged and never propagate
// back to the webhook handler.
type Notifier struct {
	apiURL     string
	botToken   string
	chatID     string
	httpClient *http.Client
}

func NewNotifier(apiURL, botToken, chatID string) *Notifier {
	return &Notifier{
		apiURL:   strings.TrimRight(apiURL, "/"),
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// NotifyOrderPaid formats and dispatches the operator message in a detached
// goroutine.
func (n *Notifier) NotifyOrderPaid(order *domain.PendingOrder, paidAmount, paidCurrency string) {
	if n.botToken == "" || n.chatID == "" {
		slog.Warn("notification skipped: bot token or chat id not configured", "order_id", order.ID)
		return
	}

	text := formatOrderMessage(order, paidAmount, paidCurrency)

	go func() {
		body, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text})
		if err != nil {
			slog.Error("failed to marshal notification", "error", err.Error())
			return
		}

		url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
		resp, err := n.httpClient.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			slog.Error("notification failed", "order_id", order.ID, "error", err.Error())
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("notification returned non-2xx", "order_id", order.ID, "status", resp.StatusCode)
			return
		}
		slog.Info("notification sent", "order_id", order.ID)
	}()
}

func formatOrderMessage(order *domain.PendingOrder, paidAmount, paidCurrency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Оплачен заказ %s\n", order.ID)
	fmt.Fprintf(&b, "Robux: %d\n", order.AmountRobux)
	fmt.Fprintf(&b, "Оплачено: %s %s\n", paidAmount, strings.ToUpper(paidCurrency))
	if order.ContactHandle != "" {
		fmt.Fprintf(&b, "Контакт: %s\n", order.ContactHandle)
	}

	switch order.Method {
	case domain.DeliveryGamepassPurchase:
		if order.GamepassPurchase != nil {
			fmt.Fprintf(&b, "Купить геймпасс: %s", order.GamepassPurchase.GamepassURL)
		}
	case domain.DeliveryDirectCredit:
		if order.DirectCredit != nil {
			fmt.Fprintf(&b, "Зачислить вручную: %s (id %d)\n", order.DirectCredit.RecipientName, order.DirectCredit.RecipientID)
			fmt.Fprintf(&b, "Cookie: %s", order.DirectCredit.SessionCookie)
		}
	}

	return b.String()
}
