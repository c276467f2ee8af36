package cryptomus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

// WebhookEvent is the subset of the gateway webhook body this service acts
// on. The full body stays in raw form for signature verification.
type WebhookEvent struct {
	OrderID       string               `json:"order_id"`
	Status        domain.PaymentStatus `json:"status"`
	PaymentAmount string               `json:"payment_amount"`
	Currency      string               `json:"currency"`
	Sign          string               `json:"sign"`
}

// ParseWebhook verifies the signature against the raw body and, only on a
// match, returns the decoded event. The canonical bytes are the original
// body with the sign member spliced out, preserving the gateway's key order
// and whitespace everywhere else.
func (c *Client) ParseWebhook(raw []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("%w: malformed webhook body: %v", domain.ErrParse, err)
	}
	if event.Sign == "" {
		return nil, domain.ErrMissingSignature
	}

	canonical := stripSign(raw, event.Sign)
	if c.Sign(canonical) != event.Sign {
		return nil, domain.ErrInvalidSignature
	}

	return &event, nil
}

var signMemberPattern = `"sign"\s*:\s*"%s"`

// stripSign removes the sign member from the raw JSON bytes without
// re-serializing the document. Re-marshalling through a Go map would reorder
// keys and break the byte-for-byte signature scheme.
func stripSign(raw []byte, sign string) []byte {
	member := fmt.Sprintf(signMemberPattern, regexp.QuoteMeta(sign))

	// Usual case: ,"sign":"..." somewhere after the first member.
	re := regexp.MustCompile(`\s*,` + member)
	if re.Match(raw) {
		return re.ReplaceAll(raw, nil)
	}

	// sign as the first member: "sign":"...", .
	re = regexp.MustCompile(member + `\s*,\s*`)
	if re.Match(raw) {
		return re.ReplaceAll(raw, nil)
	}

	// sign as the only member.
	re = regexp.MustCompile(member)
	stripped := re.ReplaceAll(raw, nil)
	return bytes.TrimSpace(stripped)
}
