package twocheckout

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// ValidReturn reports whether a return/INS callback hash is authentic. The
// expected hash is the hex MD5 of secret word, seller id, order number and
// total concatenated in that order, as the gateway documents. Comparison is
// case-insensitive and constant time. A mismatch means a forged or
// misconfigured callback, not something to retry.
func (c *Client) ValidReturn(orderNumber, total, givenHash string) bool {
	sum := md5.Sum([]byte(c.config.SecretWord + c.config.SellerID + orderNumber + total))
	expected := hex.EncodeToString(sum[:])
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(givenHash)))
}

// VerifyNotification validates the hash fields of a decoded callback form,
// the shape an INS or return handler receives.
func (c *Client) VerifyNotification(form url.Values) bool {
	return c.ValidReturn(form.Get("order_number"), form.Get("total"), form.Get("key"))
}
