package twocheckout_test

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/twocheckout-go/twocheckout"
)

func returnHash(secret, sellerID, orderNumber, total string) string {
	sum := md5.Sum([]byte(secret + sellerID + orderNumber + total))
	return hex.EncodeToString(sum[:])
}

func TestValidReturn(t *testing.T) {
	t.Parallel()

	c := twocheckout.NewClient(&twocheckout.Config{SellerID: "1001", SecretWord: "tango"})
	hash := returnHash("tango", "1001", "4742525399", "0.01")

	require.True(t, c.ValidReturn("4742525399", "0.01", hash))
	// comparison is case-insensitive on the hex string
	require.True(t, c.ValidReturn("4742525399", "0.01", strings.ToUpper(hash)))
	// determinism
	require.True(t, c.ValidReturn("4742525399", "0.01", returnHash("tango", "1001", "4742525399", "0.01")))
}

func TestValidReturnRejectsAnySingleFieldChange(t *testing.T) {
	t.Parallel()

	c := twocheckout.NewClient(&twocheckout.Config{SellerID: "1001", SecretWord: "tango"})
	hash := returnHash("tango", "1001", "4742525399", "0.01")

	require.False(t, c.ValidReturn("4742525398", "0.01", hash)) // order number
	require.False(t, c.ValidReturn("4742525399", "0.02", hash)) // total

	c.SetVendorCredentials("1002", "tango")
	require.False(t, c.ValidReturn("4742525399", "0.01", hash)) // seller id

	c.SetVendorCredentials("1001", "tangp")
	require.False(t, c.ValidReturn("4742525399", "0.01", hash)) // secret
}

func TestVerifyNotification(t *testing.T) {
	t.Parallel()

	c := twocheckout.NewClient(&twocheckout.Config{SellerID: "1001", SecretWord: "tango"})
	form := url.Values{}
	form.Set("order_number", "4742525399")
	form.Set("total", "10.00")
	form.Set("key", returnHash("tango", "1001", "4742525399", "10.00"))
	require.True(t, c.VerifyNotification(form))

	form.Set("key", "deadbeef")
	require.False(t, c.VerifyNotification(form))

	require.False(t, c.VerifyNotification(url.Values{}))
}
