package twocheckout

import (
	"context"
	"fmt"
	"net/url"
)

// Payment methods the hosted page accepts a restriction on.
const (
	PaymentMethodCard   = "CC"
	PaymentMethodPayPal = "PPI"
)

// ProductOption is one configurable option of a line item.
type ProductOption struct {
	Name      string
	Value     string
	Surcharge string
}

// LineItem describes one product passed through to the hosted checkout.
// Amounts travel as strings because the gateway echoes them back verbatim
// in the return hash.
type LineItem struct {
	Type        string
	Name        string
	Description string
	ProductID   string
	Quantity    string
	Price       string
	Tangible    string // Y/N, defaults to N when empty
	Recurrence  string
	Duration    string // only forwarded together with Recurrence
	StartupFee  string
	Options     []ProductOption
}

// BuildCheckoutURL builds the redirect URL for the hosted payment page.
// singlePage selects the single-page purchase flow over the multi-page one.
//
// An empty params mapping yields the bare base URL with no query string.
// Otherwise the vendor id and integration mode are always set, exactly one
// product source is emitted (vendor product reference, gateway product id,
// or explicit line items, in that precedence), and the remaining parameters
// are mapped per the pass-through parameter set. Currency is never
// forwarded; the gateway does not accept it on the redirect.
func (c *Client) BuildCheckoutURL(ctx context.Context, params Params, singlePage bool) (string, error) {
	base := c.host() + "/checkout/purchase"
	if singlePage {
		base = c.host() + "/checkout/spurchase"
	}

	if len(params) == 0 {
		return base, nil
	}

	var q orderedQuery
	q.add("sid", c.config.SellerID)
	q.add("mode", "2CO")

	switch {
	case params[ParamVendorProductID] != nil:
		product, err := c.VendorProductDetails(ctx, paramString(params[ParamVendorProductID]))
		if err != nil {
			return "", err
		}
		q.add("product_id", stringValue(product["assigned_product_id"]))
	case params[ParamProductID] != nil:
		product, err := c.ProductDetails(ctx, paramString(params[ParamProductID]))
		if err != nil {
			return "", err
		}
		q.add("product_id", stringValue(product["assigned_product_id"]))
	default:
		if items, ok := params[ParamProducts].([]LineItem); ok {
			for i, item := range items {
				addLineItem(&q, i, item)
			}
		}
	}

	if v, ok := params[ParamLanguage]; ok {
		if code, ok := c.SupportedLanguageCode(paramString(v)); ok {
			q.add("lang", code)
		}
	}

	if v, ok := params[ParamReturnURL]; ok {
		q.add("x_receipt_link_url", paramString(v))
	}

	if v, ok := params[ParamVendorOrderID]; ok {
		orderID := paramString(v)
		if len(orderID) > 50 {
			return "", &ValidationError{Message: "merchant order id cannot be longer than 50 characters"}
		}
		q.add("merchant_order_id", orderID)
	}

	if v, ok := params[ParamPaymentMethod]; ok {
		if method := paramString(v); method == PaymentMethodCard || method == PaymentMethodPayPal {
			q.add("payment_method", method)
		}
	}

	if truthy(params[ParamSkipLanding]) {
		q.add("skip_landing", "1")
	}

	q.addGated("card_holder_name", params[ParamCustomerName], 128)
	q.addGated("street_address", params[ParamCustomerAddress], 64)
	q.addGated("city", params[ParamCustomerCity], 64)
	q.addGated("country", params[ParamCustomerCountry], 64)
	q.addGated("zip", params[ParamCustomerPostcode], 16)
	q.addGated("email", params[ParamCustomerEmail], 64)

	return base + "?" + q.encode(), nil
}

func addLineItem(q *orderedQuery, index int, item LineItem) {
	prefix := fmt.Sprintf("li_%d_", index)
	if item.Type != "" {
		q.add(prefix+"type", item.Type)
	}
	if item.Name != "" {
		q.add(prefix+"name", item.Name)
	}
	if item.Description != "" {
		q.add(prefix+"description", item.Description)
	}
	if item.ProductID != "" {
		q.add(prefix+"product_id", item.ProductID)
	}
	if item.Quantity != "" {
		q.add(prefix+"quantity", item.Quantity)
	}
	if item.Price != "" {
		q.add(prefix+"price", item.Price)
	}
	if item.Tangible != "" {
		q.add(prefix+"tangible", item.Tangible)
	} else {
		q.add(prefix+"tangible", "N")
	}
	if item.Recurrence != "" {
		q.add(prefix+"recurrence", item.Recurrence)
		if item.Duration != "" {
			q.add(prefix+"duration", item.Duration)
		}
	}
	if item.StartupFee != "" {
		q.add(prefix+"startup_fee", item.StartupFee)
	}
	for j, option := range item.Options {
		optPrefix := fmt.Sprintf("%soption_%d_", prefix, j)
		if option.Name != "" {
			q.add(optPrefix+"name", option.Name)
		}
		if option.Value != "" {
			q.add(optPrefix+"value", option.Value)
		}
		if option.Surcharge != "" {
			q.add(optPrefix+"surcharge", option.Surcharge)
		}
	}
}

// orderedQuery builds a query string preserving insertion order, which
// url.Values cannot do.
type orderedQuery struct {
	pairs []string
}

func (q *orderedQuery) add(key, value string) {
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

// addGated adds a value only when present and strictly shorter than limit
// bytes. Over-long values are dropped, not rejected.
func (q *orderedQuery) addGated(key string, v any, limit int) {
	value := paramString(v)
	if value == "" || len(value) >= limit {
		return
	}
	q.add(key, value)
}

func (q *orderedQuery) encode() string {
	out := ""
	for i, pair := range q.pairs {
		if i > 0 {
			out += "&"
		}
		out += pair
	}
	return out
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
