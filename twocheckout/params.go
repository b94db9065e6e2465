package twocheckout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parameter keys accepted by the checkout URL builder. Keeping the
// vocabulary as constants catches typos at compile time instead of at the
// gateway.
const (
	ParamType     = "type"     // transaction type
	ParamPrice    = "price"    // transaction total
	ParamTangible = "tangible" // whether physical items are included
	ParamLanguage = "language" // customer language tag
	ParamRegion   = "region"   // customer region
	ParamCurrency = "currency" // transaction currency

	ParamReturnURL = "return_url" // URL to return to on success
	ParamCancelURL = "cancel_url" // URL to return to on failure
	ParamIPNURL    = "ipn_url"    // URL notifications are sent to

	ParamVendorID      = "vendor_id"
	ParamVendorOrderID = "vendor_order_id" // merchant-side order reference

	ParamTotal = "total" // amount the customer paid

	ParamItemCount = "item_count"
	ParamItems     = "items"

	ParamProductID          = "product_id"
	ParamVendorProductID    = "vendor_product_id"
	ParamProducts           = "products" // []LineItem for the checkout builder
	ParamProductTitle       = "product_title"
	ParamProductDescription = "product_description"
	ParamProductQuantity    = "product_quantity"
	ParamProductPrice       = "product_price"

	ParamRecurrence = "recurrence" // how often a subscription is charged
	ParamDuration   = "duration"   // for how long it is charged
	ParamStartupFee = "startup_fee"

	ParamTestMode    = "test_mode"
	ParamFixed       = "fixed"        // customer cannot change items
	ParamSkipLanding = "skip_landing" // skip the order review page

	ParamPaymentMethod = "payment_method"

	ParamCustomerName     = "customer_name"
	ParamCustomerAddress  = "customer_address"
	ParamCustomerPostcode = "customer_postcode"
	ParamCustomerCity     = "customer_city"
	ParamCustomerCountry  = "customer_country"
	ParamCustomerEmail    = "customer_email"
)

// Params is a free-form parameter mapping passed to API operations and the
// checkout builder. Keys come from the Param constants above or, for API
// calls, from the query parameter names the endpoint documents.
type Params map[string]any

// checkParams validates a caller-supplied mapping against the required and
// allowed key lists of an operation. The effective allowed set is the union
// of both lists. When both lists are empty the operation takes no
// parameters and an empty mapping is returned.
func checkParams(params Params, required, allowed []string) (Params, error) {
	if params == nil {
		params = Params{}
	}
	if len(required) == 0 && len(allowed) == 0 {
		return Params{}, nil
	}

	permitted := make(map[string]struct{}, len(required)+len(allowed))
	for _, key := range allowed {
		permitted[key] = struct{}{}
	}
	for _, key := range required {
		permitted[key] = struct{}{}
	}

	var unknown []string
	for key := range params {
		if _, ok := permitted[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{
			Reason:  ErrUnsupportedParameter,
			Message: fmt.Sprintf("unknown param(s): %s", strings.Join(unknown, ", ")),
		}
	}

	var missing []string
	for _, key := range required {
		if _, ok := params[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ValidationError{
			Reason:  ErrMissingParameter,
			Message: fmt.Sprintf("missing required param(s): %s", strings.Join(missing, ", ")),
		}
	}

	return params, nil
}

// paramString renders a parameter value the way it goes on the wire.
// Booleans become the 1/0 flags the Admin API expects.
func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
