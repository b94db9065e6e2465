package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/noah-isme/twocheckout-go/internal/config"
	"github.com/noah-isme/twocheckout-go/twocheckout"
)

const usage = `usage: twoco <command> [flags]

commands:
  payments       list payments made to the vendor account
  sales          list sales, optionally filtered
  sale           show one sale by id
  comment        add a comment to a sale
  product        show one product
  products       list products
  checkout-url   build a hosted checkout redirect URL
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client := twocheckout.NewClient(&twocheckout.Config{
		SellerID:   cfg.SellerID,
		SecretWord: cfg.SecretWord,
		Username:   cfg.APIUsername,
		Password:   cfg.APIPassword,
		BaseURL:    cfg.BaseURL,
		Sandbox:    cfg.Sandbox,
		Timeout:    cfg.RequestTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "payments":
		runPayments(ctx, client, os.Args[2:])
	case "sales":
		runSales(ctx, client, os.Args[2:])
	case "sale":
		runSale(ctx, client, os.Args[2:])
	case "comment":
		runComment(ctx, client, os.Args[2:])
	case "product":
		runProduct(ctx, client, os.Args[2:])
	case "products":
		runProducts(ctx, client, os.Args[2:])
	case "checkout-url":
		runCheckoutURL(ctx, client, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runPayments(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("payments", flag.ExitOnError)
	parse(fs, args)

	payments, err := client.ListPayments(ctx)
	if err != nil {
		log.Fatalf("list payments: %v", err)
	}
	printJSON(payments)
}

func runSales(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("sales", flag.ExitOnError)
	var (
		customerEmail = fs.String("customer-email", "", "filter by customer email")
		customerName  = fs.String("customer-name", "", "filter by customer name")
		dateBegin     = fs.String("date-begin", "", "filter sales on or after this date (YYYY-MM-DD)")
		dateEnd       = fs.String("date-end", "", "filter sales on or before this date (YYYY-MM-DD)")
		page          = fs.String("page", "", "result page to fetch")
		pagesize      = fs.String("pagesize", "", "results per page")
	)
	parse(fs, args)

	params := twocheckout.Params{}
	setIfPresent(params, "customer_email", *customerEmail)
	setIfPresent(params, "customer_name", *customerName)
	setIfPresent(params, "sale_date_begin", *dateBegin)
	setIfPresent(params, "sale_date_end", *dateEnd)
	setIfPresent(params, "cur_page", *page)
	setIfPresent(params, "pagesize", *pagesize)

	sales, err := client.ListSales(ctx, params)
	if err != nil {
		log.Fatalf("list sales: %v", err)
	}
	printJSON(sales)
}

func runSale(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("sale", flag.ExitOnError)
	saleID := fs.String("id", "", "sale id (required)")
	parse(fs, args)
	requireFlag(fs, *saleID, "id")

	sale, err := client.DetailSale(ctx, *saleID)
	if err != nil {
		log.Fatalf("detail sale: %v", err)
	}
	printJSON(sale)
}

func runComment(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	var (
		saleID     = fs.String("id", "", "sale id (required)")
		text       = fs.String("text", "", "comment text (required)")
		ccVendor   = fs.Bool("cc-vendor", false, "email a copy to the vendor")
		ccCustomer = fs.Bool("cc-customer", false, "email a copy to the customer")
	)
	parse(fs, args)
	requireFlag(fs, *saleID, "id")
	requireFlag(fs, *text, "text")

	err := client.CreateComment(ctx, *saleID, *text, &twocheckout.CommentOptions{
		CCVendor:   *ccVendor,
		CCCustomer: *ccCustomer,
	})
	if err != nil {
		log.Fatalf("create comment: %v", err)
	}
	log.Printf("comment added to sale %s", *saleID)
}

func runProduct(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	var (
		productID = fs.String("id", "", "2Checkout product id")
		vendorRef = fs.String("vendor-ref", "", "vendor-assigned product reference")
	)
	parse(fs, args)
	if *productID == "" && *vendorRef == "" {
		log.Fatal("one of -id or -vendor-ref is required")
	}

	var product map[string]any
	var err error
	if *vendorRef != "" {
		product, err = client.VendorProductDetails(ctx, *vendorRef)
	} else {
		product, err = client.ProductDetails(ctx, *productID)
	}
	if err != nil {
		log.Fatalf("detail product: %v", err)
	}
	printJSON(product)
}

func runProducts(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	var (
		page     = fs.String("page", "", "result page to fetch")
		pagesize = fs.String("pagesize", "", "results per page")
	)
	parse(fs, args)

	params := twocheckout.Params{}
	setIfPresent(params, "cur_page", *page)
	setIfPresent(params, "pagesize", *pagesize)

	payload, err := client.ListProducts(ctx, params)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	printJSON(payload)
}

func runCheckoutURL(ctx context.Context, client *twocheckout.Client, args []string) {
	fs := flag.NewFlagSet("checkout-url", flag.ExitOnError)
	var (
		singlePage    = fs.Bool("single-page", false, "use the single-page purchase flow")
		productID     = fs.String("product-id", "", "2Checkout product id to sell")
		vendorRef     = fs.String("vendor-ref", "", "vendor-assigned product reference to sell")
		itemName      = fs.String("item-name", "", "ad-hoc line item name")
		itemPrice     = fs.String("item-price", "", "ad-hoc line item price")
		itemQty       = fs.String("item-quantity", "1", "ad-hoc line item quantity")
		itemTangible  = fs.String("item-tangible", "", "ad-hoc line item tangible flag (Y/N)")
		language      = fs.String("language", "", "customer language tag")
		returnURL     = fs.String("return-url", "", "URL the customer returns to")
		orderID       = fs.String("order-id", "", "merchant-side order reference")
		paymentMethod = fs.String("payment-method", "", "restrict payment method (CC or PPI)")
		skipLanding   = fs.Bool("skip-landing", false, "skip the order review page")
		email         = fs.String("email", "", "prefill customer email")
	)
	parse(fs, args)

	params := twocheckout.Params{}
	switch {
	case *vendorRef != "":
		params[twocheckout.ParamVendorProductID] = *vendorRef
	case *productID != "":
		params[twocheckout.ParamProductID] = *productID
	case *itemName != "":
		params[twocheckout.ParamProducts] = []twocheckout.LineItem{{
			Type:     "product",
			Name:     *itemName,
			Price:    *itemPrice,
			Quantity: *itemQty,
			Tangible: *itemTangible,
		}}
	}
	setIfPresent(params, twocheckout.ParamLanguage, *language)
	setIfPresent(params, twocheckout.ParamReturnURL, *returnURL)
	setIfPresent(params, twocheckout.ParamVendorOrderID, *orderID)
	setIfPresent(params, twocheckout.ParamPaymentMethod, *paymentMethod)
	setIfPresent(params, twocheckout.ParamCustomerEmail, *email)
	if *skipLanding {
		params[twocheckout.ParamSkipLanding] = true
	}

	checkoutURL, err := client.BuildCheckoutURL(ctx, params, *singlePage)
	if err != nil {
		log.Fatalf("build checkout url: %v", err)
	}
	fmt.Println(checkoutURL)
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
}

func requireFlag(fs *flag.FlagSet, value, name string) {
	if strings.TrimSpace(value) == "" {
		log.Printf("-%s is required", name)
		fs.Usage()
		os.Exit(2)
	}
}

func setIfPresent(params twocheckout.Params, key, value string) {
	if strings.TrimSpace(value) != "" {
		params[key] = value
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(out))
}
