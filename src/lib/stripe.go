package lib

import (
	"context"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CreateInvoiceCheckout opens a hosted checkout session for the open balance
// of an invoice. Returns the hosted URL and the session id; the metadata
// carries the invoice code so the admin verification flow can match the
// incoming funds.
func CreateInvoiceCheckout(invoiceCode string, amount float64) (string, string, error) {
	sc := GetStripeClient()
	successUrl := fmt.Sprintf("%s/checkout/callback/success", os.Getenv("APP_HOST"))
	params := &stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successUrl),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(amount * 100)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Invoice %s", invoiceCode)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"invoice": invoiceCode,
		},
	}
	checkoutSession, err := sc.V1CheckoutSessions.Create(context.Background(), params)
	if err != nil {
		return "", "", err
	}
	return checkoutSession.URL, checkoutSession.ID, nil
}
