package domain

import "time"

// Delivery option identifiers. The set is fixed; there is no delivery
// provider integration behind it.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryPremium  = "premium"
)

// deliveryPrices maps each delivery option to its flat price.
var deliveryPrices = map[string]float64{
	DeliveryStandard: 0,
	DeliveryExpress:  500,
	DeliveryPremium:  1000,
}

// DeliveryPrice returns the price of the given delivery option and whether
// the option is known. An empty or unknown option prices at 0.
func DeliveryPrice(option string) (float64, bool) {
	price, ok := deliveryPrices[option]
	return price, ok
}

// DeliveryOptions returns the fixed set of delivery option identifiers.
func DeliveryOptions() []string {
	return []string{DeliveryStandard, DeliveryExpress, DeliveryPremium}
}

// CheckoutSnapshot freezes the cart's subtotal and GST at the moment a
// checkout begins, so later cart changes do not move the numbers the
// shopper already saw.
type CheckoutSnapshot struct {
	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
}

// CheckoutSession is the ephemeral state of one checkout attempt. It is
// session-scoped and distinct from the durable cart.
type CheckoutSession struct {
	ShopperID      string            `json:"shopper_id"`
	DeliveryOption string            `json:"delivery_option,omitempty"`
	CouponAmount   float64           `json:"coupon_amount"`
	Snapshot       *CheckoutSnapshot `json:"snapshot,omitempty"`
	StartedAt      time.Time         `json:"started_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CheckoutSummary holds the numbers shown on the delivery and review steps.
type CheckoutSummary struct {
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	GST            float64 `json:"gst"`
	DeliveryOption string  `json:"delivery_option"`
	DeliveryPrice  float64 `json:"delivery_price"`
	Total          float64 `json:"total"`
}

// Summarize derives the checkout summary. When a snapshot exists its
// subtotal and GST are authoritative; otherwise liveSubtotal (the current
// cart total) is used. The coupon amount is not clamped against the
// subtotal, so an over-large coupon can drive the total negative.
func (s *CheckoutSession) Summarize(liveSubtotal float64) CheckoutSummary {
	subtotal := liveSubtotal
	var gst float64
	if s.Snapshot != nil {
		subtotal = s.Snapshot.Subtotal
		gst = s.Snapshot.GST
	}

	deliveryPrice, _ := DeliveryPrice(s.DeliveryOption)

	return CheckoutSummary{
		Subtotal:       subtotal,
		Discount:       s.CouponAmount,
		GST:            gst,
		DeliveryOption: s.DeliveryOption,
		DeliveryPrice:  deliveryPrice,
		Total:          subtotal - s.CouponAmount + gst + deliveryPrice,
	}
}

// DeliveryAddress is the durable checkout delivery address.
type DeliveryAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}
