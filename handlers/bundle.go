package handlers

// HandlerBundle groups the HTTP handlers for route registration.
type HandlerBundle struct {
	Booking *BookingHandler
	Coupon  *CouponHandler
	Payment *PaymentHandler
	Wallet  *WalletHandler
}
