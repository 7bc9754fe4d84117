package handlers

// HandlerBundle groups all route handlers for registration.
type HandlerBundle struct {
	Auth    *AuthHandler
	Request *RequestHandler
	Offer   *OfferHandler
	Admin   *AdminHandler
}
