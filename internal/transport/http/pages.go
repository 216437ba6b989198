package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>WanderTrails API</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: linear-gradient(135deg,#0f766e,#0ea5e9); color: #fff; min-height: 100vh; display: flex; flex-direction: column; }
header { flex: 1; padding: 60px 20px; text-align: center; }
a.button { display: inline-block; margin: 10px; padding: 12px 24px; font-size: 16px; border-radius: 4px; text-decoration: none; background: rgba(255,255,255,0.2); color: #fff; transition: background 0.3s; }
a.button:hover { background: rgba(255,255,255,0.4); }
footer { text-align: center; padding: 20px; font-size: 14px; opacity: 0.8; }
</style>
</head>
<body>
<header>
  <h1>WanderTrails</h1>
  <p>Curated travel packages, one booking flow.</p>
  <a class="button" href="/swagger/index.html">API docs</a>
  <a class="button" href="/health">Health</a>
</header>
<footer>
  <a style="color:#fff" href="/pages/terms">Terms</a> &middot;
  <a style="color:#fff" href="/pages/privacy">Privacy</a> &middot;
  <a style="color:#fff" href="/pages/faq">FAQ</a>
</footer>
</body>
</html>`

var staticPages = map[string]string{
	"terms": `<h1>Terms of Service</h1>
<p>Bookings made through WanderTrails are confirmed at the moment payment is
captured. Prices shown at checkout include the service fee and payment
processing fee. Bookings are final; there are no cancellations or refunds
through this service.</p>`,
	"privacy": `<h1>Privacy Policy</h1>
<p>We store the account and booking details you provide in order to operate
the service: contact information for your bookings, your saved trips, and
your notification preferences. Payment card details are handled entirely by
our payment provider and never touch our servers.</p>`,
	"faq": `<h1>Frequently Asked Questions</h1>
<h3>Do I need an account to book?</h3>
<p>No. Guest checkout is supported; an account lets you see your bookings
later and save trips to a wishlist.</p>
<h3>What does the total price include?</h3>
<p>The per-person price times travelers, a flat service fee, and the payment
processing fee shown in the quote breakdown.</p>
<h3>How do I change a booking?</h3>
<p>Bookings cannot be changed or cancelled once confirmed. Contact the tour
operator listed in your confirmation email.</p>`,
}

func RegisterPages(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, landingPageHTML)
	})

	e.GET("/pages/:name", func(c echo.Context) error {
		body, ok := staticPages[c.Param("name")]
		if !ok {
			return c.HTML(http.StatusNotFound, "<h1>Page not found</h1>")
		}
		return c.HTML(http.StatusOK, body)
	})
}
