package mail

import "fmt"

// WelcomeEmail renders the registration greeting sent to new customers.
func WelcomeEmail(name string) (subject, body string) {
	subject = "Welcome to Smart Cart!"
	body = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, %s!</h2>
  <p>Your Smart Cart account is ready. Browse the catalog, fill your cart
  and track every order from your profile page.</p>
  <p>Happy shopping,<br/>The Smart Cart team</p>
</body>
</html>`, name)
	return subject, body
}
