package notifier

import (
	"fmt"

	"neuradigest/internal/domain/entity"
)

// WelcomeSubject is the subject line of the welcome email.
const WelcomeSubject = "Welcome to the NeuraDigest newsletter"

// welcomeText renders the plain-text part of the welcome email.
func welcomeText(sub *entity.Subscriber) string {
	return fmt.Sprintf(`Hi %s,

Thanks for subscribing to the NeuraDigest newsletter!

You'll now receive a curated digest of AI and technology news.
If this wasn't you, you can unsubscribe at any time from the link
in any of our emails.

The NeuraDigest Team
`, sub.FirstName())
}

// welcomeHTML renders the HTML part of the welcome email.
func welcomeHTML(sub *entity.Subscriber) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1a1a2e;">
    <h2>Hi %s,</h2>
    <p>Thanks for subscribing to the <strong>NeuraDigest</strong> newsletter!</p>
    <p>You'll now receive a curated digest of AI and technology news.</p>
    <p style="color: #666; font-size: 12px;">
      If this wasn't you, you can unsubscribe at any time from the link
      in any of our emails.
    </p>
    <p>The NeuraDigest Team</p>
  </body>
</html>
`, sub.FirstName())
}
