package services

import (
	"fmt"
	"strings"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/config"
	"github.com/pmin574/pc-diamond-edge/pkg/notification"
)

// OrderPlacedNotification confirms a new order to the customer by mail
// and pings the sales Slack channel.
type OrderPlacedNotification struct {
	Order models.Order
}

func (n *OrderPlacedNotification) Via() []string { return []string{"mail", "slack"} }

func (n *OrderPlacedNotification) ToMail() notification.MailData {
	var lines strings.Builder
	for _, item := range n.Order.Items {
		fmt.Fprintf(&lines, "<li>%d × %s (%s) — %.2f</li>",
			item.Quantity,
			item.ProductSnapshot.Name,
			item.ProductSnapshot.ArticleNumber,
			item.UnitPrice)
	}

	body := fmt.Sprintf(
		"<h2>Thank you for your order, %s!</h2>"+
			"<p>Order #%d has been received and is being reviewed.</p>"+
			"<ul>%s</ul>"+
			"<p><strong>Total: %.2f</strong></p>",
		n.Order.CustomerName, n.Order.ID, lines.String(), n.Order.Total)

	return notification.MailData{
		Subject: fmt.Sprintf("Order #%d received", n.Order.ID),
		Body:    body,
	}
}

func (n *OrderPlacedNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order #%d from %s — total %.2f",
			n.Order.ID, n.Order.CustomerName, n.Order.Total),
		Attachments: []notification.SlackAttachment{{
			Color:  "good",
			Title:  fmt.Sprintf("Order #%d", n.Order.ID),
			Text:   fmt.Sprintf("%d line(s), %s", len(n.Order.Items), n.Order.CustomerEmail),
			Footer: "diamond edge storefront",
		}},
	}
}

// ContactMessageNotification forwards a contact form submission to the
// sales inbox, with Reply-To set to the sender.
type ContactMessageNotification struct {
	Message models.ContactMessage
}

func (n *ContactMessageNotification) Via() []string { return []string{"mail", "slack"} }

func (n *ContactMessageNotification) ToMail() notification.MailData {
	subject := n.Message.Subject
	if subject == "" {
		subject = "New contact inquiry"
	}

	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p>"+
			"<p><strong>Company:</strong> %s</p>"+
			"<p>%s</p>",
		n.Message.Name, n.Message.Email, n.Message.Company, n.Message.Message)

	return notification.MailData{
		To:      config.ContactInbox(),
		ReplyTo: n.Message.Email,
		Subject: subject,
		Body:    body,
	}
}

func (n *ContactMessageNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("Contact inquiry from %s <%s>", n.Message.Name, n.Message.Email),
	}
}
