package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
)

type logAlerter struct{}

// NewLogAlerter reports operator alerts as warn-level log events only.
func NewLogAlerter() OperatorAlerter {
	return logAlerter{}
}

func (logAlerter) PricingUnavailable(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle, billedUnitPrice decimal.Decimal) error {
	logger.WarnContext(ctx, "OPERATOR ALERT: no active base price",
		"rental_id", rental.ID,
		"vehicle_id", vehicle.ID,
		"model_id", vehicle.ModelID,
		"rental_type", rental.RentalType,
		"billed_unit_price", billedUnitPrice.String())
	return nil
}

// mailSender is the part of the SendGrid client the alerter uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridAlerter struct {
	client    mailSender
	fromEmail string
	fromName  string
	toEmail   string
}

func NewSendGridAlerter(apiKey, fromEmail, fromName, toEmail string) OperatorAlerter {
	return newSendGridAlerter(sendgrid.NewSendClient(apiKey), fromEmail, fromName, toEmail)
}

func newSendGridAlerter(client mailSender, fromEmail, fromName, toEmail string) *sendGridAlerter {
	return &sendGridAlerter{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
	}
}

func (a *sendGridAlerter) PricingUnavailable(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle, billedUnitPrice decimal.Decimal) error {
	subject := fmt.Sprintf("Missing %s base price for model %s", rental.RentalType, vehicle.ModelID)
	plainText := fmt.Sprintf(
		"Rental %s on vehicle %s (%s) was billed without an active %s base price for model %s.\n\n"+
			"The stored amount %s was billed as the unit price. Add a base price and recompute the rental.",
		rental.ID, vehicle.ID, vehicle.PlateNumber, rental.RentalType, vehicle.ModelID, billedUnitPrice.String())
	htmlContent := fmt.Sprintf(`<p>Rental <strong>%s</strong> on vehicle %s (%s) was billed without an active
%s base price for model <strong>%s</strong>.</p><p>The stored amount %s was billed as the unit price.</p>`,
		rental.ID, vehicle.ID, vehicle.PlateNumber, rental.RentalType, vehicle.ModelID, billedUnitPrice.String())

	from := mail.NewEmail(a.fromName, a.fromEmail)
	to := mail.NewEmail("Fleet operator", a.toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", a.toEmail, "rental_id", rental.ID)
	response, err := a.client.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send alert email: %w", err)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}
