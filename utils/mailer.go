package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Mailer struct {
	client *ses.Client
	from   string
}

func NewMailer(region, from string) (*Mailer, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("AWS config load failed: %v", err)
	}
	return &Mailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

// generic SES sender
func (m *Mailer) sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.from),
	}

	_, err := m.client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// Forgot Password email sender
func (m *Mailer) SendResetEmail(to string, token string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse this in the app to set a new password.", token)
	return m.sendEmail(to, subject, body)
}
