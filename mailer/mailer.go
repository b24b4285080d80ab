package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mixmasters/globals"
	"mixmasters/structs"
)

// HTTPClient is replaceable in tests.
var HTTPClient = &http.Client{Timeout: 15 * time.Second}

type Options struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send posts one message to the external mail relay. No retries; callers
// decide what a failure means.
func Send(opts Options) error {
	payload, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, globals.MailServiceURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", globals.MailServiceAPIKey)

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned %s", resp.Status)
	}
	return nil
}

// SendRegistrationEmails sends the participant confirmation and one
// notification per configured admin address. Every send is best-effort: a
// failure flips the returned flag but never stops the remaining sends, and
// the registration is never rolled back.
func SendRegistrationEmails(reg structs.Registration) bool {
	sent := true

	if err := Send(Options{
		To:      reg.Email,
		Subject: "[MixMasters Club – International Tamil DJ Battle] Entry Confirmed - " + reg.EventTitle,
		HTML:    participantHTML(reg),
	}); err != nil {
		log.Printf("participant confirmation to %s failed: %v", reg.Email, err)
		sent = false
	}

	displayName := reg.StageName
	if displayName == "" {
		displayName = reg.FullName
	}
	for _, adminEmail := range globals.AdminEmails {
		if err := Send(Options{
			To:      adminEmail,
			Subject: "[NEW REGISTRATION] " + displayName + " - MixMasters Club – International Tamil DJ Battle",
			HTML:    adminHTML(reg),
		}); err != nil {
			log.Printf("admin notification to %s failed: %v", adminEmail, err)
			sent = false
		}
	}

	return sent
}

func participantHTML(reg structs.Registration) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Registration Confirmed - MixMasters Club</title>
</head>
<body style="background-color: #050505; font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; color: #ffffff; margin: 0; padding: 0;">
  <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%%" style="max-width: 600px; margin: 0 auto; background-color: #0a0a0a; border: 1px solid #1a1a1a;">
    <tr>
      <td style="padding: 40px; text-align: center; border-bottom: 1px solid #1a1a1a;">
        <h1 style="color: #C5A059; font-size: 28px; letter-spacing: 2px; margin: 0; text-transform: uppercase;">MixMasters Club</h1>
        <p style="color: #666; font-size: 10px; letter-spacing: 4px; margin-top: 10px; text-transform: uppercase;">International Tamil DJ Battle</p>
      </td>
    </tr>
    <tr>
      <td style="padding: 40px;">
        <h2 style="font-size: 20px; color: #ffffff; margin-bottom: 20px;">Entry Confirmed, %s.</h2>
        <p style="color: #aaaaaa; line-height: 1.6; margin-bottom: 30px;">
          Your application for the <strong>MixMasters Club – International Tamil DJ Battle</strong> has been received. Our council is currently reviewing your showcase.
        </p>
        <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%%" style="background-color: #0f0f0f; border: 1px solid #1a1a1a; margin-bottom: 30px;">
          <tr>
            <td style="padding: 20px;">
              <p style="color: #C5A059; font-size: 10px; text-transform: uppercase; letter-spacing: 2px; margin: 0 0 10px 0;">Battle Details</p>
              <p style="color: #ffffff; margin: 0; font-size: 14px;"><strong>Location:</strong> %s</p>
              <p style="color: #ffffff; margin: 5px 0 0 0; font-size: 14px;"><strong>Date:</strong> %s</p>
            </td>
          </tr>
        </table>
        <p style="color: #aaaaaa; line-height: 1.6; margin-bottom: 20px;">
          Direct any further enquiries to our Instagram DM or reply to this email.
        </p>
      </td>
    </tr>
    <tr>
      <td style="padding: 20px 40px; background-color: #000000; text-align: center; border-top: 1px solid #1a1a1a;">
        <p style="color: #444; font-size: 10px; letter-spacing: 1px; margin: 0;">&copy; 2026 Mix Masters Club - Singapore</p>
      </td>
    </tr>
  </table>
</body>
</html>`, reg.FullName, reg.EventLocation, reg.EventDate)
}

func adminHTML(reg structs.Registration) string {
	stageName := reg.StageName
	if stageName == "" {
		stageName = "N/A"
	}
	soundCloud := reg.SoundCloud
	if soundCloud == "" {
		soundCloud = "N/A"
	}
	demoFile := reg.DemoFile
	if demoFile == "" {
		demoFile = "N/A"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
  <div style="background-color: #f4f4f4; padding: 20px; font-family: sans-serif;">
    <div style="background-color: #ffffff; padding: 30px; border-radius: 8px;">
      <h2 style="color: #111;">New Artist Registration</h2>
      <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; color: #666;"><strong>Event:</strong></td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>Artist Name:</strong></td><td>%s (%s)</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>Email:</strong></td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>Origin:</strong></td><td>%s, %s</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>Experience:</strong></td><td>%s Years</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>Instagram:</strong></td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>Showcase:</strong></td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; color: #666;"><strong>File:</strong></td><td>%s</td></tr>
      </table>
      <p style="margin-top: 30px; font-size: 12px; color: #999;">Submitted at: %s</p>
    </div>
  </div>
</body>
</html>`, reg.EventTitle, stageName, reg.FullName, reg.Email, reg.City, reg.Nationality,
		reg.Experience, reg.Instagram, soundCloud, demoFile, reg.CreatedAt)
}
