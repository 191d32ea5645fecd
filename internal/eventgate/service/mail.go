package service

import (
	"fmt"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
)

// Email copy used by account and RSVP notifications. Kept in one place so the
// wording can be reviewed without digging through the services.

const (
	subjectActivate    = "Activate your account"
	subjectWelcome     = "Welcome aboard!"
	subjectRSVPConfirm = "RSVP Confirmation"
)

func activationBody(username, link string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for signing up. Please confirm your email address by visiting the "+
			"link below:\n\n%s\n\n"+
			"If you did not create this account you can safely ignore this message.\n",
		username, link)
}

func welcomeBody(username string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your account has been activated. You can now log in and start "+
			"registering for events.\n",
		username)
}

func rsvpConfirmationBody(username string, ev *domain.Event) string {
	location := ev.Location
	if location == "" {
		location = "TBA"
	}
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"You have successfully registered for %q on %s at %s. "+
			"We look forward to seeing you there.\n",
		username, ev.Name, ev.Date.Format("Monday, 2 January 2006"), location)
}
