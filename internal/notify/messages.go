package notify

import "fmt"

// WelcomeMessage is the plain-text confirmation sent to a freshly
// registered student. No attachment.
func WelcomeMessage(to, studentName, program, studentID string) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\nYou are registered for %s.\nID: %s\n\nWelcome aboard!",
		studentName, program, studentID,
	)

	return Message{
		Kind:    KindWelcome,
		To:      to,
		Subject: "Welcome to Spacbot Ltd",
		Body:    body,
	}
}

// AdminAlertMessage is the sign-up alert sent to the operator mailbox,
// carrying the full students table as a CSV attachment named
// database.csv (the filename the admin's spreadsheet import expects).
// A nil csvExport (export failed) produces an alert with no attachment
// rather than an empty file.
func AdminAlertMessage(to, studentName, program string, csvExport []byte) Message {
	msg := Message{
		Kind:    KindAdminAlert,
		To:      to,
		Subject: fmt.Sprintf("New Sign-up: %s", studentName),
		Body:    fmt.Sprintf("New student in %s.", program),
	}
	if csvExport != nil {
		msg.Attachment = &Attachment{
			Filename: "database.csv",
			Data:     csvExport,
		}
	}
	return msg
}
