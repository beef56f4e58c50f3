package mailhandler

import (
	"fmt"
	"strings"

	"github.com/telekom/logmail/pkg/logevent"
)

// DateLayout renders event timestamps in the notification body.
const DateLayout = "Mon Jan 02 15:04:05 MST 2006"

// Kind tells which row of the decision table produced a notification.
type Kind string

const (
	KindAlert        Kind = "alert"
	KindRegistration Kind = "registration"
)

// Notification is a rendered mail, built per event and never stored.
type Notification struct {
	Kind    Kind
	Subject string
	Body    string
}

func alertSubject(appName string) string {
	return fmt.Sprintf("[%s] Error event logged", appName)
}

func registrationSubject(appName string) string {
	return fmt.Sprintf("[%s] Logger handler registering event", appName)
}

func formatAlert(appName string, ev logevent.Event) Notification {
	var b strings.Builder
	b.WriteString("An error event has been logged for application ")
	b.WriteString(appName)
	b.WriteString(".")

	b.WriteString("\n\nDate: ")
	b.WriteString(ev.Time.Format(DateLayout))
	b.WriteString("\nMessage: ")
	b.WriteString(renderMessage(ev.Message, ev.Args))

	if ev.Err != nil {
		b.WriteString("\nStacktrace:\n")
		b.WriteString(renderStack(ev))
	}
	b.WriteString("\n")

	return Notification{Kind: KindAlert, Subject: alertSubject(appName), Body: b.String()}
}

func formatRegistration(appName string, ev logevent.Event) Notification {
	return Notification{
		Kind:    KindRegistration,
		Subject: registrationSubject(appName),
		Body:    "A logger handler has been modified:\n\n" + ev.Message,
	}
}

// renderMessage applies args to the template. Without args the template is
// used verbatim. If rendering yields a fmt fault marker that neither the
// template nor the printed args account for, the raw template is kept and
// the args are appended.
func renderMessage(template string, args []any) string {
	if len(args) == 0 {
		return template
	}
	out := fmt.Sprintf(template, args...)
	if strings.Count(out, "%!") > faultMarkers(template, args) {
		return fmt.Sprintf("%s %v", template, args)
	}
	return out
}

func faultMarkers(template string, args []any) int {
	n := strings.Count(template, "%!")
	for _, arg := range args {
		n += strings.Count(fmt.Sprint(arg), "%!")
	}
	return n
}

// renderStack prints the error with %+v, which includes the stack for errors
// created by github.com/pkg/errors, followed by any stack the logging
// facility captured. The result always ends with a newline.
func renderStack(ev logevent.Event) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%+v", ev.Err))
	if ev.Stack != "" {
		if !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		b.WriteString(ev.Stack)
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
