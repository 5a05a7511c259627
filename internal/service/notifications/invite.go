package notifications

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	productID = "-//Silent Wash//Car Detail Booking//EN"

	// InviteFileName имя вложения с приглашением
	InviteFileName = "invite.ics"
	// InviteContentType тип вложения, чтобы почтовые клиенты показали кнопки ответа
	InviteContentType = "text/calendar; method=REQUEST"
)

// Invite данные для календарного приглашения
type Invite struct {
	UID            string
	Summary        string
	Description    string
	Location       string
	Start          time.Time
	End            time.Time
	OrganizerName  string
	OrganizerEmail string
	AttendeeName   string
	AttendeeEmail  string
	Stamp          time.Time
}

// BuildInvite формирует iCalendar (METHOD:REQUEST) с одним событием
func BuildInvite(inv Invite) ([]byte, error) {
	if inv.UID == "" || !inv.Start.Before(inv.End) {
		return nil, fmt.Errorf("%w: BuildInvite - uid=%q start=%s end=%s",
			ErrInvalidBooking, inv.UID, inv.Start.Format(time.RFC3339), inv.End.Format(time.RFC3339))
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(productID)

	event := cal.AddEvent(inv.UID)
	event.SetDtStampTime(inv.Stamp.UTC())
	event.SetStartAt(inv.Start.UTC())
	event.SetEndAt(inv.End.UTC())
	event.SetSummary(inv.Summary)
	if inv.Description != "" {
		event.SetDescription(inv.Description)
	}
	if inv.Location != "" {
		event.SetLocation(inv.Location)
	}
	if inv.OrganizerEmail != "" {
		event.SetOrganizer("mailto:"+inv.OrganizerEmail, ics.WithCN(inv.OrganizerName))
	}
	if inv.AttendeeEmail != "" {
		event.AddAttendee("mailto:"+inv.AttendeeEmail,
			ics.WithCN(inv.AttendeeName),
			ics.ParticipationStatusNeedsAction,
			ics.ParticipationRoleReqParticipant,
			ics.WithRSVP(true),
		)
	}

	return []byte(cal.Serialize()), nil
}
