package domain

// DailyNotificationTitle is the title of the daily quote notification.
const DailyNotificationTitle = "✨ QuoteVault — Quote of the Day"

// fallbackNotificationBody is used when there is no quote of the day.
const fallbackNotificationBody = "Stay inspired today 💪"

// DailyNotification is one scheduled daily reminder.
type DailyNotification struct {
	Hour   int
	Minute int
	Title  string
	Body   string
}

// NewDailyNotification builds the reminder for the given time and quote.
// A nil quote produces the generic body.
func NewDailyNotification(hour, minute int, qod *Quote) DailyNotification {
	body := fallbackNotificationBody
	if qod != nil {
		body = qod.Byline()
	}

	return DailyNotification{
		Hour:   hour,
		Minute: minute,
		Title:  DailyNotificationTitle,
		Body:   body,
	}
}
