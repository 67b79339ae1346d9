package send_reminders

// Response итог одного прохода напоминаний
type Response struct {
	Checked int // бронирований на сегодня
	Due     int // попали в окно напоминания
	Sent    int // отправлено в этом проходе
}
