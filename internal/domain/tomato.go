package domain

import "time"

// TomatoSource за что начислены томаты
type TomatoSource string

const (
	TomatoSourceTimeslot   TomatoSource = "timeslot"
	TomatoSourceRetreat    TomatoSource = "retreat"
	TomatoSourcePurchase   TomatoSource = "purchase"
	TomatoSourceAttendance TomatoSource = "attendance"
	TomatoSourceManual     TomatoSource = "manual"
)

func (s TomatoSource) IsValid() bool {
	switch s {
	case TomatoSourceTimeslot, TomatoSourceRetreat, TomatoSourcePurchase,
		TomatoSourceAttendance, TomatoSourceManual:
		return true
	}
	return false
}

// Tomato запись в журнале игровых очков
type Tomato struct {
	ID              int64
	UserID          int64
	Number          int
	Source          TomatoSource
	AcquisitionDate time.Time
}

// Message сообщение в общем чате
type Message struct {
	ID          int64
	UserID      int64
	Author      string
	Content     string
	PostedAt    time.Time
	ReportCount int
}

// IsHidden true, если на сообщение пожаловались достаточно раз
func (m *Message) IsHidden() bool {
	return m.ReportCount >= HiddenMessageReportThreshold
}

// Report жалоба на сообщение
type Report struct {
	ID        int64
	MessageID int64
	UserID    int64
	Reason    string
	CreatedAt time.Time
}

// Attendance отметка присутствия пользователя на сессии
type Attendance struct {
	ID     int64
	UserID int64
	Key    string
	Date   time.Time
}
