package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNameLength          = 255
	MaxDetailsLength       = 2000
	MaxMessageLength       = 1000
	MaxReportReasonLength  = 500
	MinWorkplaceSeats      = 1
	MaxWorkplaceSeats      = 1000
	MinTimeslotMinutes     = 15
	MaxTimeslotMinutes     = 24 * 60
	MaxGeneratedTimeslots  = 2000
	MinCronIntervalSeconds = 60
	MaxPercentOff          = 100
	MaxOrderLines          = 50
)

// Default values
const (
	DefaultRefundHours   = 48
	DefaultRetreatRefund = 100 // % от цены ретрита
	DefaultMessagesLimit = 50
	MaxMessagesLimit     = 200
)

// HiddenMessageReportThreshold число жалоб, после которого сообщение скрывается из ленты
const HiddenMessageReportThreshold = 3

// CronTokenHeader заголовок с секретом, которым cron-задачи вызывают внутренние маршруты API
const CronTokenHeader = "X-Cron-Token"
