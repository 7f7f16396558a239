package domain

// Default values
const (
	// DefaultWaitMinutes per-booking wait estimate when the vendor
	// never set one
	DefaultWaitMinutes = 15

	// DefaultPageLimit page size for vendor dashboard listings
	DefaultPageLimit = 50

	// MaxPageLimit hard cap for client-supplied page sizes
	MaxPageLimit = 200

	// MinToken lowest queue token a vendor may assign manually
	MinToken = 1
)

// Late-cancellation policy defaults (advisory fee, no capture)
const (
	DefaultLateCancelWindowHours = 4
	DefaultLateCancelFeePercent  = 30
)

// Business validation constants
const (
	MaxNotesLength = 500

	MinPhoneDigits = 10
	MaxPhoneDigits = 14
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список статусов, исключаемых из "активных" выборок
// (поиск по телефону, подсчет позиции в очереди)
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusDone,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusBooked,
	StatusCancelled,
	StatusDone,
}
