// Package text renders the human-readable date and time payloads.
package text

import (
	"fmt"
	"time"

	"github.com/danmuck/dtproto/internal/protocol"
)

// Date is a calendar date as carried on the wire.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Clock is a wall-clock hour and minute.
type Clock struct {
	Hour   int
	Minute int
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

type phrasebook struct {
	months [12]string
	// date takes month name, day, year via explicit argument indexes.
	date string
	time string
}

var phrasebooks = [...]phrasebook{
	protocol.LanguageEnglish: {
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		date: "Today's date is %[1]s %[2]d, %[3]d",
		time: "The current time is %d:%02d",
	},
	protocol.LanguageMaori: {
		months: [12]string{
			"Kohi-tātea", "Hui-tanguru", "Poutū-te-rangi", "Paenga-whāwhā", "Haratua", "Pipiri",
			"Hōngongoi", "Here-turi-kōkā", "Mahuru", "Whiringa-ā-nuku", "Whiringa-ā-rangi", "Hakihea",
		},
		date: "Ko te ra o tenei ra ko %[1]s %[2]d, %[3]d",
		time: "Ko te wa o tenei wa %d:%02d",
	},
	protocol.LanguageGerman: {
		months: [12]string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember",
		},
		date: "Heute ist der %[2]d. %[1]s %[3]d",
		time: "Die Uhrzeit ist %d:%02d",
	},
}

// Render returns the UTF-8 sentence for kind in lang. It reports false when
// kind or lang is unknown, or the date has no month name.
// Callers must still enforce protocol.MaxTextLen before encoding.
func Render(kind protocol.RequestType, lang protocol.Language, date Date, clock Clock) ([]byte, bool) {
	if !lang.Valid() {
		return nil, false
	}
	book := phrasebooks[lang]
	switch kind {
	case protocol.RequestDate:
		if date.Month < 1 || date.Month > 12 {
			return nil, false
		}
		return []byte(fmt.Sprintf(book.date, book.months[date.Month-1], date.Day, date.Year)), true
	case protocol.RequestTime:
		return []byte(fmt.Sprintf(book.time, clock.Hour, clock.Minute)), true
	default:
		return nil, false
	}
}

// MonthName returns the month name for lang, or "" when out of range.
func MonthName(lang protocol.Language, month int) string {
	if !lang.Valid() || month < 1 || month > 12 {
		return ""
	}
	return phrasebooks[lang].months[month-1]
}
