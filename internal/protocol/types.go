package protocol

import "strings"

const (
	Magic              uint16 = 0x497E
	PacketTypeRequest  uint16 = 0x0001
	PacketTypeResponse uint16 = 0x0002

	RequestSize        = 6
	ResponseHeaderSize = 13
	MaxTextLen         = 255
	MaxDatagramSize    = 4096

	// Years at or beyond this value are rejected.
	YearLimit = 2100
)

// RequestType selects what the server renders.
type RequestType uint16

const (
	RequestDate RequestType = 0x0001
	RequestTime RequestType = 0x0002
)

func (t RequestType) Valid() bool {
	return t == RequestDate || t == RequestTime
}

func (t RequestType) String() string {
	switch t {
	case RequestDate:
		return "date"
	case RequestTime:
		return "time"
	default:
		return "unknown"
	}
}

// ParseRequestType accepts "date" or "time" in any case.
func ParseRequestType(raw string) (RequestType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "date":
		return RequestDate, true
	case "time":
		return RequestTime, true
	default:
		return 0, false
	}
}

// Language is the 0-based language index a server socket is bound to.
// The wire carries Code(), which is 1-based.
type Language uint8

const (
	LanguageEnglish Language = iota
	LanguageMaori
	LanguageGerman
)

// Languages lists every supported language in socket binding order.
var Languages = [...]Language{LanguageEnglish, LanguageMaori, LanguageGerman}

func (l Language) Valid() bool {
	return l <= LanguageGerman
}

func (l Language) Index() int {
	return int(l)
}

func (l Language) Code() uint16 {
	return uint16(l) + 1
}

// LanguageFromCode maps a wire language code back to its index.
func LanguageFromCode(code uint16) (Language, bool) {
	if code < 1 || code > 3 {
		return 0, false
	}
	return Language(code - 1), true
}

// Tag is the short name used in config keys and logs.
func (l Language) Tag() string {
	switch l {
	case LanguageEnglish:
		return "eng"
	case LanguageMaori:
		return "mao"
	case LanguageGerman:
		return "ger"
	default:
		return "unknown"
	}
}

func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageMaori:
		return "Te Reo Māori"
	case LanguageGerman:
		return "German"
	default:
		return "unknown"
	}
}
