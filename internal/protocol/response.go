package protocol

import (
	"encoding/binary"
	"time"
)

// Response is the server reply: a 13-byte header followed by Length bytes of text.
type Response struct {
	Magic        uint16
	PacketType   uint16
	LanguageCode uint16
	Year         uint16
	Month        uint8
	Day          uint8
	Hour         uint8
	Minute       uint8
	// Length is the declared text length. EncodeResponse ignores it and
	// writes len(Text).
	Length uint8
	Text   []byte
}

// NewResponse stamps a response for lang with the date and time of now.
func NewResponse(lang Language, now time.Time, text []byte) Response {
	return Response{
		Magic:        Magic,
		PacketType:   PacketTypeResponse,
		LanguageCode: lang.Code(),
		Year:         uint16(now.Year()),
		Month:        uint8(now.Month()),
		Day:          uint8(now.Day()),
		Hour:         uint8(now.Hour()),
		Minute:       uint8(now.Minute()),
		Length:       uint8(len(text)),
		Text:         text,
	}
}

// EncodeResponse writes the header fields big-endian and appends the text.
func EncodeResponse(r Response) ([]byte, error) {
	if len(r.Text) > MaxTextLen {
		return nil, ErrTextTooLong
	}
	buf := make([]byte, ResponseHeaderSize+len(r.Text))
	binary.BigEndian.PutUint16(buf[0:2], r.Magic)
	binary.BigEndian.PutUint16(buf[2:4], r.PacketType)
	binary.BigEndian.PutUint16(buf[4:6], r.LanguageCode)
	binary.BigEndian.PutUint16(buf[6:8], r.Year)
	buf[8] = r.Month
	buf[9] = r.Day
	buf[10] = r.Hour
	buf[11] = r.Minute
	buf[12] = uint8(len(r.Text))
	copy(buf[ResponseHeaderSize:], r.Text)
	return buf, nil
}

// DecodeResponse parses the header and copies the trailing bytes into Text.
// Field ranges are left to Validate.
func DecodeResponse(buf []byte) (Response, error) {
	if len(buf) < ResponseHeaderSize {
		return Response{}, ErrTruncated
	}
	text := make([]byte, len(buf)-ResponseHeaderSize)
	copy(text, buf[ResponseHeaderSize:])
	return Response{
		Magic:        binary.BigEndian.Uint16(buf[0:2]),
		PacketType:   binary.BigEndian.Uint16(buf[2:4]),
		LanguageCode: binary.BigEndian.Uint16(buf[4:6]),
		Year:         binary.BigEndian.Uint16(buf[6:8]),
		Month:        buf[8],
		Day:          buf[9],
		Hour:         buf[10],
		Minute:       buf[11],
		Length:       buf[12],
		Text:         text,
	}, nil
}
