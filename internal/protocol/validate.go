package protocol

import "unicode/utf8"

// ValidateRequest checks an inbound request datagram and returns its fields.
// Checks run in wire order; the first failure wins.
func ValidateRequest(packet []byte) (Request, error) {
	if len(packet) != RequestSize {
		return Request{}, invalid("length", len(packet), ErrInvalidLength)
	}
	req, err := DecodeRequest(packet)
	if err != nil {
		return Request{}, err
	}
	if req.Magic != Magic {
		return Request{}, invalid("magic", int(req.Magic), ErrInvalidMagic)
	}
	if req.PacketType != PacketTypeRequest {
		return Request{}, invalid("packet_type", int(req.PacketType), ErrInvalidPacketType)
	}
	if !req.RequestType.Valid() {
		return Request{}, invalid("request_type", int(req.RequestType), ErrInvalidRequestType)
	}
	return req, nil
}

// ValidateResponse checks a response datagram and returns its text payload.
func ValidateResponse(packet []byte) ([]byte, error) {
	if len(packet) < ResponseHeaderSize {
		return nil, invalid("length", len(packet), ErrTruncated)
	}
	resp, err := DecodeResponse(packet)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return resp.Text, nil
}

// Validate applies the response field checks in wire order.
// Day is not checked against the month, so 30 February passes.
func (r Response) Validate() error {
	if r.Magic != Magic {
		return invalid("magic", int(r.Magic), ErrInvalidMagic)
	}
	if r.PacketType != PacketTypeResponse {
		return invalid("packet_type", int(r.PacketType), ErrInvalidPacketType)
	}
	if _, ok := LanguageFromCode(r.LanguageCode); !ok {
		return invalid("language", int(r.LanguageCode), ErrInvalidLanguage)
	}
	if r.Year >= YearLimit {
		return invalid("year", int(r.Year), ErrInvalidYear)
	}
	if r.Month < 1 || r.Month > 12 {
		return invalid("month", int(r.Month), ErrInvalidMonth)
	}
	if r.Day < 1 || r.Day > 31 {
		return invalid("day", int(r.Day), ErrInvalidDay)
	}
	if r.Hour > 23 {
		return invalid("hour", int(r.Hour), ErrInvalidHour)
	}
	if r.Minute > 59 {
		return invalid("minute", int(r.Minute), ErrInvalidMinute)
	}
	if int(r.Length) != len(r.Text) {
		return invalid("length", int(r.Length), ErrLengthMismatch)
	}
	if !utf8.Valid(r.Text) {
		return invalid("text", len(r.Text), ErrInvalidText)
	}
	return nil
}

// Language returns the decoded language, if the wire code is known.
func (r Response) Language() (Language, bool) {
	return LanguageFromCode(r.LanguageCode)
}
