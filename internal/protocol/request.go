package protocol

import "encoding/binary"

// Request is the fixed 6-byte client request.
type Request struct {
	Magic       uint16
	PacketType  uint16
	RequestType RequestType
}

// NewRequest builds a well-formed request for kind.
func NewRequest(kind RequestType) Request {
	return Request{Magic: Magic, PacketType: PacketTypeRequest, RequestType: kind}
}

// EncodeRequest serializes a request for kind.
func EncodeRequest(kind RequestType) []byte {
	return NewRequest(kind).MarshalBinary()
}

func (r Request) MarshalBinary() []byte {
	buf := make([]byte, RequestSize)
	binary.BigEndian.PutUint16(buf[0:2], r.Magic)
	binary.BigEndian.PutUint16(buf[2:4], r.PacketType)
	binary.BigEndian.PutUint16(buf[4:6], uint16(r.RequestType))
	return buf
}

// DecodeRequest parses a request without checking field values.
func DecodeRequest(buf []byte) (Request, error) {
	if len(buf) != RequestSize {
		return Request{}, ErrInvalidLength
	}
	return Request{
		Magic:       binary.BigEndian.Uint16(buf[0:2]),
		PacketType:  binary.BigEndian.Uint16(buf[2:4]),
		RequestType: RequestType(binary.BigEndian.Uint16(buf[4:6])),
	}, nil
}
