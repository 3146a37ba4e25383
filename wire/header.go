package wire

import (
	"encoding/binary"

	"github.com/cloudrobotics/relaycore/errs"
)

// EncodeHeader renders the fixed header that precedes every message's
// content body: [length:4][type][msgID][origin][dest]. totalLen is the
// full wire length of the message, header included.
func EncodeHeader(totalLen int, typ, msgID string, origin, dest CommID) ([]byte, error) {
	if typ == "" || origin == "" || dest == "" {
		return nil, errs.NewSerializationError("message header requires non-empty type, origin and dest")
	}
	b := make([]byte, HeaderLen)
	binary.BigEndian.PutUint32(b[0:4], uint32(totalLen))
	off := 4
	if err := putFixed(b[off:off+TypeLen], typ); err != nil {
		return nil, err
	}
	off += TypeLen
	if err := putFixed(b[off:off+MsgIDLen], msgID); err != nil {
		return nil, err
	}
	off += MsgIDLen
	if err := putFixed(b[off:off+AddrLen], string(origin)); err != nil {
		return nil, err
	}
	off += AddrLen
	if err := putFixed(b[off:off+AddrLen], string(dest)); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeHeader parses the fixed header off the front of b, which must be
// at least HeaderLen bytes.
func DecodeHeader(b []byte) (totalLen int, typ, msgID string, origin, dest CommID, err error) {
	if len(b) < HeaderLen {
		err = errs.NewSerializationError("short header: got %d bytes, want %d", len(b), HeaderLen)
		return
	}
	totalLen = int(binary.BigEndian.Uint32(b[0:4]))
	off := 4
	typ = getFixed(b[off : off+TypeLen])
	off += TypeLen
	msgID = getFixed(b[off : off+MsgIDLen])
	off += MsgIDLen
	origin = CommID(getFixed(b[off : off+AddrLen]))
	off += AddrLen
	dest = CommID(getFixed(b[off : off+AddrLen]))
	if typ == "" || origin == "" || dest == "" {
		err = errs.NewSerializationError("message header has empty type, origin or dest")
	}
	return
}

func putFixed(dst []byte, s string) error {
	if len(s) > len(dst) {
		return errs.NewSerializationError("header field %q exceeds fixed width %d", s, len(dst))
	}
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, s)
	return nil
}

func getFixed(b []byte) string {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return string(b[:i])
}
