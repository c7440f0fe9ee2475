package link

import (
	"encoding/binary"

	"github.com/sigurn/crc8"
)

// Wire format of a radio frame:
//
//	magic(2) | payload length(2, big endian) | payload | crc8
//
// The checksum covers length and payload.
const (
	magic0    = 'V'
	magic1    = 'L'
	headerLen = 4
)

var crcTable = crc8.MakeTable(crc8.CRC8)

func frame(p []byte) []byte {
	buf := make([]byte, 0, headerLen+len(p)+1)
	buf = append(buf, magic0, magic1)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(p)))
	buf = append(buf, p...)
	return append(buf, crc8.Checksum(buf[2:], crcTable))
}

// parseFrame extracts the first complete frame from buf. It returns the
// payload, the number of bytes consumed and whether the checksum held. A nil
// payload with zero consumed bytes means buf holds no complete frame yet.
// Garbage before the next magic sequence is consumed without a payload.
func parseFrame(buf []byte) (payload []byte, consumed int, err error) {
	// resync: drop everything before the next possible frame start
	for consumed < len(buf) && buf[consumed] != magic0 {
		consumed++
	}
	buf = buf[consumed:]

	if len(buf) >= 2 && buf[1] != magic1 {
		// lone magic byte, skip it
		return nil, consumed + 1, nil
	}
	if len(buf) < headerLen {
		return nil, consumed, nil
	}
	length := int(binary.BigEndian.Uint16(buf[2:4]))
	if length > MaxMessage {
		return nil, consumed + 2, ErrTooLong
	}
	if len(buf) < headerLen+length+1 {
		return nil, consumed, nil
	}
	body := buf[2 : headerLen+length]
	sum := buf[headerLen+length]
	consumed += headerLen + length + 1
	if crc8.Checksum(body, crcTable) != sum {
		return nil, consumed, ErrChecksum
	}
	return body[2:], consumed, nil
}
