package fprint

import (
	"encoding/binary"
	"fmt"

	"github.com/soundidx/gistfp/internal/utils"
)

// fixedHeaderSize covers cprint_len, songlen/min_songlen, bit_rate,
// num_errors/max_songlen, r, and dom — every field ahead of the
// variable-length cprint tail.
const fixedHeaderSize = 4 + 4 + 4 + 4 + RSize + DomSize

// MarshalBinary encodes the fingerprint in the host-native varlena
// layout this module was distilled from: a 4-byte size header holding
// the total length of the buffer, itself included, followed by the
// struct fields in their original order (cprint_len, songlen,
// bit_rate, num_errors, r, dom, cprint...), using the host's native
// byte order rather than a fixed wire endianness since this is an
// in-memory representation, not a network protocol.
func (f *Fingerprint) MarshalBinary() ([]byte, error) {
	if err := utils.ValidateCprintLen(len(f.Cprint)); err != nil {
		return nil, err
	}
	cpBytes, err := utils.SafeAllocSize(len(f.Cprint), 4)
	if err != nil {
		return nil, err
	}
	payload := fixedHeaderSize + cpBytes
	buf := make([]byte, 4+payload)
	binary.NativeEndian.PutUint32(buf[0:4], uint32(4+payload))

	off := 4
	binary.NativeEndian.PutUint32(buf[off:], uint32(len(f.Cprint)))
	off += 4
	binary.NativeEndian.PutUint32(buf[off:], f.Songlen)
	off += 4
	binary.NativeEndian.PutUint32(buf[off:], f.BitRate)
	off += 4
	binary.NativeEndian.PutUint32(buf[off:], f.NumErrors)
	off += 4
	off += copy(buf[off:], f.R[:])
	off += copy(buf[off:], f.Dom[:])
	for _, w := range f.Cprint {
		binary.NativeEndian.PutUint32(buf[off:], uint32(w))
		off += 4
	}
	return buf, nil
}

// UnmarshalBinary decodes a buffer produced by MarshalBinary.
func (f *Fingerprint) UnmarshalBinary(buf []byte) error {
	if len(buf) < 4 {
		return utils.NewError(utils.KindInvalidStoredValue, "buffer shorter than size header")
	}
	payload := binary.NativeEndian.Uint32(buf[0:4])
	if len(buf) != int(payload) {
		return utils.NewError(utils.KindInvalidStoredValue,
			fmt.Sprintf("size header %d does not match buffer length %d", payload, len(buf)))
	}
	body := buf[4:]
	if len(body) < fixedHeaderSize {
		return utils.NewError(utils.KindInvalidStoredValue, "buffer shorter than fixed header")
	}
	cprintLen := int(binary.NativeEndian.Uint32(body[0:4]))
	if err := utils.ValidateCprintLen(cprintLen); err != nil {
		return err
	}
	cpBytes, err := utils.SafeAllocSize(cprintLen, 4)
	if err != nil {
		return err
	}
	if len(body) != fixedHeaderSize+cpBytes {
		return utils.NewError(utils.KindInvalidStoredValue, "cprint_len does not match buffer length")
	}

	off := 4
	f.Songlen = binary.NativeEndian.Uint32(body[off:])
	off += 4
	f.BitRate = binary.NativeEndian.Uint32(body[off:])
	off += 4
	f.NumErrors = binary.NativeEndian.Uint32(body[off:])
	off += 4
	off += copy(f.R[:], body[off:])
	off += copy(f.Dom[:], body[off:])
	f.Cprint = make([]int32, cprintLen)
	for i := range f.Cprint {
		f.Cprint[i] = int32(binary.NativeEndian.Uint32(body[off:]))
		off += 4
	}
	return nil
}

// MarshalBinary encodes the union in its native layout: cprint_len,
// min_songlen, bit_rate, max_songlen, r, dom, cprint... — bit_rate
// stays sandwiched between the two songlen bounds, matching the
// original struct's field order.
func (u *Union) MarshalBinary() ([]byte, error) {
	if err := utils.ValidateCprintLen(len(u.Cprint)); err != nil {
		return nil, err
	}
	cpBytes, err := utils.SafeAllocSize(len(u.Cprint), 4)
	if err != nil {
		return nil, err
	}
	payload := fixedHeaderSize + cpBytes
	buf := make([]byte, 4+payload)
	binary.NativeEndian.PutUint32(buf[0:4], uint32(4+payload))

	off := 4
	binary.NativeEndian.PutUint32(buf[off:], uint32(len(u.Cprint)))
	off += 4
	binary.NativeEndian.PutUint32(buf[off:], u.MinSonglen)
	off += 4
	binary.NativeEndian.PutUint32(buf[off:], u.BitRate)
	off += 4
	binary.NativeEndian.PutUint32(buf[off:], u.MaxSonglen)
	off += 4
	off += copy(buf[off:], u.R[:])
	off += copy(buf[off:], u.Dom[:])
	for _, w := range u.Cprint {
		binary.NativeEndian.PutUint32(buf[off:], uint32(w))
		off += 4
	}
	return buf, nil
}

// UnmarshalBinary decodes a buffer produced by Union.MarshalBinary.
func (u *Union) UnmarshalBinary(buf []byte) error {
	if len(buf) < 4 {
		return utils.NewError(utils.KindInvalidStoredValue, "buffer shorter than size header")
	}
	payload := binary.NativeEndian.Uint32(buf[0:4])
	if len(buf) != int(payload) {
		return utils.NewError(utils.KindInvalidStoredValue,
			fmt.Sprintf("size header %d does not match buffer length %d", payload, len(buf)))
	}
	body := buf[4:]
	if len(body) < fixedHeaderSize {
		return utils.NewError(utils.KindInvalidStoredValue, "buffer shorter than fixed header")
	}
	cprintLen := int(binary.NativeEndian.Uint32(body[0:4]))
	if err := utils.ValidateCprintLen(cprintLen); err != nil {
		return err
	}
	cpBytes, err := utils.SafeAllocSize(cprintLen, 4)
	if err != nil {
		return err
	}
	if len(body) != fixedHeaderSize+cpBytes {
		return utils.NewError(utils.KindInvalidStoredValue, "cprint_len does not match buffer length")
	}

	off := 4
	u.MinSonglen = binary.NativeEndian.Uint32(body[off:])
	off += 4
	u.BitRate = binary.NativeEndian.Uint32(body[off:])
	off += 4
	u.MaxSonglen = binary.NativeEndian.Uint32(body[off:])
	off += 4
	off += copy(u.R[:], body[off:])
	off += copy(u.Dom[:], body[off:])
	u.Cprint = make([]int32, cprintLen)
	for i := range u.Cprint {
		u.Cprint[i] = int32(binary.NativeEndian.Uint32(body[off:]))
		off += 4
	}
	return nil
}
