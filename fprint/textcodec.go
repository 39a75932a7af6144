package fprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soundidx/gistfp/internal/utils"
)

// textBaseMinLen is the shortest possible valid text form:
// "(0,0,0," + hex r + "," + hex dom + ",0)".
const textBaseMinLen = 11 + 2*RSize + 2*DomSize

// FormatText renders a Fingerprint in the textual grammar:
// (songlen,bit_rate,num_errors,<hex r>,<hex dom>,c1 c2 ... cn)
func FormatText(f *Fingerprint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d,%d,%d,", f.Songlen, f.BitRate, f.NumErrors)
	for _, b := range f.R {
		fmt.Fprintf(&sb, "%02X", b)
	}
	sb.WriteByte(',')
	for _, b := range f.Dom {
		fmt.Fprintf(&sb, "%02X", b)
	}
	sb.WriteByte(',')
	for i, w := range f.Cprint {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", w)
	}
	sb.WriteByte(')')
	return sb.String()
}

// ParseText parses the textual fingerprint grammar produced by
// FormatText, rejecting malformed input with a KindInvalidRepresentation
// error describing the specific defect (length, field format, block
// width, stray character, or missing terminator).
func ParseText(s string) (*Fingerprint, error) {
	if len(s) < textBaseMinLen {
		return nil, utils.NewError(utils.KindInvalidRepresentation,
			fmt.Sprintf("text fingerprint too short: %d bytes", len(s)))
	}
	if !strings.HasPrefix(s, "(") {
		return nil, utils.NewError(utils.KindInvalidRepresentation, "missing leading '('")
	}
	rest := s[1:]

	songlen, rest, err := takeUint32Field(rest)
	if err != nil {
		return nil, err
	}
	bitRate, rest, err := takeUint32Field(rest)
	if err != nil {
		return nil, err
	}
	numErrors, rest, err := takeUint32Field(rest)
	if err != nil {
		return nil, err
	}

	if len(rest) < 2*RSize+1 {
		return nil, utils.NewError(utils.KindInvalidRepresentation, "truncated r block")
	}
	var r [RSize]byte
	if err := decodeHexBlock(rest[:2*RSize], r[:]); err != nil {
		return nil, err
	}
	rest = rest[2*RSize:]
	if len(rest) == 0 || rest[0] != ',' {
		return nil, utils.NewError(utils.KindInvalidRepresentation, "missing ',' after r block")
	}
	rest = rest[1:]

	if len(rest) < 2*DomSize+1 {
		return nil, utils.NewError(utils.KindInvalidRepresentation, "truncated dom block")
	}
	var dom [DomSize]byte
	if err := decodeHexBlock(rest[:2*DomSize], dom[:]); err != nil {
		return nil, err
	}
	rest = rest[2*DomSize:]
	if len(rest) == 0 || rest[0] != ',' {
		return nil, utils.NewError(utils.KindInvalidRepresentation, "missing ',' after dom block")
	}
	rest = rest[1:]

	cprint, err := parseCprintList(rest)
	if err != nil {
		return nil, err
	}

	fp, err := NewFingerprint(len(cprint))
	if err != nil {
		return nil, err
	}
	fp.Songlen = songlen
	fp.BitRate = bitRate
	fp.NumErrors = numErrors
	fp.R = r
	fp.Dom = dom
	copy(fp.Cprint, cprint)
	return fp, nil
}

func takeUint32Field(s string) (uint32, string, error) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return 0, "", utils.NewError(utils.KindInvalidRepresentation, "missing field separator")
	}
	v, err := strconv.ParseUint(s[:i], 10, 32)
	if err != nil {
		return 0, "", utils.WrapError(utils.KindInvalidRepresentation, "invalid numeric field", err)
	}
	return uint32(v), s[i+1:], nil
}

func decodeHexBlock(hexStr string, out []byte) error {
	if len(hexStr) != 2*len(out) {
		return utils.NewError(utils.KindInvalidRepresentation, "invalid hex block width")
	}
	for i := range out {
		v, err := strconv.ParseUint(hexStr[2*i:2*i+2], 16, 8)
		if err != nil {
			return utils.WrapError(utils.KindInvalidRepresentation, "invalid hex digit", err)
		}
		out[i] = byte(v)
	}
	return nil
}

// parseCprintList parses a space-separated list of int32 literals
// terminated by ')', mirroring the original's single-pass scanner:
// each digit run may carry a leading '-', runs wider than 12
// characters are rejected, and any character outside [0-9 -)] is a
// hard error identifying its position.
func parseCprintList(s string) ([]int32, error) {
	var out []int32
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == ')':
			if cur.Len() == 0 {
				return nil, utils.NewError(utils.KindInvalidRepresentation,
					fmt.Sprintf("empty integer at position %d", i))
			}
			v, err := strconv.ParseInt(cur.String(), 10, 32)
			if err != nil {
				return nil, utils.WrapError(utils.KindInvalidRepresentation, "invalid cprint integer", err)
			}
			out = append(out, int32(v))
			cur.Reset()
			if c == ')' {
				if i != len(s)-1 {
					return nil, utils.NewError(utils.KindInvalidRepresentation, "trailing characters after terminator")
				}
				if err := utils.ValidateCprintLen(len(out)); err != nil {
					return nil, utils.WrapError(utils.KindInvalidRepresentation, "too many cprint integers", err)
				}
				return out, nil
			}
		case (c >= '0' && c <= '9') || (cur.Len() == 0 && c == '-'):
			if cur.Len() >= 12 {
				return nil, utils.NewError(utils.KindInvalidRepresentation,
					fmt.Sprintf("integer ending at position %d is too wide", i))
			}
			cur.WriteByte(c)
		default:
			return nil, utils.NewError(utils.KindInvalidRepresentation,
				fmt.Sprintf("invalid character %q at position %d", c, i))
		}
	}
	return nil, utils.NewError(utils.KindInvalidRepresentation, "missing terminating ')'")
}
