package vlog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
)

// Record type bytes.
const (
	typeTimeReference  = 0x01
	typeIdentification = 0x04
	typeDetectorChange = 0x06
	typeSignalChange   = 0x0E
)

// identificationVersion is the fixed VLog version field of the
// identification record.
const identificationVersion = "030000"

// nameSlots is the fixed width of the controller name field in UTF-16
// code units. Shorter names are padded with spaces, longer ones cut off.
const nameSlots = 20

// timeReference renders a type 01 record anchoring subsequent delta
// times to start + ms. The date/time fields are rendered as decimal
// digits so the hex record stays human-readable: 2021 appears as "2021".
func timeReference(start time.Time, ms uint64) string {
	ref := start.Add(time.Duration(ms) * time.Millisecond)
	return fmt.Sprintf("%02X%04d%02d%02d%02d%02d%02d%d0",
		typeTimeReference,
		ref.Year(), int(ref.Month()), ref.Day(),
		ref.Hour(), ref.Minute(), ref.Second(),
		ref.Nanosecond()/100_000_000)
}

// identification renders a type 04 record carrying the controller name
// as UTF-16 code units, space-padded to exactly nameSlots units.
func identification(name string) string {
	units := utf16.Encode([]rune(name))
	if len(units) > nameSlots {
		units = units[:nameSlots]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%02X%s", typeIdentification, identificationVersion)
	for _, u := range units {
		fmt.Fprintf(&b, "%02X", u)
	}
	for i := len(units); i < nameSlots; i++ {
		b.WriteString("20")
	}
	return b.String()
}

// wireEntry is one resolved (wire ID, wire state) pair of a change record.
type wireEntry struct {
	ID   uint8
	Code uint8
}

// changeRecord renders a type 06/0E record: type byte, 3-digit delta time
// in deciseconds, 1-digit entry count, then ID/state pairs.
func changeRecord(typeByte uint8, deltaDS uint64, entries []wireEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02X%03X%X", typeByte, deltaDS, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "%02X%02X", e.ID, e.Code)
	}
	return b.String()
}
