package geo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

const (
	wkbPoint = 1

	ewkbZFlag    = 0x80000000
	ewkbMFlag    = 0x40000000
	ewkbSRIDFlag = 0x20000000
)

// DecodePointHex decodes a hex-encoded (E)WKB point as stored by PostGIS
// and returns its latitude and longitude. Z/M ordinates and the embedded
// SRID are skipped; anything that is not a point is an error.
func DecodePointHex(raw string) (lat, lon float64, err error) {
	data, err := hex.DecodeString(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("decode hex: %w", err)
	}
	if len(data) < 5 {
		return 0, 0, fmt.Errorf("wkb too short: %d bytes", len(data))
	}

	var order binary.ByteOrder
	switch data[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return 0, 0, fmt.Errorf("invalid byte order marker %#x", data[0])
	}

	geomType := order.Uint32(data[1:5])
	baseType := geomType &^ uint32(ewkbZFlag|ewkbMFlag|ewkbSRIDFlag)
	if baseType != wkbPoint {
		return 0, 0, fmt.Errorf("geometry type %d is not a point", baseType)
	}

	offset := 5
	if geomType&ewkbSRIDFlag != 0 {
		offset += 4
	}

	ordinates := 2
	if geomType&ewkbZFlag != 0 {
		ordinates++
	}
	if geomType&ewkbMFlag != 0 {
		ordinates++
	}
	if len(data) < offset+ordinates*8 {
		return 0, 0, fmt.Errorf("wkb truncated: %d bytes", len(data))
	}

	x := math.Float64frombits(order.Uint64(data[offset : offset+8]))
	y := math.Float64frombits(order.Uint64(data[offset+8 : offset+16]))

	// PostGIS stores points as (longitude, latitude).
	return y, x, nil
}
