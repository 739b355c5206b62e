package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"vesselq/internal/core/track"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/store"
)

// MarineCadastre column names; matching ignores case
const (
	colMMSI     = "mmsi"
	colTime     = "basedatetime"
	colLat      = "lat"
	colLon      = "lon"
	colSOG      = "sog"
	colCOG      = "cog"
	colHeading  = "heading"
	colName     = "vesselname"
	colIMO      = "imo"
	colCallSign = "callsign"
	colType     = "vesseltype"
)

var required = []string{colMMSI, colTime, colLat, colLon}

// header maps column names to indexes
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, perr.InvalidArgf("empty csv")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read csv header")
	}
	h := header{}
	for i, c := range row {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))] = i
	}
	for _, c := range required {
		if _, ok := h[c]; !ok {
			return nil, perr.WithField(perr.InvalidArgf("csv lacks column %s", c), c)
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) float(row []string, col string) (float64, error) {
	s := h.get(row, col)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Record converts one csv row. Blank optional numbers read as zero
func (h header) Record(row []string) (track.Position, error) {
	var (
		p   track.Position
		err error
	)
	if p.MMSI, err = strconv.ParseInt(h.get(row, colMMSI), 10, 64); err != nil {
		return p, perr.WithField(perr.InvalidArgf("bad mmsi %q", h.get(row, colMMSI)), colMMSI)
	}
	if p.Timestamp, err = store.ParseTime(h.get(row, colTime)); err != nil {
		return p, perr.WithField(perr.InvalidArgf("bad time %q", h.get(row, colTime)), colTime)
	}
	floats := []struct {
		col string
		dst *float64
	}{
		{colLat, &p.Lat}, {colLon, &p.Lon}, {colSOG, &p.SOG}, {colCOG, &p.COG}, {colHeading, &p.Heading},
	}
	for _, f := range floats {
		if *f.dst, err = h.float(row, f.col); err != nil {
			return p, perr.WithField(perr.InvalidArgf("bad %s %q", f.col, h.get(row, f.col)), f.col)
		}
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return p, perr.WithField(perr.InvalidArgf("position %v,%v out of range", p.Lat, p.Lon), colLat)
	}
	vt, err := h.float(row, colType)
	if err != nil {
		return p, perr.WithField(perr.InvalidArgf("bad vessel type %q", h.get(row, colType)), colType)
	}
	p.VesselType = int(vt)
	p.Name = h.get(row, colName)
	p.IMO = h.get(row, colIMO)
	p.CallSign = h.get(row, colCallSign)
	return p, nil
}

// newReader returns a csv reader tolerant of ragged rows
func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	return cr
}
