package gallery

import (
	"os"
	"strconv"
	"strings"
	"time"

	"photo-gallery/internal/logging"
	"photo-gallery/internal/metrics"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// CaptureDate reads the embedded EXIF capture date from the image at path.
// The second return value is false when the image has no EXIF block, the
// block has no date tag, or the format does not carry EXIF at all (some
// WebP files). Absence is a normal outcome, not a fault; corrupt EXIF data
// is logged and treated the same way.
func CaptureDate(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		logging.Debug("exif: open %s: %v", path, err)
		metrics.ExifReadsTotal.WithLabelValues("absent").Inc()
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		logging.Debug("exif: decode %s: %v", path, err)
		metrics.ExifReadsTotal.WithLabelValues("absent").Inc()
		return time.Time{}, false
	}

	t, err := x.DateTime()
	if err != nil {
		logging.Debug("exif: no usable date in %s: %v", path, err)
		metrics.ExifReadsTotal.WithLabelValues("malformed").Inc()
		return time.Time{}, false
	}

	metrics.ExifReadsTotal.WithLabelValues("date").Inc()
	return t, true
}

// CameraInfo holds the human-readable capture settings of a photo.
// Fields are empty when the corresponding tag is absent.
type CameraInfo struct {
	Camera      string `json:"camera,omitempty"`
	Lens        string `json:"lens,omitempty"`
	FocalLength string `json:"focalLength,omitempty"`
	Aperture    string `json:"aperture,omitempty"`
	Exposure    string `json:"exposure,omitempty"`
	ISO         string `json:"iso,omitempty"`
}

// ReadCameraInfo extracts camera and exposure settings from the image at
// path. It never fails: missing or unreadable EXIF yields the zero value.
func ReadCameraInfo(path string) CameraInfo {
	f, err := os.Open(path)
	if err != nil {
		return CameraInfo{}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return CameraInfo{}
	}

	info := CameraInfo{
		Camera:   cameraName(stringField(x, exif.Make), stringField(x, exif.Model)),
		Lens:     stringField(x, exif.LensModel),
		Aperture: ratField(x, exif.FNumber),
		Exposure: exposureField(x),
	}
	if fl := ratField(x, exif.FocalLength); fl != "" {
		info.FocalLength = fl + " mm"
	}
	if iso := intField(x, exif.ISOSpeedRatings); iso != "" {
		info.ISO = iso
	}
	return info
}

// Summary renders the camera info as a single caption line, e.g.
// "FUJIFILM X-T5 · XF18mmF1.4 R LM WR · 18 mm  ƒ/5.6  1/280s  ISO 125".
func (i CameraInfo) Summary() string {
	var parts []string
	if i.Camera != "" {
		parts = append(parts, i.Camera)
	}
	if i.Lens != "" {
		parts = append(parts, i.Lens)
	}

	var settings []string
	if i.FocalLength != "" {
		settings = append(settings, i.FocalLength)
	}
	if i.Aperture != "" {
		settings = append(settings, "ƒ/"+i.Aperture)
	}
	if i.Exposure != "" {
		settings = append(settings, i.Exposure+"s")
	}
	if i.ISO != "" {
		settings = append(settings, "ISO "+i.ISO)
	}
	if len(settings) > 0 {
		parts = append(parts, strings.Join(settings, "  "))
	}

	return strings.Join(parts, " · ")
}

// cameraName combines make and model, avoiding duplication when the model
// already starts with the make (as FUJIFILM and some Canon bodies do).
func cameraName(make, model string) string {
	switch {
	case make == "":
		return model
	case model == "":
		return make
	case strings.HasPrefix(model, make):
		return model
	default:
		return make + " " + model
	}
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func intField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	v, err := tag.Int(0)
	if err != nil {
		return ""
	}
	return strconv.Itoa(v)
}

// ratField formats a rational tag with the shortest exact decimal
// representation, e.g. 28/5 becomes "5.6" and 18/1 becomes "18".
func ratField(x *exif.Exif, name exif.FieldName) string {
	num, den, ok := ratValue(x, name)
	if !ok || den == 0 {
		return ""
	}
	if num%den == 0 {
		return strconv.FormatInt(num/den, 10)
	}
	return strconv.FormatFloat(float64(num)/float64(den), 'f', -1, 64)
}

// exposureField keeps shutter speeds in the conventional fractional form
// ("1/280") rather than a decimal.
func exposureField(x *exif.Exif) string {
	num, den, ok := ratValue(x, exif.ExposureTime)
	if !ok || den == 0 {
		return ""
	}
	if num < den {
		return strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
	}
	if num%den == 0 {
		return strconv.FormatInt(num/den, 10)
	}
	return strconv.FormatFloat(float64(num)/float64(den), 'f', -1, 64)
}

func ratValue(x *exif.Exif, name exif.FieldName) (num, den int64, ok bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.RatVal {
		return 0, 0, false
	}
	num, den, err = tag.Rat2(0)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}
