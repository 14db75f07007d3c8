package services

import (
	"context"
	"image"
	"io"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
)

// exifLayout is the EXIF timestamp format. The date part is
// colon-delimited, unlike ISO-8601.
const exifLayout = "2006:01:02 15:04:05"

const (
	minSelfieDimension = 200
	minAspectRatio     = 0.3
	maxAspectRatio     = 3.0
)

type PhotoReason string

const (
	ReasonNoDateMetadata         PhotoReason = "no_date_metadata"
	ReasonDateMismatch           PhotoReason = "date_mismatch"
	ReasonUnreadableMetadata     PhotoReason = "unreadable_metadata"
	ReasonDimensionsUnreasonable PhotoReason = "dimensions_unreasonable"
	ReasonTooSmall               PhotoReason = "too_small"
	ReasonNoFaceDetected         PhotoReason = "no_face_detected"
)

// PhotoCheckOutcome is the verdict of a single check. It is never stored;
// only pass/fail gates whether a workout row gets created.
type PhotoCheckOutcome struct {
	Accepted bool
	Reason   PhotoReason
}

func accept() PhotoCheckOutcome              { return PhotoCheckOutcome{Accepted: true} }
func reject(r PhotoReason) PhotoCheckOutcome { return PhotoCheckOutcome{Reason: r} }

// ExifFields carries the two timestamp tags we care about, already
// extracted so the date comparison stays a pure function.
type ExifFields struct {
	DateTimeOriginal string
	DateTime         string
}

// ExtractExifFields reads the EXIF block from an image. ok is false when
// the image carries no parsable EXIF data at all.
func ExtractExifFields(r io.Reader) (fields ExifFields, ok bool) {
	// goexif can panic on malformed TIFF structures; a broken upload
	// must resolve to a rejection, not take the process down.
	defer func() {
		if rec := recover(); rec != nil {
			fields, ok = ExifFields{}, false
		}
	}()

	x, err := exif.Decode(r)
	if err != nil {
		return ExifFields{}, false
	}
	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if v, err := tag.StringVal(); err == nil {
			fields.DateTimeOriginal = v
		}
	}
	if tag, err := x.Get(exif.DateTime); err == nil {
		if v, err := tag.StringVal(); err == nil {
			fields.DateTime = v
		}
	}
	return fields, true
}

// CheckCaptureDate compares the embedded capture timestamp against the
// expected calendar day, ignoring time of day and timezone. The original
// capture tag wins over the generic last-modified tag when both exist.
func CheckCaptureDate(fields ExifFields, expected time.Time) PhotoCheckOutcome {
	ts := fields.DateTimeOriginal
	if ts == "" {
		ts = fields.DateTime
	}
	if ts == "" {
		return reject(ReasonNoDateMetadata)
	}

	taken, err := time.ParseInLocation(exifLayout, ts, time.Local)
	if err != nil {
		return reject(ReasonUnreadableMetadata)
	}

	if taken.Format("2006-01-02") != expected.Format("2006-01-02") {
		return reject(ReasonDateMismatch)
	}
	return accept()
}

// CheckPhotoDate runs the fail-closed authenticity gate against a file on
// disk: no metadata or a non-matching date rejects the upload.
func CheckPhotoDate(path string, expected time.Time) PhotoCheckOutcome {
	f, err := os.Open(path)
	if err != nil {
		return reject(ReasonUnreadableMetadata)
	}
	defer f.Close()

	fields, ok := ExtractExifFields(f)
	if !ok {
		return reject(ReasonNoDateMetadata)
	}
	return CheckCaptureDate(fields, expected)
}

// FaceDetector is the optional deployment capability behind the selfie
// check. A nil detector means the capability is absent.
type FaceDetector interface {
	CountFaces(ctx context.Context, img []byte) (int, error)
}

// CheckSelfie applies cheap structural heuristics: ambiguous cases pass.
// The heuristic is advisory — the EXIF date check is the real gate — so
// every internal failure here resolves to Accept.
func CheckSelfie(path string, detector FaceDetector) (out PhotoCheckOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = accept()
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return accept()
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return accept()
	}

	if o := CheckDimensions(cfg.Width, cfg.Height); !o.Accepted {
		return o
	}

	if detector == nil {
		return accept()
	}
	img, err := os.ReadFile(path)
	if err != nil {
		return accept()
	}
	count, err := detector.CountFaces(context.Background(), img)
	if err != nil {
		// detector trouble never blocks a legitimate upload
		return accept()
	}
	if count == 0 {
		return reject(ReasonNoFaceDetected)
	}
	return accept()
}

// CheckDimensions rejects obviously-wrong shapes: banner-like aspect
// ratios and thumbnail-sized images.
func CheckDimensions(width, height int) PhotoCheckOutcome {
	ratio := 0.0
	if height != 0 {
		ratio = float64(width) / float64(height)
	}
	if ratio < minAspectRatio || ratio > maxAspectRatio {
		return reject(ReasonDimensionsUnreasonable)
	}
	if width < minSelfieDimension || height < minSelfieDimension {
		return reject(ReasonTooSmall)
	}
	return accept()
}
