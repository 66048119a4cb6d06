package texel

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/texel/utils"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// SupportedExtensions lists the file extensions accepted as sources.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// FormatFromExt maps a file extension (with or without the leading dot) to an image format.
func FormatFromExt(ext string) (imaging.Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "", "jpg", "jpeg":
		return imaging.JPEG, nil
	case "png":
		return imaging.PNG, nil
	case "bmp":
		return imaging.BMP, nil
	case "gif":
		return imaging.GIF, nil
	case "tif", "tiff":
		return imaging.TIFF, nil
	}
	return -1, ErrUnsupportedFormat
}

// Decode reads an image from r. EXIF orientation tags of JPEG sources are applied.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &Error{Kind: DecodeFailure, Msg: "could not decode the image", Err: errors.WithStack(err)}
	}
	return img, nil
}

// DecodeFile opens and decodes the image file found at path.
func DecodeFile(path string) (image.Image, error) {
	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, &Error{Kind: DecodeFailure, Msg: "could not open the image file", Err: errors.Wrap(err, path)}
	}
	// TIFF is not sniffed and reports as a generic binary stream.
	if !strings.Contains(ctype, "image") && ctype != "application/octet-stream" {
		return nil, &Error{Kind: DecodeFailure, Msg: "the source should be an image file", Err: errors.Errorf("%s has content type %s", path, ctype)}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: DecodeFailure, Msg: "could not open the image file", Err: errors.WithStack(err)}
	}
	defer file.Close()

	return Decode(file)
}

// Encode writes the image to w in the requested format.
// JPEG images are encoded at the maximum quality.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	var err error
	switch format {
	case imaging.JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case imaging.PNG:
		err = png.Encode(w, img)
	case imaging.BMP:
		err = bmp.Encode(w, img)
	case imaging.GIF, imaging.TIFF:
		err = imaging.Encode(w, img, format)
	default:
		return ErrUnsupportedFormat
	}
	if err != nil {
		return &Error{Kind: EncodeFailure, Msg: "could not encode the image", Err: errors.Wrap(err, format.String())}
	}
	return nil
}

// EncodeFile encodes the image into a new file, choosing the format from the path's extension.
func EncodeFile(path string, img image.Image) (err error) {
	format, err := FormatFromExt(filepath.Ext(path))
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return &Error{Kind: EncodeFailure, Msg: "could not create the destination file", Err: errors.WithStack(err)}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &Error{Kind: EncodeFailure, Msg: "could not close the destination file", Err: errors.WithStack(cerr)}
		}
	}()

	return Encode(file, img, format)
}
