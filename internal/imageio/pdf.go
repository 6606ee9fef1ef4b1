package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/jung-kurt/gofpdf"
)

// ExportPDF writes img as the only page of a PDF document at path. The page
// is sized to the image at one point per pixel.
func ExportPDF(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("export pdf: no image")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: MaxQuality}); err != nil {
		return fmt.Errorf("export pdf: encode: %w", err)
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	p.RegisterImageOptionsReader("photo", opts, &buf)
	p.ImageOptions("photo", 0, 0, w, h, false, opts, 0, "")
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export pdf %s: %w", path, err)
	}
	return nil
}
