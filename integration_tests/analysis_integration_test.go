package tests

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"preflight/analyzer"
	"preflight/contracts"
	"preflight/decoder"
	"preflight/report_writer"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func newEngine() *analyzer.Analyzer {
	return analyzer.New(decoder.StdDecoder{}, 2*time.Second)
}

func pngChunk(typ string, data []byte) []byte {
	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, typ...)
	buf = append(buf, data...)
	crc := crc32.ChecksumIEEE(buf[4:])
	return binary.BigEndian.AppendUint32(buf, crc)
}

// physPNG builds a decodable PNG header stream carrying a pHYs chunk.
// DecodeConfig only needs the IHDR, so no pixel data is required.
func physPNG(width, height int, ppu uint32) []byte {
	var ihdr []byte
	ihdr = binary.BigEndian.AppendUint32(ihdr, uint32(width))
	ihdr = binary.BigEndian.AppendUint32(ihdr, uint32(height))
	ihdr = append(ihdr, 8, 6, 0, 0, 0)

	var phys []byte
	phys = binary.BigEndian.AppendUint32(phys, ppu)
	phys = binary.BigEndian.AppendUint32(phys, ppu)
	phys = append(phys, 1)

	out := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	out = append(out, pngChunk("IHDR", ihdr)...)
	out = append(out, pngChunk("pHYs", phys)...)
	out = append(out, pngChunk("IEND", nil)...)
	return out
}

// exifJPEG encodes a real JPEG and splices an APP1 EXIF segment with a
// 300 DPI XResolution tag right after the SOI marker.
func exifJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}

	tiff := []byte{'I', 'I', 0x2A, 0x00}
	tiff = binary.LittleEndian.AppendUint32(tiff, 8)
	tiff = binary.LittleEndian.AppendUint16(tiff, 1)
	tiff = binary.LittleEndian.AppendUint16(tiff, 282)
	tiff = binary.LittleEndian.AppendUint16(tiff, 5)
	tiff = binary.LittleEndian.AppendUint32(tiff, 1)
	tiff = binary.LittleEndian.AppendUint32(tiff, 26)
	tiff = binary.LittleEndian.AppendUint32(tiff, 0)
	tiff = binary.LittleEndian.AppendUint32(tiff, 300)
	tiff = binary.LittleEndian.AppendUint32(tiff, 1)

	payload := append([]byte("Exif\x00\x00"), tiff...)
	app1 := []byte{0xFF, 0xE1}
	app1 = binary.BigEndian.AppendUint16(app1, uint16(len(payload)+2))
	app1 = append(app1, payload...)

	out := []byte{0xFF, 0xD8}
	out = append(out, app1...)
	return append(out, encoded.Bytes()[2:]...)
}

func TestAnalysisPipeline(t *testing.T) {
	eng := newEngine()

	t.Run("PNG with pHYs resolution", func(t *testing.T) {
		data := physPNG(2400, 1800, 11811)

		res := eng.Analyze(context.Background(), data, int64(len(data)), "image/png")

		if res.Metadata.DPI != 300 {
			t.Errorf("DPI = %v, want 300", res.Metadata.DPI)
		}
		if res.Metadata.Width != 2400 || res.Metadata.Height != 1800 {
			t.Errorf("dimensions = %dx%d, want 2400x1800", res.Metadata.Width, res.Metadata.Height)
		}
		if res.Metadata.PhysicalWidthIn != 8 || res.Metadata.PhysicalHeightIn != 6 {
			t.Errorf("physical size = %vx%v in, want 8x6",
				res.Metadata.PhysicalWidthIn, res.Metadata.PhysicalHeightIn)
		}
		if res.QualityScore != 85 {
			t.Errorf("score = %d, want 85", res.QualityScore)
		}
		if !res.IsHighQuality || !res.IsPrintReady {
			t.Errorf("verdict = high %v ready %v, want both true", res.IsHighQuality, res.IsPrintReady)
		}
		if res.SuggestedUse != contracts.UseLargePrint {
			t.Errorf("suggested use = %s, want %s", res.SuggestedUse, contracts.UseLargePrint)
		}
		t.Logf("PNG verdict: score %d, %s", res.QualityScore, res.SuggestedUse)
	})

	t.Run("JPEG with EXIF resolution", func(t *testing.T) {
		data := exifJPEG(t, 1200, 800)

		res := eng.Analyze(context.Background(), data, int64(len(data)), "image/jpeg")

		if res.Metadata.DPI != 300 {
			t.Errorf("DPI = %v, want 300", res.Metadata.DPI)
		}
		if res.Metadata.Width != 1200 || res.Metadata.Height != 800 {
			t.Errorf("dimensions = %dx%d, want 1200x800", res.Metadata.Width, res.Metadata.Height)
		}
		if res.QualityScore != 65 {
			t.Errorf("score = %d, want 65", res.QualityScore)
		}
		if !res.IsPrintReady {
			t.Error("300 DPI JPEG above the readiness threshold reported not print ready")
		}
		if res.SuggestedUse != contracts.UseMediumPrint {
			t.Errorf("suggested use = %s, want %s", res.SuggestedUse, contracts.UseMediumPrint)
		}
	})

	t.Run("garbage bytes degrade instead of failing", func(t *testing.T) {
		data := []byte("this is a text file pretending to be an image")

		res := eng.Analyze(context.Background(), data, int64(len(data)), "image/png")

		if res.Metadata.DPI != 72 {
			t.Errorf("degraded DPI = %v, want 72", res.Metadata.DPI)
		}
		if res.QualityScore != 30 {
			t.Errorf("degraded score = %d, want 30", res.QualityScore)
		}
		if res.SuggestedUse != contracts.UseWebOnly {
			t.Errorf("degraded use = %s, want %s", res.SuggestedUse, contracts.UseWebOnly)
		}
		if res.IsHighQuality || res.IsPrintReady {
			t.Error("degraded result must not be high quality or print ready")
		}
		found := false
		for _, warning := range res.Metadata.Warnings {
			if strings.Contains(warning, "could not be decoded") {
				found = true
			}
		}
		if !found {
			t.Errorf("missing decode warning, got %v", res.Metadata.Warnings)
		}
	})

	t.Run("vector formats bypass raster analysis", func(t *testing.T) {
		data := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect width="1" height="1"/></svg>`)

		res := eng.Analyze(context.Background(), data, int64(len(data)), "image/svg+xml")

		if res.QualityScore != 95 {
			t.Errorf("vector score = %d, want 95", res.QualityScore)
		}
		if res.SuggestedUse != contracts.UseCommercialPrint {
			t.Errorf("vector use = %s, want %s", res.SuggestedUse, contracts.UseCommercialPrint)
		}
		if res.Metadata.Width != 0 || res.Metadata.Height != 0 {
			t.Errorf("vector dimensions = %dx%d, want untouched zeros", res.Metadata.Width, res.Metadata.Height)
		}
	})
}

func TestReportValidatesAsPDF(t *testing.T) {
	eng := newEngine()

	good := physPNG(2400, 1800, 11811)
	bad := []byte("broken upload")

	entries := []report_writer.Entry{
		{Name: "poster.png", Result: eng.Analyze(context.Background(), good, int64(len(good)), "image/png")},
		{Name: "broken.png", Result: eng.Analyze(context.Background(), bad, int64(len(bad)), "image/png")},
	}

	reportPath := filepath.Join(t.TempDir(), "preflight_report.pdf")
	f, err := os.Create(reportPath)
	if err != nil {
		t.Fatalf("creating report file: %v", err)
	}
	if err := report_writer.WriteReport(f, entries); err != nil {
		f.Close()
		t.Fatalf("writing report: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing report file: %v", err)
	}

	config := model.NewDefaultConfiguration()
	config.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(reportPath, config); err != nil {
		t.Errorf("PDF validation failed: %v", err)
	} else {
		t.Log("report passed PDF validation checks")
	}
}
