package service

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"newmeclass_backend/internals/features/certificates/user_certificates/model"
	"newmeclass_backend/internals/features/tests/analysis"
	"newmeclass_backend/internals/helpers/dbtime"
)

const (
	pageW = 297.0
	pageH = 210.0
)

// Renderer menggambar sertifikat & PDF hasil tes.
// AssetPath memetakan URL aset template ke file lokal ("" = lewati gambar).
type Renderer struct {
	AssetPath     func(publicURL string) string
	VerifyBaseURL string
}

func (r Renderer) VerifyURL(number string) string {
	return strings.TrimRight(r.VerifyBaseURL, "/") + "/certificates/verify/" + number
}

type rgb struct{ r, g, b int }

// parseHex: "#RRGGBB" → rgb, fallback kalau format salah.
func parseHex(s string, fallback rgb) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// image: false kalau aset tidak ada / gagal digambar.
func (r Renderer) image(pdf *gofpdf.Fpdf, url string, x, y, w, h float64) bool {
	if url == "" || r.AssetPath == nil {
		return false
	}
	path := r.AssetPath(url)
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	pdf.ImageOptions(path, x, y, w, h, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	if pdf.Err() {
		log.Printf("[WARN] ⚠️ Gagal gambar aset sertifikat %s: %v", path, pdf.Error())
		pdf.ClearError()
		return false
	}
	return true
}

func centered(pdf *gofpdf.Fpdf, y, h float64, txt string) {
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW, h, txt, "", 0, "C", false, 0, "")
}

/* =========================================================
   SERTIFIKAT (landscape A4)
========================================================= */

func (r Renderer) RenderCertificate(w io.Writer, cert model.UserCertificateModel, tmpl model.CertificateTemplateModel) error {
	accent := parseHex(tmpl.AccentColor, rgb{255, 215, 0})
	text := parseHex(tmpl.TextColor, rgb{0, 0, 0})

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Sertifikat "+cert.UserCertNumber, true)
	pdf.SetCreator("NEWME CLASS", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if !r.image(pdf, tmpl.BackgroundURL, 0, 0, pageW, pageH) {
		pdf.SetFillColor(250, 250, 242)
		pdf.Rect(0, 0, pageW, pageH, "F")
		pdf.SetDrawColor(accent.r, accent.g, accent.b)
		pdf.SetLineWidth(1)
		pdf.Rect(10, 10, pageW-20, pageH-20, "D")
		pdf.SetLineWidth(0.3)
		pdf.Rect(14, 14, pageW-28, pageH-28, "D")
	}
	r.image(pdf, tmpl.LogoURL, pageW/2-14, 18, 28, 0)

	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.SetFont("Helvetica", "B", 40)
	centered(pdf, 48, 16, tr(tmpl.TitleText))

	pdf.SetTextColor(text.r, text.g, text.b)
	pdf.SetFont("Helvetica", "", 16)
	centered(pdf, 68, 8, tr(tmpl.SubtitleText))

	name := tr(cert.UserCertRecipientName)
	pdf.SetFont("Helvetica", "B", 30)
	centered(pdf, 80, 14, name)
	nameW := pdf.GetStringWidth(name)
	pdf.SetDrawColor(accent.r, accent.g, accent.b)
	pdf.SetLineWidth(0.7)
	pdf.Line(pageW/2-nameW/2-8, 96, pageW/2+nameW/2+8, 96)

	pdf.SetFont("Helvetica", "", 14)
	centered(pdf, 102, 8, tr(tmpl.CompletionText))
	pdf.SetFont("Helvetica", "B", 20)
	centered(pdf, 112, 10, tr(cert.UserCertCourseName))
	if cert.UserCertDominantLabel != "" {
		pdf.SetFont("Helvetica", "I", 12)
		centered(pdf, 123, 6, tr("Tipe dominan: "+strings.ToUpper(cert.UserCertDominantLabel)))
	}
	pdf.SetFont("Helvetica", "", 12)
	centered(pdf, 131, 6, tr("Pada tanggal: "+completionDate(cert)))

	r.image(pdf, tmpl.SignatureURL, pageW/2-20, 142, 40, 0)
	pdf.SetDrawColor(text.r, text.g, text.b)
	pdf.SetLineWidth(0.3)
	pdf.Line(pageW/2-30, 166, pageW/2+30, 166)
	pdf.SetFont("Helvetica", "B", 12)
	centered(pdf, 168, 6, tr(tmpl.SignerName))
	pdf.SetFont("Helvetica", "", 11)
	centered(pdf, 174, 5, tr(tmpl.SignerTitle))

	pdf.SetTextColor(128, 128, 128)
	pdf.SetFont("Helvetica", "", 10)
	centered(pdf, 186, 5, tr("No. Sertifikat: "+cert.UserCertNumber))

	if err := r.qr(pdf, cert.UserCertNumber, pageW-50, pageH-55, 30); err != nil {
		return err
	}
	return pdf.Output(w)
}

func completionDate(cert model.UserCertificateModel) string {
	if t, err := dbtime.ParseDate(cert.UserCertCompletionDate); err == nil {
		return dbtime.FormatDateID(t)
	}
	if cert.UserCertCompletionDate != "" {
		return cert.UserCertCompletionDate
	}
	return dbtime.FormatDateID(cert.UserCertIssuedAt)
}

func (r Renderer) qr(pdf *gofpdf.Fpdf, number string, x, y, size float64) error {
	link := r.VerifyURL(number)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("gagal membuat QR: %w", err)
	}
	name := "qr-" + number
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opt, 0, link)
	return pdf.Error()
}

/* =========================================================
   PDF HASIL ANALISIS (portrait A4)
========================================================= */

type ResultDoc struct {
	UserName string
	Tier     string
	Result   analysis.Classification
	TakenAt  string
}

func (r Renderer) RenderResult(w io.Writer, doc ResultDoc, tmpl model.CertificateTemplateModel) error {
	accent := parseHex(tmpl.AccentColor, rgb{217, 166, 33})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hasil Analisis "+doc.UserName, true)
	pdf.SetCreator("NEWME CLASS", true)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.Rect(0, 0, 210, 10, "F")
	r.image(pdf, tmpl.LogoURL, 18, 14, 22, 0)

	pdf.SetY(16)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, "SERTIFIKAT", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("ANALISA KEPRIBADIAN & JATIDIRI"), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	res := doc.Result
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(doc.UserName), "", 1, "C", false, 0, "")
	if res.DominantType != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr("- "+res.DominantType+" -"), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Tes "+doc.Tier+" · "+doc.TakenAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pair := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}
	pair("Kepribadian:", res.PersonalityType)
	pair("Simbol Karakter:", res.DominantElement)

	if len(res.Scores) > 0 {
		section(pdf, tr, "SKOR DIMENSI")
		pdf.SetFont("Helvetica", "", 10)
		for _, s := range res.Scores {
			pdf.CellFormat(60, 6, tr(strings.ToUpper(s.Dimension)), "", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, strconv.Itoa(s.Total), "", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, strconv.FormatFloat(s.Percentage, 'f', 1, 64)+" %", "", 1, "R", false, 0, "")
		}
	}

	if res.Summary != "" {
		section(pdf, tr, "RINGKASAN")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(res.Summary), "", "L", false)
	}
	bullets(pdf, tr, "KEKUATAN", res.Strengths)
	bullets(pdf, tr, "AREA PENGEMBANGAN", res.AreasToImprove)
	bullets(pdf, tr, "REKOMENDASI KARIR", res.CareerRecommendations)
	bullets(pdf, tr, "TIPS", res.Tips)

	if k := res.KekuatanJatidiri; k != nil {
		section(pdf, tr, "KEKUATAN JATIDIRI")
		pdf.SetFont("Helvetica", "", 10)
		for i, kv := range [][2]string{
			{"Kehidupan", k.Kehidupan}, {"Kesehatan", k.Kesehatan}, {"Kontribusi", k.Kontribusi},
			{"Kekhasan", k.Kekhasan}, {"Kharisma", k.Kharisma},
		} {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("%d- %s: %s", i+1, kv[0], kv[1])), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(tmpl.SignerName), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(tmpl.SignerTitle), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func bullets(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []string) {
	if len(items) == 0 {
		return
	}
	section(pdf, tr, title)
	pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		pdf.MultiCell(0, 5, tr("- "+it), "", "L", false)
	}
}
