package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxUploadSize = int64(5 * 1024 * 1024)
	webpMaxSide   = 1600
	webpQuality   = 80
)

// LocalStorage menyimpan file upload di disk dan mengembalikan URL publik.
type LocalStorage struct {
	Root    string // mis. "uploads"
	BaseURL string // mis. "https://api.newmeclass.id"
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

// SaveImageAsWebP: decode (jpg/png/webp) → resize max 1600px → encode WebP.
func (s *LocalStorage) SaveImageAsWebP(folder string, fh *multipart.FileHeader) (string, error) {
	raw, err := readUpload(fh)
	if err != nil {
		return "", err
	}

	img, err := decodeImage(raw)
	if err != nil {
		return "", fmt.Errorf("gagal decode gambar: %w", err)
	}
	img = imaging.Fit(img, webpMaxSide, webpMaxSide, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("gagal encode webp: %w", err)
	}

	name := GenerateUniqueFilename(folder, strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))+".webp")
	return s.write(name, buf.Bytes())
}

// SaveImageAsPNG: untuk aset yang nanti digambar ke PDF (gofpdf tidak bisa baca webp).
func (s *LocalStorage) SaveImageAsPNG(folder string, fh *multipart.FileHeader, maxSide int) (string, error) {
	raw, err := readUpload(fh)
	if err != nil {
		return "", err
	}

	img, err := decodeImage(raw)
	if err != nil {
		return "", fmt.Errorf("gagal decode gambar: %w", err)
	}
	if maxSide > 0 {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("gagal encode png: %w", err)
	}

	name := GenerateUniqueFilename(folder, strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))+".png")
	return s.write(name, buf.Bytes())
}

// SaveFile menyimpan file apa adanya (mis. bukti transfer).
func (s *LocalStorage) SaveFile(folder string, fh *multipart.FileHeader) (string, error) {
	raw, err := readUpload(fh)
	if err != nil {
		return "", err
	}
	return s.write(GenerateUniqueFilename(folder, fh.Filename), raw)
}

// Delete menghapus file dari URL publik yang pernah dikembalikan storage ini.
func (s *LocalStorage) Delete(publicURL string) error {
	rel := s.relativePath(publicURL)
	if rel == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Root, rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LocalPath: path di disk untuk URL publik storage ini, "" kalau bukan milik storage.
func (s *LocalStorage) LocalPath(publicURL string) string {
	rel := s.relativePath(publicURL)
	if rel == "" {
		return ""
	}
	return filepath.Join(s.Root, rel)
}

func (s *LocalStorage) relativePath(publicURL string) string {
	prefix := s.BaseURL + "/uploads/"
	if !strings.HasPrefix(publicURL, prefix) {
		return ""
	}
	rel := filepath.Clean(strings.TrimPrefix(publicURL, prefix))
	if strings.HasPrefix(rel, "..") {
		return ""
	}
	return rel
}

func (s *LocalStorage) write(name string, data []byte) (string, error) {
	full := filepath.Join(s.Root, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}
	return s.BaseURL + "/uploads/" + filepath.ToSlash(name), nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, fmt.Errorf("file tidak ditemukan")
	}
	if fh.Size > MaxUploadSize {
		return nil, fmt.Errorf("ukuran file melebihi %dMB", MaxUploadSize/1024/1024)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, io.LimitReader(src, MaxUploadSize+1)); err != nil {
		return nil, fmt.Errorf("gagal membaca file: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.Contains(http.DetectContentType(head), "webp") {
		return webp.Decode(bytes.NewReader(raw))
	}
	return imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
}

// ✅ Buat nama unik
func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(filepath.Base(originalFilename)))
}
