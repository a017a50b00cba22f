// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"sync"
	"time"
)

// Semua tanggal yang tampil ke user (sertifikat, PDF hasil) pakai WIB.
const DefaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location: Asia/Jakarta, fallback UTC+7 tetap kalau tzdata tidak tersedia.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			l = time.FixedZone("WIB", 7*60*60)
		}
		loc = l
	})
	return loc
}

// ToLocal mengonversi waktu DB (UTC) ke WIB. Zero time dikembalikan apa adanya.
func ToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

func NowLocal() time.Time {
	return time.Now().In(Location())
}

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDateID: "15 Oktober 2026"
func FormatDateID(t time.Time) string {
	t = ToLocal(t)
	return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()-1], t.Year())
}

// ParseDate: "2006-01-02" dibaca sebagai tanggal WIB.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location())
}
