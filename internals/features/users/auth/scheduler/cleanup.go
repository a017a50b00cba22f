package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	helpersAuth "newmeclass_backend/internals/helpers/auth"
)

// StartBlacklistCleanupScheduler: hapus token blacklist yang exp-nya sudah lewat TTL.
// Berhenti saat ctx dibatalkan (graceful shutdown).
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	go func() {
		// TTL dari env (default: 7 hari)
		ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			RunBlacklistCleanup(ctx, db, ttlDays)

			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Scheduler token_blacklist berhenti")
				return
			case <-ticker.C:
			}
		}
	}()
}

func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, ttlDays int) int64 {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := helpersAuth.PurgeExpired(ctx, db, deleteBefore)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return n
}
