package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret      string
	JWTExpiresIn   time.Duration
	PublicBaseURL  string
	FrontendURL    string
	UploadDir      string
	CorsOrigins    []string
	MaxPointsPerQ  int
	DefaultPrice   int64
	ReferralBonus  int64
	LLMAPIKey      string
	LLMModel       string
	LLMEndpoint    string
	LLMTimeout     time.Duration
	MidtransServer string
	MidtransClient string
	MidtransProd   bool
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTExpiresIn = time.Duration(GetEnvInt("JWT_EXPIRES_HOURS", 24*7)) * time.Hour
	PublicBaseURL = strings.TrimRight(GetEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/")
	FrontendURL = strings.TrimRight(GetEnv("FRONTEND_URL", "https://newmeclass.id"), "/")
	UploadDir = GetEnv("UPLOAD_DIR", "uploads")
	CorsOrigins = splitCSV(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"))
	MaxPointsPerQ = GetEnvInt("SCORING_MAX_POINTS_PER_QUESTION", 4)
	DefaultPrice = int64(GetEnvInt("TEST_PRICE", 50000))
	ReferralBonus = int64(GetEnvInt("REFERRAL_BONUS", 10000))

	LLMAPIKey = GetEnv("LLM_API_KEY")
	LLMModel = GetEnv("LLM_MODEL")
	LLMEndpoint = GetEnv("LLM_ENDPOINT")
	LLMTimeout = time.Duration(GetEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second

	MidtransServer = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransClient = GetEnv("MIDTRANS_CLIENT_KEY")
	MidtransProd = GetEnvBool("MIDTRANS_USE_PROD", false)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if LLMAPIKey == "" {
		log.Println("ℹ️ LLM_API_KEY kosong, analisis memakai rules saja")
	}
	if MidtransServer == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY belum diset, pembayaran online nonaktif")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] %s=%q tidak valid, pakai default %d", key, v, def)
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && err != gormLogger.ErrRecordNotFound:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
