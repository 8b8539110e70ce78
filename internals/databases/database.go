package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	geofenceModel "hadirku_backend/internals/features/attendance/geofence/model"
	sessionModel "hadirku_backend/internals/features/attendance/session/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ DSN lengkap + statement_timeout (selaras dengan timeout context per-request)
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=hadirku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// MigrateAttendance: auto-migrate tabel attendance + index partial yang tidak
// bisa diekspresikan lewat tag gorm.
func MigrateAttendance() {
	if err := DB.AutoMigrate(
		&sessionModel.AttendanceSessionModel{},
		&sessionModel.AttendanceBreakModel{},
		&geofenceModel.GeofenceLocationModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi tabel attendance: %v", err)
	}

	// Invariant inti: maksimal satu sesi 'active' per karyawan.
	// Ditegakkan di storage, bukan di aplikasi (check-in bisa datang paralel).
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_sessions_one_active
		   ON attendance_sessions (attendance_session_employee_id)
		   WHERE attendance_session_status = 'active'`,
		// Natural key untuk upsert idempoten dari batch offline
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_sessions_natural_key
		   ON attendance_sessions (attendance_session_employee_id, attendance_session_check_in_time)`,
		// Maksimal satu break terbuka per sesi
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_breaks_one_open
		   ON attendance_breaks (attendance_break_session_id)
		   WHERE attendance_break_end IS NULL`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Fatalf("❌ Gagal membuat index: %v", err)
		}
	}
	log.Println("✅ Migrasi attendance selesai.")
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
