package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"carewatch/pkg/database"
)

// 运维排查工具：打印在住花名册和每位住户的最新观测时间，
// 用于核对排程顺序和持久化是否正常
func main() {
	cfg := &database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     parseInt(getEnv("DB_PORT", "5432"), 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Database: getEnv("DB_NAME", "carewatch"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	query := `
		SELECT
			r.resident_id::text,
			r.name,
			COALESCE(r.room, '') AS room,
			r.roster_position,
			MAX(o.timestamp) AS last_measured
		FROM residents r
		LEFT JOIN vital_observations o ON o.resident_id = r.resident_id
		WHERE r.status = 'active'
		GROUP BY r.resident_id, r.name, r.room, r.roster_position
		ORDER BY r.roster_position ASC;
	`

	rows, err := db.Query(query)
	if err != nil {
		log.Fatalf("Failed to query roster: %v", err)
	}
	defer rows.Close()

	fmt.Println("Active roster:")
	count := 0
	for rows.Next() {
		var residentID, name, room string
		var position int
		var lastMeasured *time.Time
		if err := rows.Scan(&residentID, &name, &room, &position, &lastMeasured); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}

		measured := "never"
		if lastMeasured != nil {
			measured = lastMeasured.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("  [%d] %s (%s) room=%s last_measured=%s\n", position, name, residentID, room, measured)
		count++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to iterate rows: %v", err)
	}

	fmt.Printf("Total: %d residents\n", count)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}
