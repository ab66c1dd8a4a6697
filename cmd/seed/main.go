// Демо-данные для локальной разработки: заведение, услуги, клиенты и
// записи на ближайшую неделю.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/agendei/agenda-service/internal/config"
	"github.com/agendei/agenda-service/internal/domain"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback()

	ownerID := seedProfile(tx, "owner", nil)

	establishmentID := uuid.New()
	if _, err := tx.Exec(`
		INSERT INTO establishments (id, name, slug, owner_id, opening_time, closing_time,
		                            lunch_start, lunch_end, slot_granularity_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, establishmentID, gofakeit.Company()+" Barbearia", gofakeit.Username(),
		ownerID, domain.DefaultOpeningTime, domain.DefaultClosingTime,
		domain.DefaultLunchStart, domain.DefaultLunchEnd, domain.DefaultSlotGranularityMinutes); err != nil {
		log.Fatalf("seed establishment: %v", err)
	}

	services := seedServices(tx, establishmentID)
	clients := make([]uuid.UUID, 0, 12)
	for i := 0; i < 12; i++ {
		clients = append(clients, seedProfile(tx, "client", nil))
	}

	seedAppointments(tx, establishmentID, services, clients)

	if err := tx.Commit(); err != nil {
		log.Fatalf("commit: %v", err)
	}

	log.Printf("seed complete: establishment=%s", establishmentID)
}

type seededService struct {
	ID              uuid.UUID
	DurationMinutes int
}

func seedProfile(tx *sql.Tx, role string, establishmentID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	if _, err := tx.Exec(`
		INSERT INTO profiles (id, name, phone, role, establishment_id)
		VALUES ($1, $2, $3, $4, $5)
	`, id, gofakeit.Name(), gofakeit.Phone(), role, establishmentID); err != nil {
		log.Fatalf("seed profile: %v", err)
	}
	return id
}

func seedServices(tx *sql.Tx, establishmentID uuid.UUID) []seededService {
	catalog := []struct {
		name     string
		price    float64
		duration int
	}{
		{"Corte", 50, 30},
		{"Barba", 35, 15},
		{"Corte + Barba", 75, 45},
		{"Pigmentação", 90, 60},
		{"Sobrancelha", 20, 15},
	}

	out := make([]seededService, 0, len(catalog))
	for _, svc := range catalog {
		id := uuid.New()
		if _, err := tx.Exec(`
			INSERT INTO services (id, establishment_id, name, price, duration_minutes)
			VALUES ($1, $2, $3, $4, $5)
		`, id, establishmentID, svc.name, svc.price, svc.duration); err != nil {
			log.Fatalf("seed service %s: %v", svc.name, err)
		}
		out = append(out, seededService{ID: id, DurationMinutes: svc.duration})
	}

	log.Printf("seeded %d services", len(out))
	return out
}

// seedAppointments fills the next 7 days with non-overlapping bookings,
// walking each day forward so the exclusion constraint never trips.
func seedAppointments(tx *sql.Tx, establishmentID uuid.UUID, services []seededService, clients []uuid.UUID) {
	now := time.Now()
	total := 0

	for day := 0; day < 7; day++ {
		date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)

		// Working day 08:00-20:00, skip the 12:00-13:00 lunch band.
		cursor := date.Add(8 * time.Hour)
		closing := date.Add(20 * time.Hour)

		for cursor.Before(closing) {
			if cursor.Hour() == 12 {
				cursor = date.Add(13 * time.Hour)
				continue
			}

			// Leave random gaps so the agenda looks lived-in.
			if gofakeit.Number(0, 2) == 0 {
				cursor = cursor.Add(time.Duration(gofakeit.Number(1, 4)*15) * time.Minute)
				continue
			}

			svc := services[gofakeit.Number(0, len(services)-1)]
			client := clients[gofakeit.Number(0, len(clients)-1)]
			end := cursor.Add(time.Duration(svc.DurationMinutes) * time.Minute)
			if end.After(closing) {
				break
			}

			if _, err := tx.Exec(`
				INSERT INTO appointments (id, establishment_id, client_id, service_id,
				                          start_at, end_at, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, uuid.New(), establishmentID, client, svc.ID, cursor, end, domain.StatusScheduled); err != nil {
				log.Fatalf("seed appointment at %s: %v", cursor, err)
			}
			total++
			cursor = end
		}
	}

	log.Printf("seeded %d appointments", total)
}
