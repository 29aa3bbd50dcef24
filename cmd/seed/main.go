package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"skybook/internal/flights"
	"skybook/internal/seats"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting SkyBook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"booking_seats",
		"booking_passengers",
		"bookings",
		"cabins",
		"flights",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedFlights(); err != nil {
		return fmt.Errorf("failed to seed flights: %w", err)
	}

	// Clear Redis so the read cache starts fresh
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 1 admin and 2 regular users
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "User", "admin@skybook.dev", users.RoleAdmin},
		{"Ava", "Traveller", "ava@skybook.dev", users.RoleUser},
		{"Ben", "Traveller", "ben@skybook.dev", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedFlights creates sample flights with cabins and seat maps
func (s *Seeder) SeedFlights() error {
	fmt.Println("  ✈️ Seeding flights...")

	flightsData := []struct {
		airline      string
		flightNumber string
		origin       string
		destination  string
		daysFromNow  int
		hours        float64
		economyFare  float64
		businessFare float64
	}{
		{"SkyBook Air", "SB101", "CGK", "DPS", 7, 1.9, 85.0, 240.0},
		{"SkyBook Air", "SB102", "DPS", "CGK", 10, 1.9, 85.0, 240.0},
		{"SkyBook Air", "SB201", "CGK", "SIN", 14, 1.8, 110.0, 310.0},
		{"SkyBook Air", "SB202", "SIN", "CGK", 18, 1.8, 110.0, 310.0},
		{"Garuda Horizon", "GH330", "CGK", "SUB", 5, 1.4, 60.0, 180.0},
		{"Garuda Horizon", "GH331", "SUB", "CGK", 8, 1.4, 60.0, 180.0},
	}

	for _, flightData := range flightsData {
		departure := time.Now().AddDate(0, 0, flightData.daysFromNow).Truncate(time.Hour)
		flight := flights.Flight{
			ID:            uuid.New(),
			Airline:       flightData.airline,
			FlightNumber:  flightData.flightNumber,
			Origin:        flightData.origin,
			Destination:   flightData.destination,
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(flightData.hours * float64(time.Hour))),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&flight).Error; err != nil {
			return fmt.Errorf("failed to create flight %s: %w", flight.FlightNumber, err)
		}

		cabins := []flights.Cabin{
			{
				ID:       uuid.New(),
				FlightID: flight.ID,
				Class:    "ECONOMY",
				Fare:     flightData.economyFare,
				SeatMap:  generateSeatMap(20, []string{"A", "B", "C", "D", "E", "F"}),
			},
			{
				ID:       uuid.New(),
				FlightID: flight.ID,
				Class:    "BUSINESS",
				Fare:     flightData.businessFare,
				SeatMap:  generateSeatMap(4, []string{"A", "C", "D", "F"}),
			},
		}

		for i := range cabins {
			if err := s.db.PostgreSQL.Create(&cabins[i]).Error; err != nil {
				return fmt.Errorf("failed to create cabin for %s: %w", flight.FlightNumber, err)
			}
		}

		fmt.Printf("    ✅ Created flight: %s %s→%s (%d cabins)\n",
			flight.FlightNumber, flight.Origin, flight.Destination, len(cabins))
	}

	return nil
}

// generateSeatMap builds a raw seat map with roughly one seat in five
// already taken, so seat selection has something realistic to work with.
func generateSeatMap(rows int, columns []string) flights.SeatMapJSON {
	var entries flights.SeatMapJSON
	for row := 1; row <= rows; row++ {
		for _, col := range columns {
			entries = append(entries, seats.RawSeat{
				SeatNumber:  fmt.Sprintf("%d%s", row, col),
				IsAvailable: rand.Intn(5) != 0,
			})
		}
	}
	return entries
}
