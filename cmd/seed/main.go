package main

import (
	"settleup/internal/config"     // Custom import path (Config)
	"settleup/internal/domain"     // Custom import path (Domain models)
	"settleup/internal/ledger"     // Custom import path (Ledger service)
	"settleup/internal/repository" // Custom import path (Repositories)

	"github.com/shopspring/decimal" // Decimal arithmetic
	"github.com/sirupsen/logrus"    // Logrus for structured logging
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/driver/mysql"          // MySQL driver for GORM
	"gorm.io/gorm"                  // GORM ORM library
)

// mustDecimal parses a known-good decimal literal
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		logrus.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

// newUser builds a user with a hashed default password
func newUser(name, email string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash password: %v", err)
	}
	return domain.User{Name: name, Email: email, Password: string(hash)}
}

// Seeds the database with sample users, groups and expenses
func main() {
	cfg := config.LoadConfig() // Load configuration

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}

	users := repository.NewUsers(db)
	groups := repository.NewGroups(db)
	svc := ledger.NewService(db)

	// Only load data if no users exist
	count, err := users.Count()
	if err != nil {
		logrus.Fatalf("failed to count users: %v", err)
	}
	if count > 0 {
		logrus.Info("Database already has data, skipping initialization.")
		return
	}
	logrus.Info("Initializing database with sample data...")

	// Create sample users
	alice := newUser("Alice Johnson", "alice@example.com")
	bob := newUser("Bob Smith", "bob@example.com")
	charlie := newUser("Charlie Brown", "charlie@example.com")
	diana := newUser("Diana Prince", "diana@example.com")
	eve := newUser("Eve Wilson", "eve@example.com")
	for _, u := range []*domain.User{&alice, &bob, &charlie, &diana, &eve} {
		if err := users.Save(u); err != nil {
			logrus.Fatalf("failed to create user %s: %v", u.Email, err)
		}
	}

	// Create sample groups
	roommates := domain.Group{Name: "Roommates", Members: []domain.User{alice, bob, charlie}}
	trip := domain.Group{Name: "Vacation Trip", Members: []domain.User{alice, bob, charlie, diana, eve}}
	dinner := domain.Group{Name: "Dinner Club", Members: []domain.User{alice, diana, eve}}
	for _, g := range []*domain.Group{&roommates, &trip, &dinner} {
		if err := groups.Save(g); err != nil {
			logrus.Fatalf("failed to create group %s: %v", g.Name, err)
		}
	}

	// Sample expenses, split equally among each group's members
	rent, err := svc.RecordExpense(roommates.ID, alice.ID, mustDecimal("1500.00"), "Monthly Rent", domain.SplitTypeEqual, nil)
	if err != nil {
		logrus.Fatalf("failed to record rent: %v", err)
	}
	utilities, err := svc.RecordExpense(roommates.ID, bob.ID, mustDecimal("200.00"), "Electricity and Water", domain.SplitTypeEqual, nil)
	if err != nil {
		logrus.Fatalf("failed to record utilities: %v", err)
	}
	if _, err := svc.RecordExpense(trip.ID, diana.ID, mustDecimal("800.00"), "Hotel Booking", domain.SplitTypeEqual, nil); err != nil {
		logrus.Fatalf("failed to record hotel: %v", err)
	}
	if _, err := svc.RecordExpense(trip.ID, eve.ID, mustDecimal("300.00"), "Group Dinner", domain.SplitTypeEqual, nil); err != nil {
		logrus.Fatalf("failed to record dinner: %v", err)
	}
	if _, err := svc.RecordExpense(dinner.ID, alice.ID, mustDecimal("120.00"), "Italian Restaurant", domain.SplitTypeEqual, nil); err != nil {
		logrus.Fatalf("failed to record restaurant: %v", err)
	}

	// Mark some splits as paid for testing:
	// Alice paid her share of utilities, Bob paid his share of rent
	aliceUtilities, err := svc.SplitByUserAndExpense(alice.ID, utilities.ID)
	if err != nil {
		logrus.Fatalf("failed to find Alice's utilities split: %v", err)
	}
	if _, err := svc.UpdateSplitStatus(aliceUtilities.ID, domain.SplitStatusPaid); err != nil {
		logrus.Fatalf("failed to mark split paid: %v", err)
	}
	bobRent, err := svc.SplitByUserAndExpense(bob.ID, rent.ID)
	if err != nil {
		logrus.Fatalf("failed to find Bob's rent split: %v", err)
	}
	if _, err := svc.UpdateSplitStatus(bobRent.ID, domain.SplitStatusPaid); err != nil {
		logrus.Fatalf("failed to mark split paid: %v", err)
	}

	logrus.Info("Sample data loaded successfully!") // Log successful load
}
