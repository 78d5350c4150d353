package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shift_manager_backend/pkg/utils"
)

// DefaultSeedPassword is the initial password of every seeded account.
const DefaultSeedPassword = "1234"

type seedUser struct {
	EmployeeID string
	Name       string
	Role       string
	Phone      string
}

type seedTask struct {
	Name        string
	Description string
	Icon        string
	ShiftType   string
}

type seedShift struct {
	EmployeeID string
	ShiftType  string
	Tasks      []string
}

var seedUsers = []seedUser{
	{"admin", "Store Manager", "manager", "081-234-5678"},
	{"emp001", "Somchai Jaidee", "employee", "082-345-6789"},
	{"emp002", "Somying Rakngan", "employee", "083-456-7890"},
	{"emp003", "Wichai Mankong", "employee", "084-567-8901"},
	{"emp004", "Nida Sukjai", "employee", "085-678-9012"},
	{"emp005", "Prasit Kengngan", "employee", "086-789-0123"},
}

var seedTasks = []seedTask{
	{"Open store", "Prepare the store before opening", "door-open", "morning"},
	{"Stock check", "Count the products on hand", "clipboard-check", "all"},
	{"Receive delivery", "Receive goods from the distribution center", "truck", "morning"},
	{"Arrange shelves", "Arrange products on the shelves", "box", "all"},
	{"Cleaning", "Clean the store floor", "broom", "all"},
	{"Close store", "Close the store and summarise sales", "door-closed", "night"},
	{"Cashier", "Take payments at the counter", "cash-register", "all"},
	{"Food prep", "Prepare fresh food such as rice boxes", "utensils", "all"},
	{"Coffee bar", "Serve drinks at the cafe counter", "coffee", "all"},
	{"Restock", "Refill fridges and shelves", "box", "all"},
}

var seedShifts = []seedShift{
	{"emp001", "morning", []string{"Open store", "Receive delivery", "Cashier"}},
	{"emp002", "morning", []string{"Stock check", "Arrange shelves", "Coffee bar"}},
	{"emp003", "afternoon", []string{"Cashier", "Food prep", "Restock"}},
	{"emp004", "afternoon", []string{"Arrange shelves", "Cleaning", "Coffee bar"}},
	{"emp005", "night", []string{"Cashier", "Cleaning", "Close store"}},
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Users   int
	Tasks   int
	Shifts  int
	Skipped bool
}

// Seed loads the fixture accounts, task types and a sample schedule for shiftDate.
// It does nothing when the users table already has rows.
func Seed(ctx context.Context, db *sql.DB, shiftDate time.Time, password string) (*SeedResult, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return nil, fmt.Errorf("checking existing users: %w", err)
	}
	if count > 0 {
		utils.LogInfo("Seed skipped, users already present", map[string]interface{}{"users": count})
		return &SeedResult{Skipped: true}, nil
	}

	if password == "" {
		password = DefaultSeedPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	userIDs := make(map[string]int64, len(seedUsers))
	for _, u := range seedUsers {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (employee_id, password_hash, name, role, phone, avatar, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7) RETURNING id`,
			u.EmployeeID, string(hash), u.Name, u.Role, u.Phone, utils.Initial(u.Name), now,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seeding user %s: %w", u.EmployeeID, err)
		}
		userIDs[u.EmployeeID] = id
	}

	taskIDs := make(map[string]int64, len(seedTasks))
	for _, t := range seedTasks {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO tasks (name, description, icon, shift_type, is_active, created_at)
			 VALUES ($1, $2, $3, $4, TRUE, $5) RETURNING id`,
			t.Name, t.Description, t.Icon, t.ShiftType, now,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seeding task %s: %w", t.Name, err)
		}
		taskIDs[t.Name] = id
	}

	date := shiftDate.Format("2006-01-02")
	for _, s := range seedShifts {
		var shiftID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO shifts (user_id, shift_date, shift_type, status, created_at)
			 VALUES ($1, $2, $3, 'scheduled', $4) RETURNING id`,
			userIDs[s.EmployeeID], date, s.ShiftType, now,
		).Scan(&shiftID)
		if err != nil {
			return nil, fmt.Errorf("seeding %s shift for %s: %w", s.ShiftType, s.EmployeeID, err)
		}
		for _, name := range s.Tasks {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO shift_tasks (shift_id, task_id, is_completed) VALUES ($1, $2, FALSE)`,
				shiftID, taskIDs[name],
			); err != nil {
				return nil, fmt.Errorf("seeding shift task %s: %w", name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed: %w", err)
	}

	res := &SeedResult{Users: len(seedUsers), Tasks: len(seedTasks), Shifts: len(seedShifts)}
	utils.LogInfo("Seed data created", map[string]interface{}{
		"users": res.Users, "tasks": res.Tasks, "shifts": res.Shifts, "shift_date": date,
	})
	return res, nil
}
