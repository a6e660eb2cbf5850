package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"CoopLink/internal/core/elections"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// setupTestDB connects to the test database and runs all migrations.
// Connection settings come from environment variables with local
// defaults matching docker-compose.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testUser := os.Getenv("POSTGRES_TEST_USER")
	testPassword := os.Getenv("POSTGRES_TEST_PASSWORD")
	testPort := os.Getenv("POSTGRES_TEST_PORT")
	testDB := os.Getenv("POSTGRES_TEST_DB")

	if testUser == "" {
		testUser = "test_user"
	}
	if testPassword == "" {
		testPassword = "test_password"
	}
	if testPort == "" {
		testPort = "5434"
	}
	if testDB == "" {
		testDB = "cooplink_test"
	}

	dbURL := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "../../internal/db/migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// cleanupElectionTables truncates all election tables between tests
func cleanupElectionTables(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE evs_votes, evs_ballots, evs_ballot_counter, evs_candidates, evs_position CASCADE`)
	if err != nil {
		t.Fatalf("Failed to clean election tables: %v", err)
	}
}

// cleanupSurveyTables truncates all survey tables between tests
func cleanupSurveyTables(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE survey_answers, survey_responses, survey_choices, survey_questions, surveys CASCADE`)
	if err != nil {
		t.Fatalf("Failed to clean survey tables: %v", err)
	}
}

// createTestMember inserts a member master row, ignoring repeats so
// tests can share fixtures
func createTestMember(t *testing.T, db *sql.DB, memberNo, lastName, firstName string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO member (member_no, last_name, first_name, member_type, mbr_status, join_date)
		VALUES ($1, $2, $3, 'R', 'A', '2015-06-01')
		ON CONFLICT (member_no) DO NOTHING`,
		memberNo, lastName, firstName,
	)
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
}

// seedElection registers one position and its candidates for the year
func seedElection(t *testing.T, db *sql.DB, repo elections.Repository, year int, position elections.Position, candidates []elections.Candidate) {
	t.Helper()
	ctx := context.Background()

	if err := repo.CreatePosition(ctx, position); err != nil {
		t.Fatalf("Failed to create position %s: %v", position.PositionID, err)
	}
	for _, c := range candidates {
		createTestMember(t, db, c.MemberNo, "Candidate", c.MemberNo)
		if err := repo.CreateCandidate(ctx, c); err != nil {
			t.Fatalf("Failed to create candidate %s: %v", c.CandidateID, err)
		}
	}
}
