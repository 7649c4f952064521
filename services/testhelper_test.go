package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gigmarket/api/config"
	"github.com/gigmarket/api/database"
	"github.com/gigmarket/api/models"
)

var userSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	userSeq++
	user := models.User{
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "not-a-real-hash",
		Name:     fmt.Sprintf("User %d", userSeq),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, clientID string, projectType models.ProjectType, status models.ProjectStatus) models.Project {
	t.Helper()
	project := models.Project{
		ClientID:    clientID,
		Title:       "Build a marketplace",
		Description: "Something substantial",
		ProjectType: projectType,
		BudgetMin:   1000,
		BudgetMax:   5000,
		Currency:    "USD",
		Status:      status,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func seedProposal(t *testing.T, db *gorm.DB, projectID, freelancerID string, status models.ProposalStatus, opts ...func(*models.Proposal)) models.Proposal {
	t.Helper()
	proposal := models.Proposal{
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		CoverLetter:  "I can do this",
		Status:       status,
	}
	for _, opt := range opts {
		opt(&proposal)
	}
	require.NoError(t, db.Create(&proposal).Error)
	return proposal
}

func withBid(amount float64) func(*models.Proposal) {
	return func(p *models.Proposal) { p.BidAmount = &amount }
}

func withHourly(rate float64, hours int) func(*models.Proposal) {
	return func(p *models.Proposal) {
		p.HourlyRate = &rate
		p.EstimatedHours = &hours
	}
}

func seedContract(t *testing.T, db *gorm.DB, project models.Project, proposal models.Proposal, status models.ContractStatus) models.Contract {
	t.Helper()
	contract := models.Contract{
		ProjectID:    project.ID,
		ProposalID:   proposal.ID,
		ClientID:     project.ClientID,
		FreelancerID: proposal.FreelancerID,
		ContractType: models.ContractType(project.ProjectType),
		Status:       status,
		AgreedAmount: proposal.BidAmount,
		HourlyRate:   proposal.HourlyRate,
		Currency:     project.Currency,
	}
	require.NoError(t, db.Create(&contract).Error)
	return contract
}
