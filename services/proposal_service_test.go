package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

func newProposalService(db *gorm.DB) *ProposalService {
	return NewProposalService(db,
		repositories.NewProposalRepository(db),
		repositories.NewProjectRepository(db))
}

func TestAcceptProposalFixedProject(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancerA := seedUser(t, db, models.RoleFreelancer)
	freelancerB := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	propA := seedProposal(t, db, project.ID, freelancerA.ID, models.ProposalSubmitted, withBid(4200))
	propB := seedProposal(t, db, project.ID, freelancerB.ID, models.ProposalSubmitted, withBid(4800))

	result, err := svc.Accept(propA.ID, client.ID, models.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, models.ProposalAccepted, result.Proposal.Status)
	assert.Equal(t, models.ContractTypeFixed, result.Contract.ContractType)
	assert.Equal(t, models.ContractActive, result.Contract.Status)
	require.NotNil(t, result.Contract.AgreedAmount)
	assert.Equal(t, 4200.0, *result.Contract.AgreedAmount)
	assert.Nil(t, result.Contract.HourlyRate)
	assert.Equal(t, "USD", result.Contract.Currency)
	assert.Equal(t, client.ID, result.Contract.ClientID)
	assert.Equal(t, freelancerA.ID, result.Contract.FreelancerID)

	// Competing pending proposal is bulk-rejected.
	var reloadedB models.Proposal
	require.NoError(t, db.First(&reloadedB, "id = ?", propB.ID).Error)
	assert.Equal(t, models.ProposalRejected, reloadedB.Status)

	// Project is awarded.
	var reloadedProject models.Project
	require.NoError(t, db.First(&reloadedProject, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectAwarded, reloadedProject.Status)

	// Exactly one contract exists for the project.
	var contractCount int64
	require.NoError(t, db.Model(&models.Contract{}).Where("project_id = ?", project.ID).Count(&contractCount).Error)
	assert.EqualValues(t, 1, contractCount)
}

func TestAcceptProposalHourlyProject(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeHourly, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalShortlisted, withHourly(85, 120))

	result, err := svc.Accept(proposal.ID, client.ID, models.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, models.ContractTypeHourly, result.Contract.ContractType)
	require.NotNil(t, result.Contract.HourlyRate)
	assert.Equal(t, 85.0, *result.Contract.HourlyRate)
	assert.Nil(t, result.Contract.AgreedAmount)
}

func TestAcceptProposalLeavesWithdrawnUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancerA := seedUser(t, db, models.RoleFreelancer)
	freelancerB := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	propA := seedProposal(t, db, project.ID, freelancerA.ID, models.ProposalSubmitted, withBid(3000))
	propB := seedProposal(t, db, project.ID, freelancerB.ID, models.ProposalWithdrawn, withBid(2500))

	_, err := svc.Accept(propA.ID, client.ID, models.RoleClient)
	require.NoError(t, err)

	var reloadedB models.Proposal
	require.NoError(t, db.First(&reloadedB, "id = ?", propB.ID).Error)
	assert.Equal(t, models.ProposalWithdrawn, reloadedB.Status)
}

func TestAcceptProposalAlreadyDecided(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	_, err := svc.Accept(proposal.ID, client.ID, models.RoleClient)
	require.NoError(t, err)

	// Second accept fails with no further mutation.
	_, err = svc.Accept(proposal.ID, client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrProposalDecided)

	var contractCount int64
	require.NoError(t, db.Model(&models.Contract{}).Where("project_id = ?", project.ID).Count(&contractCount).Error)
	assert.EqualValues(t, 1, contractCount)
}

func TestAcceptProposalRejectedCannotBeResurrected(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalRejected, withBid(4200))

	_, err := svc.Accept(proposal.ID, client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrProposalDecided)
}

func TestAcceptProposalProjectNotOpen(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectAwarded)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	_, err := svc.Accept(proposal.ID, client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrProjectNotOpen)

	var reloaded models.Proposal
	require.NoError(t, db.First(&reloaded, "id = ?", proposal.ID).Error)
	assert.Equal(t, models.ProposalSubmitted, reloaded.Status)
}

func TestAcceptProposalNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	otherClient := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	_, err := svc.Accept(proposal.ID, otherClient.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrForbidden)

	// Nothing moved.
	var reloadedProject models.Project
	require.NoError(t, db.First(&reloadedProject, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectOpen, reloadedProject.Status)
}

func TestAcceptProposalAdminBypassesOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	admin := seedUser(t, db, models.RoleAdmin)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	result, err := svc.Accept(proposal.ID, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalAccepted, result.Proposal.Status)
}

func TestAcceptProposalNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)
	client := seedUser(t, db, models.RoleClient)

	_, err := svc.Accept("11111111-1111-1111-1111-111111111111", client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectProposalNoSideEffects(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancerA := seedUser(t, db, models.RoleFreelancer)
	freelancerB := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	propA := seedProposal(t, db, project.ID, freelancerA.ID, models.ProposalSubmitted, withBid(4200))
	propB := seedProposal(t, db, project.ID, freelancerB.ID, models.ProposalSubmitted, withBid(4800))

	rejected, err := svc.Reject(propB.ID, client.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalRejected, rejected.Status)

	// Sibling and project are untouched, no contract appears.
	var reloadedA models.Proposal
	require.NoError(t, db.First(&reloadedA, "id = ?", propA.ID).Error)
	assert.Equal(t, models.ProposalSubmitted, reloadedA.Status)

	var reloadedProject models.Project
	require.NoError(t, db.First(&reloadedProject, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectOpen, reloadedProject.Status)

	var contractCount int64
	require.NoError(t, db.Model(&models.Contract{}).Count(&contractCount).Error)
	assert.EqualValues(t, 0, contractCount)
}

func TestRejectProposalIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalRejected, withBid(4200))

	rejected, err := svc.Reject(proposal.ID, client.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalRejected, rejected.Status)
}

func TestRejectAcceptedProposalFails(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalAccepted, withBid(4200))

	_, err := svc.Reject(proposal.ID, client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrProposalDecided)
}

func TestRejectProposalNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	stranger := seedUser(t, db, models.RoleFreelancer)

	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	_, err := svc.Reject(proposal.ID, stranger.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateProposalDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)

	bid := 4200.0
	req := dto.CreateProposalRequest{ProjectID: project.ID, BidAmount: &bid}

	first, err := svc.CreateProposal(req, freelancer.ID, models.RoleFreelancer)
	require.NoError(t, err)

	_, err = svc.CreateProposal(req, freelancer.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrDuplicateProposal)

	// First proposal is unchanged.
	var reloaded models.Proposal
	require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
	assert.Equal(t, models.ProposalSubmitted, reloaded.Status)
	assert.Equal(t, 4200.0, *reloaded.BidAmount)
}

func TestCreateProposalDuplicateInsertTranslated(t *testing.T) {
	db := newTestDB(t)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	// A concurrent submission that raced past the existence check hits the
	// unique (project, freelancer) index; the driver error arrives
	// translated, not raw.
	bid := 4800.0
	dup := models.Proposal{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
		BidAmount:    &bid,
		Status:       models.ProposalSubmitted,
	}
	err := repositories.NewProposalRepository(db).Create(&dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateProposalPricingMustMatchProjectType(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	fixedProject := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	hourlyProject := seedProject(t, db, client.ID, models.ProjectTypeHourly, models.ProjectOpen)

	rate := 85.0
	hours := 100
	bid := 4200.0

	// Hourly fields on a fixed project.
	_, err := svc.CreateProposal(dto.CreateProposalRequest{
		ProjectID: fixedProject.ID, HourlyRate: &rate, EstimatedHours: &hours,
	}, freelancer.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrValidation)

	// Bid amount on an hourly project.
	_, err = svc.CreateProposal(dto.CreateProposalRequest{
		ProjectID: hourlyProject.ID, BidAmount: &bid,
	}, freelancer.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateProposalOnlyFreelancers(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)

	bid := 100.0
	_, err := svc.CreateProposal(dto.CreateProposalRequest{
		ProjectID: project.ID, BidAmount: &bid,
	}, client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateProposalClosedProject(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectCancelled)

	bid := 100.0
	_, err := svc.CreateProposal(dto.CreateProposalRequest{
		ProjectID: project.ID, BidAmount: &bid,
	}, freelancer.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrProjectNotOpen)
}

func TestUpdateProposalFreelancerEditsBid(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	newBid := 3900.0
	updated, err := svc.UpdateProposal(proposal.ID, dto.UpdateProposalRequest{BidAmount: &newBid}, freelancer.ID, models.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, 3900.0, *updated.BidAmount)

	// Freelancers may not set arbitrary statuses.
	shortlisted := string(models.ProposalShortlisted)
	_, err = svc.UpdateProposal(proposal.ID, dto.UpdateProposalRequest{Status: &shortlisted}, freelancer.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProposalClientShortlists(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	shortlisted := string(models.ProposalShortlisted)
	updated, err := svc.UpdateProposal(proposal.ID, dto.UpdateProposalRequest{Status: &shortlisted}, client.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalShortlisted, updated.Status)

	// Clients cannot accept through PATCH.
	accepted := "accepted"
	_, err = svc.UpdateProposal(proposal.ID, dto.UpdateProposalRequest{Status: &accepted}, client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProposalFreelancerWithdraws(t *testing.T) {
	db := newTestDB(t)
	svc := newProposalService(db)

	client := seedUser(t, db, models.RoleClient)
	freelancer := seedUser(t, db, models.RoleFreelancer)
	project := seedProject(t, db, client.ID, models.ProjectTypeFixed, models.ProjectOpen)
	proposal := seedProposal(t, db, project.ID, freelancer.ID, models.ProposalSubmitted, withBid(4200))

	withdrawn := string(models.ProposalWithdrawn)
	updated, err := svc.UpdateProposal(proposal.ID, dto.UpdateProposalRequest{Status: &withdrawn}, freelancer.ID, models.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalWithdrawn, updated.Status)

	// A withdrawn proposal cannot be edited further.
	newBid := 1.0
	_, err = svc.UpdateProposal(proposal.ID, dto.UpdateProposalRequest{BidAmount: &newBid}, freelancer.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrProposalDecided)
}
