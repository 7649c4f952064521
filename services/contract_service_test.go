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

func newContractService(db *gorm.DB) *ContractService {
	return NewContractService(db, repositories.NewContractRepository(db))
}

func TestCompleteContractCompletesProject(t *testing.T) {
	db := newTestDB(t)
	svc := newContractService(db)
	fx := seedActiveContract(t, db)

	updated, err := svc.UpdateContract(fx.contract.ID, dto.UpdateContractRequest{Status: "completed"},
		fx.client.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.ContractCompleted, updated.Status)
	assert.NotNil(t, updated.EndAt)

	var project models.Project
	require.NoError(t, db.First(&project, "id = ?", fx.contract.ProjectID).Error)
	assert.Equal(t, models.ProjectCompleted, project.Status)
}

func TestTerminateContractCancelsProject(t *testing.T) {
	db := newTestDB(t)
	svc := newContractService(db)
	fx := seedActiveContract(t, db)

	updated, err := svc.UpdateContract(fx.contract.ID, dto.UpdateContractRequest{Status: "terminated"},
		fx.freelancer.ID, models.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, models.ContractTerminated, updated.Status)

	var project models.Project
	require.NoError(t, db.First(&project, "id = ?", fx.contract.ProjectID).Error)
	assert.Equal(t, models.ProjectCancelled, project.Status)
}

func TestUpdateContractTerminalStates(t *testing.T) {
	db := newTestDB(t)
	svc := newContractService(db)
	fx := seedActiveContract(t, db)

	_, err := svc.UpdateContract(fx.contract.ID, dto.UpdateContractRequest{Status: "completed"},
		fx.client.ID, models.RoleClient)
	require.NoError(t, err)

	// Completed and terminated are terminal.
	_, err = svc.UpdateContract(fx.contract.ID, dto.UpdateContractRequest{Status: "terminated"},
		fx.client.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateContractOutsiderForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newContractService(db)
	fx := seedActiveContract(t, db)
	outsider := seedUser(t, db, models.RoleClient)

	_, err := svc.UpdateContract(fx.contract.ID, dto.UpdateContractRequest{Status: "completed"},
		outsider.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetContractVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newContractService(db)
	fx := seedActiveContract(t, db)
	outsider := seedUser(t, db, models.RoleFreelancer)
	admin := seedUser(t, db, models.RoleAdmin)

	_, err := svc.GetContract(fx.contract.ID, fx.client.ID, models.RoleClient)
	require.NoError(t, err)
	_, err = svc.GetContract(fx.contract.ID, fx.freelancer.ID, models.RoleFreelancer)
	require.NoError(t, err)
	_, err = svc.GetContract(fx.contract.ID, admin.ID, models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.GetContract(fx.contract.ID, outsider.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListContractsScopedToParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := newContractService(db)
	first := seedActiveContract(t, db)
	seedActiveContract(t, db)

	contracts, total, err := svc.ListContracts(dto.ContractFilter{}, first.client.ID, models.RoleClient)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, contracts, 1)
	assert.Equal(t, first.contract.ID, contracts[0].ID)

	admin := seedUser(t, db, models.RoleAdmin)
	all, total, err := svc.ListContracts(dto.ContractFilter{}, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}
