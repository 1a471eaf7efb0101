package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/common/domain"
	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	"github.com/spycat-agency/service-mission/internal/domain/events"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"github.com/spycat-agency/service-mission/internal/repository/memory"
)

type missionFixture struct {
	store    *memory.Store
	producer *recordingPublisher
	service  *application.MissionService
}

func newMissionFixture() *missionFixture {
	store := memory.NewStore()
	producer := &recordingPublisher{}
	return &missionFixture{
		store:    store,
		producer: producer,
		service:  application.NewMissionService(store.Missions(), store.Cats(), producer, zap.NewNop()),
	}
}

func (f *missionFixture) addCat(t *testing.T) int64 {
	t.Helper()
	c, err := catDomain.NewCat("Agent", 2, "Siamese", 300)
	require.NoError(t, err)
	saved, err := f.store.Cats().Create(context.Background(), c)
	require.NoError(t, err)
	return saved.ID()
}

func missionRequest(cat *int64, targets int) application.CreateMissionRequest {
	req := application.CreateMissionRequest{
		AssignedCat: cat,
		Status:      missionDomain.StatusPending,
		Title:       "Operation Whiskers",
	}
	for i := 0; i < targets; i++ {
		req.Targets = append(req.Targets, application.CreateTargetRequest{
			Status:  missionDomain.StatusPending,
			Name:    "Target",
			Country: "Portugal",
		})
	}
	return req
}

func (f *missionFixture) create(t *testing.T, cat *int64, targets int) *application.MissionDTO {
	t.Helper()
	res, err := f.service.CreateMission(context.Background(), missionRequest(cat, targets))
	require.NoError(t, err)
	m, err := f.service.GetMission(context.Background(), res.MissionID)
	require.NoError(t, err)
	return m
}

func TestCreateMission(t *testing.T) {
	f := newMissionFixture()

	res, err := f.service.CreateMission(context.Background(), missionRequest(nil, 3))
	require.NoError(t, err)
	assert.Equal(t, "Mission created successfully", res.Message)

	m, err := f.service.GetMission(context.Background(), res.MissionID)
	require.NoError(t, err)
	assert.Nil(t, m.AssignedCat)
	assert.Equal(t, "pending", m.Status)
	require.Len(t, m.Targets, 3)
	for _, target := range m.Targets {
		assert.Equal(t, m.ID, target.AssignedMission)
	}
	assert.Equal(t, []string{events.MissionCreated}, f.producer.types())
}

func TestCreateMission_TargetCount(t *testing.T) {
	f := newMissionFixture()

	_, err := f.service.CreateMission(context.Background(), missionRequest(nil, 0))
	assert.ErrorIs(t, err, missionDomain.ErrNoTargets)

	_, err = f.service.CreateMission(context.Background(), missionRequest(nil, 4))
	assert.ErrorIs(t, err, missionDomain.ErrTooManyTargets)

	missions, err := f.service.ListMissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, missions)
}

func TestCreateMission_MissingCat(t *testing.T) {
	f := newMissionFixture()

	_, err := f.service.CreateMission(context.Background(), missionRequest(int64Ptr(77), 1))
	assert.ErrorIs(t, err, missionDomain.ErrCatMissing)
	assert.True(t, domain.IsValidation(err))

	catID := f.addCat(t)
	m := f.create(t, &catID, 1)
	require.NotNil(t, m.AssignedCat)
	assert.Equal(t, catID, *m.AssignedCat)
}

func TestDeleteMission(t *testing.T) {
	f := newMissionFixture()
	m := f.create(t, nil, 2)

	require.NoError(t, f.service.DeleteMission(context.Background(), m.ID))

	got, err := f.service.GetMission(context.Background(), m.ID)
	require.NoError(t, err, "cancelled missions are kept")
	assert.Equal(t, "cancelled", got.Status)
	for _, target := range got.Targets {
		assert.Equal(t, "cancelled", target.Status)
	}
	assert.Contains(t, f.producer.types(), events.MissionCancelled)

	assert.ErrorIs(t, f.service.DeleteMission(context.Background(), 404), missionDomain.ErrNotFound)
}

func TestDeleteMission_Assigned(t *testing.T) {
	f := newMissionFixture()
	catID := f.addCat(t)
	m := f.create(t, &catID, 1)

	assert.ErrorIs(t, f.service.DeleteMission(context.Background(), m.ID), missionDomain.ErrAssigned)

	got, err := f.service.GetMission(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}

func TestAssignCat(t *testing.T) {
	f := newMissionFixture()
	m := f.create(t, nil, 1)
	first := f.addCat(t)
	second := f.addCat(t)

	require.NoError(t, f.service.AssignCat(context.Background(), m.ID, first))
	assert.ErrorIs(t, f.service.AssignCat(context.Background(), m.ID, second), missionDomain.ErrAlreadyAssigned)

	got, err := f.service.GetMission(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedCat)
	assert.Equal(t, first, *got.AssignedCat, "an assigned cat is never replaced")

	assert.ErrorIs(t, f.service.AssignCat(context.Background(), m.ID, 999), catDomain.ErrNotFound)
	assert.ErrorIs(t, f.service.AssignCat(context.Background(), 999, first), missionDomain.ErrNotFound)
	assert.Contains(t, f.producer.types(), events.MissionCatAssigned)
}

func TestUpdateTargetStatus_FinishesMission(t *testing.T) {
	f := newMissionFixture()
	m := f.create(t, nil, 2)
	first, second := m.Targets[0].ID, m.Targets[1].ID

	res, err := f.service.UpdateTargetStatus(context.Background(), first, missionDomain.StatusFinished)
	require.NoError(t, err)
	assert.False(t, res.MissionFinished)
	assert.Equal(t, m.ID, res.MissionID)

	got, err := f.service.GetMission(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)

	res, err = f.service.UpdateTargetStatus(context.Background(), second, missionDomain.StatusFinished)
	require.NoError(t, err)
	assert.True(t, res.MissionFinished)

	got, err = f.service.GetMission(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "finished", got.Status)
	assert.Contains(t, f.producer.types(), events.MissionFinished)
}

func TestUpdateTargetStatus_FinishedIsOneWay(t *testing.T) {
	f := newMissionFixture()
	m := f.create(t, nil, 1)
	target := m.Targets[0].ID

	_, err := f.service.UpdateTargetStatus(context.Background(), target, missionDomain.StatusFinished)
	require.NoError(t, err)
	_, err = f.service.UpdateTargetStatus(context.Background(), target, missionDomain.StatusInProgress)
	require.NoError(t, err)

	got, err := f.service.GetMission(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "finished", got.Status)
	assert.Equal(t, "in_progress", got.Targets[0].Status)

	res, err := f.service.UpdateTargetStatus(context.Background(), target, missionDomain.StatusFinished)
	require.NoError(t, err)
	assert.False(t, res.MissionFinished, "an already finished mission is not finished twice")
}

func TestUpdateTargetStatus_Errors(t *testing.T) {
	f := newMissionFixture()

	_, err := f.service.UpdateTargetStatus(context.Background(), 12, missionDomain.StatusFinished)
	assert.ErrorIs(t, err, missionDomain.ErrTargetNotFound)

	_, err = f.service.UpdateTargetStatus(context.Background(), 12, missionDomain.Status("lost"))
	assert.True(t, domain.IsValidation(err))
}

func TestGetMissionStats(t *testing.T) {
	f := newMissionFixture()
	f.create(t, nil, 1)
	cancelled := f.create(t, nil, 1)
	require.NoError(t, f.service.DeleteMission(context.Background(), cancelled.ID))

	stats, err := f.service.GetMissionStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"pending":     1,
		"in_progress": 0,
		"finished":    0,
		"cancelled":   1,
	}, stats)
}
