package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanValidate_DuplicateRole(t *testing.T) {
	plan := ExecutionPlan{Steps: []PlanStep{
		{Role: RoleDiscovery},
		{Role: RoleDiscovery},
	}}

	err := plan.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestPlanValidate_MissingDependency(t *testing.T) {
	plan := ExecutionPlan{Steps: []PlanStep{
		{Role: RoleValuation, Projection: InputProjection{DependsOn: []Role{RoleDiscovery}}},
	}}

	err := plan.Validate()

	var integrity *PlanIntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, RoleValuation, integrity.Role)
	assert.Equal(t, RoleDiscovery, integrity.Missing)
}

func TestPlanValidate_UnknownRole(t *testing.T) {
	plan := ExecutionPlan{Steps: []PlanStep{{Role: Role("astrology")}}}
	assert.Error(t, plan.Validate())
}

func TestPlanValidate_OK(t *testing.T) {
	plan := ExecutionPlan{Steps: []PlanStep{
		{Role: RoleDiscovery},
		{Role: RoleKnowledge},
		{Role: RoleValuation, Projection: InputProjection{DependsOn: []Role{RoleDiscovery}}},
	}}
	assert.NoError(t, plan.Validate())
}

func TestRunContext_RecordOrder(t *testing.T) {
	rc := NewRunContext(Query{Text: "test"})

	rc.Record(RoleDiscovery, Degraded(DiscoveryPayload{}, "found", "offline"))
	rc.Record(RoleKnowledge, Degraded(KnowledgePayload{}, "insights", "offline"))
	rc.Record(RoleDiscovery, Failed(ErrKindInternal)) // duplicate, ignored

	assert.Equal(t, []Role{RoleDiscovery, RoleKnowledge}, rc.Roles())

	res, ok := rc.Result(RoleDiscovery)
	require.True(t, ok)
	assert.Equal(t, StatusDegraded, res.Status)
}

func TestRunContext_Candidates(t *testing.T) {
	rc := NewRunContext(Query{})
	assert.Nil(t, rc.Candidates())

	cars := []Car{{ID: "car_001", Make: "Tata", Model: "Nexon EV"}}
	rc.Record(RoleDiscovery, Success(DiscoveryPayload{Candidates: cars}, "found 1 car"))

	got := rc.Candidates()
	require.Len(t, got, 1)
	assert.Equal(t, "Tata Nexon EV", got[0].Name())
}

func TestRunContext_CandidatesIgnoresFailedDiscovery(t *testing.T) {
	rc := NewRunContext(Query{})
	rc.Record(RoleDiscovery, Failed(ErrKindTimeout))
	assert.Nil(t, rc.Candidates())
}

func TestRolePayloadKeys(t *testing.T) {
	assert.Equal(t, "candidates", RoleDiscovery.PayloadKey())
	assert.Equal(t, "insights", RoleKnowledge.PayloadKey())
	assert.Equal(t, "price_analysis", RoleValuation.PayloadKey())
	assert.Equal(t, "financing_options", RoleFinancing.PayloadKey())
	assert.Equal(t, "document_checks", RoleDocument.PayloadKey())
}

func TestQueryEmpty(t *testing.T) {
	assert.True(t, Query{}.Empty())
	assert.True(t, Query{Text: "  \n\t"}.Empty())
	assert.False(t, Query{Text: "best EV"}.Empty())
}
