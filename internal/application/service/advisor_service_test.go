package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvisorRecommend(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Helena")
	rx, err := f.customers.AddPrescription(f.ctx, c.ID, &service.PrescriptionInput{
		Date: entity.NewDate(2024, time.January, 20),
		OD:   entity.EyePrescription{Spherical: "+1.50", Cylinder: "-0.50", Axis: "90", Addition: "+2.00"},
		OE:   entity.EyePrescription{Spherical: "+1.75", Cylinder: "-0.25", Axis: "85", Addition: "+2.00"},
	})
	require.NoError(t, err)

	t.Run("structured answer", func(t *testing.T) {
		gen := llm.NewMockGenerator("gpt-4o-mini")
		advisor := service.NewAdvisorService(gen, f.customers)

		advice, err := advisor.Recommend(f.ctx, c.ID, rx.ID, "Trabalha o dia todo no computador")
		require.NoError(t, err)
		assert.False(t, advice.Degraded)
		require.NotNil(t, advice.Recommendation)
		assert.NotEmpty(t, advice.Recommendation.LensTypes)

		prompts := gen.Prompts()
		require.Len(t, prompts, 1)
		assert.Contains(t, prompts[0], "adição +2.00")
		assert.Contains(t, prompts[0], "computador")
	})

	t.Run("generator failure degrades", func(t *testing.T) {
		advisor := service.NewAdvisorService(llm.NewMockGeneratorWith("", errors.New("rate limited")), f.customers)

		advice, err := advisor.Recommend(f.ctx, c.ID, rx.ID, "")
		require.NoError(t, err)
		assert.True(t, advice.Degraded)
		assert.NotEmpty(t, advice.Message)
		assert.Nil(t, advice.Recommendation)
	})

	t.Run("malformed answer degrades", func(t *testing.T) {
		advisor := service.NewAdvisorService(llm.NewMockGeneratorWith("not json", nil), f.customers)

		advice, err := advisor.Recommend(f.ctx, c.ID, rx.ID, "")
		require.NoError(t, err)
		assert.True(t, advice.Degraded)
	})

	t.Run("unknown prescription", func(t *testing.T) {
		advisor := service.NewAdvisorService(llm.NewMockGenerator("mock"), f.customers)
		other := f.customer(t, "Outra")

		_, err := advisor.Recommend(f.ctx, other.ID, rx.ID, "")
		assert.Equal(t, 404, appCode(t, err))
	})
}

func TestPrescriptionExpiry(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Tiago")
	for _, d := range []entity.Date{entity.NewDate(2023, time.March, 1), entity.NewDate(2023, time.April, 1)} {
		_, err := f.customers.AddPrescription(f.ctx, c.ID, &service.PrescriptionInput{
			Date: d,
			OD:   entity.EyePrescription{Spherical: "-2.00"},
			OE:   entity.EyePrescription{Spherical: "-2.00"},
		})
		require.NoError(t, err)
	}

	list, err := f.customers.ListPrescriptions(f.ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	expired := map[string]bool{}
	for _, p := range list {
		expired[p.Date.String()] = p.Expired
	}
	assert.True(t, expired["2023-03-01"])
	assert.False(t, expired["2023-04-01"])

	_, err = f.customers.AddPrescription(f.ctx, c.ID, &service.PrescriptionInput{})
	assert.ElementsMatch(t, []string{"date", "od", "oe"}, fieldsOf(err))
}
