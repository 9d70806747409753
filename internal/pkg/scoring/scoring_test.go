package scoring

import (
	"testing"

	"somnolink-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integerItem(linkID string, v int) fhir_dto.QuestionnaireResponseItem {
	return fhir_dto.QuestionnaireResponseItem{
		LinkID: linkID,
		Answer: []fhir_dto.QuestionnaireResponseItemAnswer{{ValueInteger: &v}},
	}
}

func codedItem(linkID, code string) fhir_dto.QuestionnaireResponseItem {
	return fhir_dto.QuestionnaireResponseItem{
		LinkID: linkID,
		Answer: []fhir_dto.QuestionnaireResponseItemAnswer{{ValueCoding: &fhir_dto.Coding{Code: code}}},
	}
}

func TestAnswerValue(t *testing.T) {
	v := 4
	got, ok := AnswerValue(fhir_dto.QuestionnaireResponseItemAnswer{ValueInteger: &v})
	require.True(t, ok)
	assert.Equal(t, 4, got)

	got, ok = AnswerValue(fhir_dto.QuestionnaireResponseItemAnswer{ValueCoding: &fhir_dto.Coding{Code: "7"}})
	require.True(t, ok)
	assert.Equal(t, 7, got)

	_, ok = AnswerValue(fhir_dto.QuestionnaireResponseItemAnswer{ValueCoding: &fhir_dto.Coding{Code: "often"}})
	assert.False(t, ok)

	s := "text"
	_, ok = AnswerValue(fhir_dto.QuestionnaireResponseItemAnswer{ValueString: &s})
	assert.False(t, ok)

	_, ok = AnswerValue(fhir_dto.QuestionnaireResponseItemAnswer{})
	assert.False(t, ok)
}

func TestScore_TotalSumDefault(t *testing.T) {
	result := Score("irls", []fhir_dto.QuestionnaireResponseItem{
		integerItem("1", 2),
		codedItem("2", "3"),
	})

	assert.Equal(t, KindTotalScore, result.Kind)
	require.NotNil(t, result.Total)
	assert.Equal(t, 5.0, *result.Total)
}

func TestScore_TotalSumSkipsUnusableAnswers(t *testing.T) {
	result := Score("some-unknown-instrument", []fhir_dto.QuestionnaireResponseItem{
		integerItem("1", 2),
		codedItem("2", "often"),
		{LinkID: "3"},
	})

	require.NotNil(t, result.Total)
	assert.Equal(t, 2.0, *result.Total)
}

func TestScore_TotalSumEmptySubmissionIsZero(t *testing.T) {
	result := Score("irls", nil)
	require.NotNil(t, result.Total)
	assert.Equal(t, 0.0, *result.Total)
}

func TestScore_RLS6Domains(t *testing.T) {
	result := Score("rls-6", []fhir_dto.QuestionnaireResponseItem{
		integerItem("1", 2),
		integerItem("6", 3),
		integerItem("2", 1),
		integerItem("3", 1),
		integerItem("4", 5),
	})

	assert.Equal(t, KindRLS6Domains, result.Kind)
	assert.Nil(t, result.Total)
	require.NotNil(t, result.Domains)

	require.NotNil(t, result.Domains.SleepQuality)
	assert.Equal(t, 5, *result.Domains.SleepQuality)
	require.NotNil(t, result.Domains.Nighttime)
	assert.Equal(t, 2, *result.Domains.Nighttime)
	require.NotNil(t, result.Domains.DaytimeRelaxation)
	assert.Equal(t, 5, *result.Domains.DaytimeRelaxation)
	assert.Nil(t, result.Domains.ControlActivity)
}

func TestScore_RLS6PairedDomainNeedsBothItems(t *testing.T) {
	result := Score("rls6", []fhir_dto.QuestionnaireResponseItem{
		integerItem("1", 2),
		integerItem("5", 4),
	})

	require.NotNil(t, result.Domains)
	assert.Nil(t, result.Domains.SleepQuality)
	assert.Nil(t, result.Domains.Nighttime)
	assert.Nil(t, result.Domains.DaytimeRelaxation)
	require.NotNil(t, result.Domains.ControlActivity)
	assert.Equal(t, 4, *result.Domains.ControlActivity)
}

func TestScore_RLS6DispatchesOnSlugVariants(t *testing.T) {
	for _, slug := range []string{"rls6", "rls-6", "RLS_6"} {
		result := Score(slug, []fhir_dto.QuestionnaireResponseItem{integerItem("4", 1)})
		assert.Equal(t, KindRLS6Domains, result.Kind, "slug %q", slug)
	}
}

func TestScore_MHI5FullSubmission(t *testing.T) {
	result := Score("mhi-5", []fhir_dto.QuestionnaireResponseItem{
		integerItem("a", 5),
		integerItem("b", 4),
		integerItem("c", 2), // inverted: 7-2 = 5
		integerItem("d", 3),
		integerItem("e", 1), // inverted: 7-1 = 6
	})

	// 5 + 4 + 5 + 3 + 6 = 23 -> ((23-5)/20)*100 = 90.0
	assert.Equal(t, KindMHI5, result.Kind)
	require.NotNil(t, result.RawSum)
	assert.Equal(t, 23, *result.RawSum)
	require.NotNil(t, result.Total)
	assert.Equal(t, 90.0, *result.Total)
}

func TestScore_MHI5PartialSubmission(t *testing.T) {
	result := Score("mhi-5", []fhir_dto.QuestionnaireResponseItem{
		integerItem("a", 3),
		integerItem("c", 4), // inverted: 7-4 = 3
	})

	require.NotNil(t, result.RawSum)
	assert.Equal(t, 6, *result.RawSum)
	require.NotNil(t, result.Total)
	assert.Equal(t, 5.0, *result.Total)
}

func TestScore_MHI5Transform(t *testing.T) {
	// raw sum 12 -> ((12-5)/20)*100 = 35.0
	result := Score("mhi5", []fhir_dto.QuestionnaireResponseItem{
		integerItem("a", 6),
		integerItem("b", 6),
	})
	require.NotNil(t, result.Total)
	assert.Equal(t, 35.0, *result.Total)

	// raw sum 13 -> 40.0
	result = Score("mhi5", []fhir_dto.QuestionnaireResponseItem{
		integerItem("a", 6),
		integerItem("b", 6),
		integerItem("d", 1),
	})
	require.NotNil(t, result.Total)
	assert.Equal(t, 40.0, *result.Total)
}

func TestScore_MHI5EmptySubmissionHasNoTotal(t *testing.T) {
	result := Score("mhi-5", nil)
	assert.Equal(t, KindMHI5, result.Kind)
	assert.Nil(t, result.Total)
	assert.Nil(t, result.RawSum)
}

func TestScore_MHI5IgnoresUnknownLinkIDs(t *testing.T) {
	result := Score("mhi-5", []fhir_dto.QuestionnaireResponseItem{
		integerItem("a", 3),
		integerItem("z", 6),
	})

	require.NotNil(t, result.RawSum)
	assert.Equal(t, 3, *result.RawSum)
}

func TestHasSingleTotal(t *testing.T) {
	assert.True(t, HasSingleTotal("irls"))
	assert.True(t, HasSingleTotal("mhi-5"))
	assert.False(t, HasSingleTotal("rls-6"))
	assert.False(t, HasSingleTotal("RLS_6"))
}
