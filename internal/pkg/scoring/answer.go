package scoring

import (
	"strconv"

	"somnolink-service/internal/pkg/fhir_dto"
)

// AnswerValue extracts the numeric value of a single FHIR answer. Two
// encodings are accepted: a direct valueInteger, or a valueCoding whose code
// parses as an integer. Anything else yields ok=false; a malformed answer is
// never an error, it simply does not contribute to a score.
func AnswerValue(answer fhir_dto.QuestionnaireResponseItemAnswer) (int, bool) {
	if answer.ValueInteger != nil {
		return *answer.ValueInteger, true
	}

	if answer.ValueCoding != nil && answer.ValueCoding.Code != "" {
		value, err := strconv.Atoi(answer.ValueCoding.Code)
		if err != nil {
			return 0, false
		}
		return value, true
	}

	return 0, false
}

// itemValue extracts the first usable answer of an item, if any.
func itemValue(item fhir_dto.QuestionnaireResponseItem) (int, bool) {
	if len(item.Answer) == 0 {
		return 0, false
	}
	return AnswerValue(item.Answer[0])
}
