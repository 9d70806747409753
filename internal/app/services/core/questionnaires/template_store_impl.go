package questionnaires

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/fhir_dto"
	"somnolink-service/internal/pkg/scoring"

	"github.com/goccy/go-json"
)

// fileTemplateStore serves questionnaire templates from a directory of JSON
// files. The file name (minus .json) is the questionnaire slug; the directory
// is scanned once at startup since templates are baked into the image.
type fileTemplateStore struct {
	pathsBySlug map[string]string
	slugs       []string
}

func NewFileTemplateStore(templateDir string) (contracts.QuestionnaireTemplateStore, error) {
	entries, err := os.ReadDir(templateDir)
	if err != nil {
		return nil, err
	}

	store := &fileTemplateStore{pathsBySlug: make(map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		slug := scoring.NormalizeSlug(strings.TrimSuffix(entry.Name(), ".json"))
		store.pathsBySlug[slug] = filepath.Join(templateDir, entry.Name())
		store.slugs = append(store.slugs, slug)
	}
	sort.Strings(store.slugs)

	return store, nil
}

func (s *fileTemplateStore) Slugs() ([]string, error) {
	return s.slugs, nil
}

func (s *fileTemplateStore) Exists(slug string) bool {
	_, ok := s.pathsBySlug[scoring.NormalizeSlug(slug)]
	return ok
}

func (s *fileTemplateStore) Load(slug string) (*fhir_dto.Questionnaire, error) {
	normalized := scoring.NormalizeSlug(slug)
	path, ok := s.pathsBySlug[normalized]
	if !ok {
		return nil, exceptions.ErrQuestionnaireNotFound(normalized)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, exceptions.ErrQuestionnaireTemplateUnreadable(err, normalized)
	}

	questionnaire := new(fhir_dto.Questionnaire)
	if err := json.Unmarshal(raw, questionnaire); err != nil {
		return nil, exceptions.ErrQuestionnaireTemplateUnreadable(err, normalized)
	}
	return questionnaire, nil
}
