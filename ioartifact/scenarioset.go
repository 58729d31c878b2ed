package ioartifact

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/nitishsanghi/robometrics/model"
)

var sanitizeID = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// ScenarioSetFileName returns the canonical artifact filename for a
// scenario set id: the id with any character outside [A-Za-z0-9_.-]
// replaced by underscore, suffixed ".scset.json".
func ScenarioSetFileName(scenarioSetID string) string {
	return sanitizeID.ReplaceAllString(scenarioSetID, "_") + ".scset.json"
}

// WriteScenarioSet writes set as a single JSON file named per
// ScenarioSetFileName under outDir, with keys sorted at every level and
// 2-space indentation.
func WriteScenarioSet(set *model.ScenarioSet, outDir string) (string, error) {
	path := filepath.Join(outDir, ScenarioSetFileName(set.ScenarioSetID))
	if err := writeJSON(path, set); err != nil {
		return "", err
	}
	return path, nil
}

// ReadScenarioSet loads and validates a scenario set artifact.
func ReadScenarioSet(path string) (*model.ScenarioSet, error) {
	var set model.ScenarioSet
	if err := readJSON(path, &set); err != nil {
		return nil, err
	}
	if err := model.ValidateScenarioSet(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// WriteScoreCard writes card as a single JSON file named
// "<scorecard_id>.scorecard.json" under outDir.
func WriteScoreCard(card *model.ScoreCard, outDir string) (string, error) {
	if card.ScorecardID == "" {
		return "", fmt.Errorf("scorecard id must not be empty")
	}
	path := filepath.Join(outDir, sanitizeID.ReplaceAllString(card.ScorecardID, "_")+".scorecard.json")
	if err := writeJSON(path, card); err != nil {
		return "", err
	}
	return path, nil
}

// ReadScoreCard loads and validates a scorecard artifact.
func ReadScoreCard(path string) (*model.ScoreCard, error) {
	var card model.ScoreCard
	if err := readJSON(path, &card); err != nil {
		return nil, err
	}
	if err := model.ValidateScoreCard(&card); err != nil {
		return nil, err
	}
	return &card, nil
}
