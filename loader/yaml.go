package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/achievecore/types"
)

// yamlDoc is one YAML content file. Every top-level key is optional.
type yamlDoc struct {
	name string

	Game         *yamlGame         `yaml:"game"`
	Cards        []yamlCard        `yaml:"cards"`
	Scenarios    []yamlScenario    `yaml:"scenarios"`
	Oaths        []yamlOath        `yaml:"oaths"`
	Achievements []yamlAchievement `yaml:"achievements"`
}

type yamlGame struct {
	Title         string   `yaml:"title"`
	Author        string   `yaml:"author"`
	Version       string   `yaml:"version"`
	StartScenario string   `yaml:"start_scenario"`
	StartOath     string   `yaml:"start_oath"`
	StartingDeck  []string `yaml:"starting_deck"`
	HandSize      int      `yaml:"hand_size"`
	Intro         string   `yaml:"intro"`
}

type yamlCard struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlScenario struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Tutorial   bool     `yaml:"tutorial"`
	TimeOfDays []string `yaml:"time_of_days"`
}

type yamlOath struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type yamlAchievement struct {
	ID                    string   `yaml:"id"`
	Kind                  string   `yaml:"kind"`
	PlatformID            string   `yaml:"platform_id"`
	Name                  string   `yaml:"name"`
	Description           string   `yaml:"description"`
	Environments          []string `yaml:"environments"`
	TriggerDuringTutorial bool     `yaml:"trigger_during_tutorial"`
	CardTypes             []string `yaml:"card_types"`
	Cards                 []string `yaml:"cards"`
	Scenario              string   `yaml:"scenario"`
	Oaths                 []string `yaml:"oaths"`
	TimeOfDay             string   `yaml:"time_of_day"`
}

// readYAML decodes a content file. Unknown keys are rejected so typos in
// content do not silently drop definitions.
func readYAML(path string) (yamlDoc, error) {
	doc := yamlDoc{name: filepath.Base(path)}
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", doc.name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return doc, fmt.Errorf("%s: %w", doc.name, err)
	}
	return doc, nil
}

func (g *yamlGame) def() types.GameDef {
	return types.GameDef{
		Title:         g.Title,
		Author:        g.Author,
		Version:       g.Version,
		StartScenario: g.StartScenario,
		StartOath:     g.StartOath,
		StartingDeck:  g.StartingDeck,
		HandSize:      g.HandSize,
		Intro:         g.Intro,
	}
}

func (a yamlAchievement) def() types.AchievementDef {
	def := types.AchievementDef{
		ID:                    a.ID,
		Kind:                  a.Kind,
		PlatformID:            a.PlatformID,
		Name:                  a.Name,
		Description:           a.Description,
		Environments:          a.Environments,
		TriggerDuringTutorial: a.TriggerDuringTutorial,
		CardIDs:               a.Cards,
		Scenario:              a.Scenario,
		Oaths:                 a.Oaths,
		TimeOfDay:             a.TimeOfDay,
	}
	for _, t := range a.CardTypes {
		def.CardTypes = append(def.CardTypes, types.CardType(t))
	}
	return def
}
