package baseline

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/meetcal/meetcal/pkg/schedule"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Group struct {
	GroupMentor        string                `yaml:"groupMentor"`
	Schedule           []schedule.Event      `yaml:"schedule"`
	GeneralAssignments []schedule.Assignment `yaml:"generalAssignments"`
}

type Cohort struct {
	Description string           `yaml:"description"`
	Groups      map[string]Group `yaml:"groups"`
}

type Data struct {
	Cohorts map[string]Cohort `yaml:"cohorts"`
}

// Provider serves the read-only cohort schedules loaded at startup.
type Provider struct {
	data    Data
	aliases map[string]string
}

// NewProvider validates data and returns a provider resolving cohort aliases
// case-insensitively.
func NewProvider(data Data, aliases map[string]string) (*Provider, error) {
	for cohortKey, cohort := range data.Cohorts {
		for groupKey, group := range cohort.Groups {
			events, err := schedule.NormalizeAll(group.Schedule)
			if err != nil {
				return nil, fmt.Errorf("baseline of cohort %s group %s: %w", cohortKey, groupKey, err)
			}
			group.Schedule = events
			cohort.Groups[groupKey] = group
		}
	}
	normalizedAliases := make(map[string]string, len(aliases))
	for alias, cohort := range aliases {
		normalizedAliases[strings.ToLower(strings.TrimSpace(alias))] = cohort
	}
	return &Provider{data: data, aliases: normalizedAliases}, nil
}

// Load reads the baseline file at path. A missing file yields an empty baseline.
func Load(path string, aliases map[string]string) (*Provider, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Baseline file not found at %s, serving empty baselines", path)
			return NewProvider(Data{}, aliases)
		}
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}
	var data Data
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file %s: %w", path, err)
	}
	provider, err := NewProvider(data, aliases)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded baseline of %d cohorts from %s", len(data.Cohorts), path)
	return provider, nil
}

// CanonicalCohort resolves an alias such as "Y3" to its cohort key. Unknown names
// are returned trimmed.
func (p *Provider) CanonicalCohort(cohort string) string {
	trimmed := strings.TrimSpace(cohort)
	if canonical, ok := p.aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Baseline returns the schedule of the group. Unknown cohorts or groups yield an
// empty baseline.
func (p *Provider) Baseline(cohort, group string) schedule.Baseline {
	canonical := p.CanonicalCohort(cohort)
	cohortData, ok := p.data.Cohorts[canonical]
	if !ok {
		log.Debugf("no baseline for cohort %q (%q)", cohort, canonical)
		return schedule.Baseline{}
	}
	groupData, ok := cohortData.Groups[strings.TrimSpace(group)]
	if !ok {
		log.Debugf("no baseline for group %q of cohort %s", group, canonical)
		return schedule.Baseline{}
	}
	events := make([]schedule.Event, len(groupData.Schedule))
	copy(events, groupData.Schedule)
	assignments := make([]schedule.Assignment, len(groupData.GeneralAssignments))
	copy(assignments, groupData.GeneralAssignments)
	return schedule.Baseline{
		GroupMentor:        groupData.GroupMentor,
		Events:             events,
		GeneralAssignments: assignments,
	}
}

// Cohorts lists the cohort keys with their group names.
func (p *Provider) Cohorts() map[string][]string {
	result := make(map[string][]string, len(p.data.Cohorts))
	for key, cohort := range p.data.Cohorts {
		groups := make([]string, 0, len(cohort.Groups))
		for name := range cohort.Groups {
			groups = append(groups, name)
		}
		sort.Strings(groups)
		result[key] = groups
	}
	return result
}
