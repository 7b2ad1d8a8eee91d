package repositories

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quartzite/crossbuild/internal/build"
)

// targetsDocument is the on-disk shape of a targets file.
type targetsDocument struct {
	Targets []build.TargetSpecification `yaml:"targets"`
}

// EmbeddedTargetRepository contains the built-in target table, optionally
// extended with targets loaded from user-supplied files.
type EmbeddedTargetRepository struct {
	targets map[string]build.TargetSpecification
	order   []string
}

// NewEmbeddedTargetRepository constructs a repository pre-populated with the
// embedded target table.
//
// Panics if the embedded asset does not parse; that is a build defect, not a
// runtime condition.
func NewEmbeddedTargetRepository() *EmbeddedTargetRepository {
	repo := &EmbeddedTargetRepository{
		targets: make(map[string]build.TargetSpecification),
	}

	doc, err := parseTargets(embeddedTargets)
	if err != nil {
		panic(fmt.Sprintf("repositories: embedded target table is invalid: %v", err))
	}

	for _, target := range doc.Targets {
		repo.put(target)
	}

	return repo
}

// Get returns the specification for the provided target key.
//
// Unknown keys fail with an UnsupportedTargetError listing the supported set.
func (r *EmbeddedTargetRepository) Get(key string) (build.TargetSpecification, error) {
	target, ok := r.targets[key]
	if !ok {
		return build.TargetSpecification{}, &build.UnsupportedTargetError{
			Key:       key,
			Supported: append([]string(nil), r.order...),
		}
	}
	return target, nil
}

// ListAll returns all known specifications in registration order.
func (r *EmbeddedTargetRepository) ListAll() ([]build.TargetSpecification, error) {
	targets := make([]build.TargetSpecification, 0, len(r.order))
	for _, key := range r.order {
		targets = append(targets, r.targets[key])
	}
	return targets, nil
}

// MergeFile loads a targets file and merges its entries over the current
// table. Entries with a known key replace the existing specification.
func (r *EmbeddedTargetRepository) MergeFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read targets file %s: %w", path, err)
	}

	doc, err := parseTargets(payload)
	if err != nil {
		return fmt.Errorf("parse targets file %s: %w", path, err)
	}

	for _, target := range doc.Targets {
		r.put(target)
	}
	return nil
}

func (r *EmbeddedTargetRepository) put(target build.TargetSpecification) {
	if _, known := r.targets[target.Key]; !known {
		r.order = append(r.order, target.Key)
	}
	r.targets[target.Key] = target
}

func parseTargets(payload []byte) (targetsDocument, error) {
	var doc targetsDocument
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return targetsDocument{}, err
	}

	for i, target := range doc.Targets {
		if target.Key == "" {
			return targetsDocument{}, fmt.Errorf("target %d: key is required", i)
		}
		if target.BaseImage == "" {
			return targetsDocument{}, fmt.Errorf("target %s: base_image is required", target.Key)
		}
	}
	return doc, nil
}
