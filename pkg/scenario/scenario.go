// Package scenario reads YAML scenario documents describing
// capped multisets and the operations to evaluate on them.
package scenario

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/positional"
	yaml "gopkg.in/yaml.v3"
)

const FileExt1 = ".yaml"
const FileExt2 = ".yml"

// Document is a set of scenarios read from one or more files.
type Document struct {
	Positional []*Positional
	Keyed      []*Keyed
}

// Positional describes a positional multiset scenario.
type Positional struct {
	FilePath     string
	Name         string
	Elements     []uint64
	Caps         []capped.Cap[uint64]
	LengthPolicy positional.LengthPolicy

	// Union and Intersect are nil when not requested.
	Union     []uint64
	Intersect []uint64
}

// Keyed describes a keyed multiset scenario.
type Keyed struct {
	FilePath string
	Name     string
	Cap      capped.Cap[uint64]
	Caps     []capped.Cap[uint64]
	Insert   []Insertion
	Query    []string
}

type Insertion struct {
	Key   string
	Count uint64
}

type document struct {
	Positional []positionalScenario `yaml:"positional"`
	Keyed      []keyedScenario      `yaml:"keyed"`
}

type positionalScenario struct {
	Name         string   `yaml:"name"`
	Elements     []uint64 `yaml:"elements"`
	Caps         []string `yaml:"caps"`
	Union        []uint64 `yaml:"union"`
	Intersect    []uint64 `yaml:"intersect"`
	LengthPolicy string   `yaml:"length_policy"`
}

type keyedScenario struct {
	Name   string   `yaml:"name"`
	Cap    string   `yaml:"cap"`
	Caps   []string `yaml:"caps"`
	Insert []struct {
		Key   string  `yaml:"key"`
		Count *uint64 `yaml:"count"`
	} `yaml:"insert"`
	Query []string `yaml:"query"`
}

// Load reads the scenario file at filePath or,
// if filePath is a directory, all scenario files inside it.
func Load(filesystem fs.FS, filePath string) (*Document, error) {
	s, err := fs.Stat(filesystem, filePath)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}
	if s.IsDir() {
		return ReadDir(filesystem, filePath)
	}
	return Read(filesystem, filePath)
}

// ReadDir reads all scenario files in dirPath in lexical order.
// Files with other extensions and subdirectories are ignored.
func ReadDir(filesystem fs.FS, dirPath string) (*Document, error) {
	d, err := fs.ReadDir(filesystem, dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory: %w", err)
	}

	doc := &Document{}
	var files int
	for _, o := range d {
		n := o.Name()
		if o.IsDir() || !isScenarioFile(n) {
			continue
		}
		files++
		f, err := Read(filesystem, path.Join(dirPath, n))
		if err != nil {
			return nil, err
		}
		doc.Positional = append(doc.Positional, f.Positional...)
		doc.Keyed = append(doc.Keyed, f.Keyed...)
	}

	if files < 1 {
		return nil, &ErrorMissing{
			FilePath: path.Join(dirPath, "*"+FileExt1),
		}
	}
	if err := checkNames(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Read reads a single scenario file.
func Read(filesystem fs.FS, filePath string) (*Document, error) {
	f, err := filesystem.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	defer f.Close()

	var raw document
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&raw); err != nil {
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}

	if len(raw.Positional)+len(raw.Keyed) < 1 {
		return nil, &ErrorMissing{
			FilePath: filePath,
			Feature:  "scenarios",
		}
	}

	doc := &Document{}
	for _, r := range raw.Positional {
		s, err := r.parse(filePath)
		if err != nil {
			return nil, err
		}
		doc.Positional = append(doc.Positional, s)
	}
	for _, r := range raw.Keyed {
		s, err := r.parse(filePath)
		if err != nil {
			return nil, err
		}
		doc.Keyed = append(doc.Keyed, s)
	}

	if err := checkNames(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r positionalScenario) parse(filePath string) (*Positional, error) {
	if r.Name == "" {
		return nil, &ErrorMissing{FilePath: filePath, Feature: "name"}
	}
	s := &Positional{
		FilePath:  filePath,
		Name:      r.Name,
		Elements:  r.Elements,
		Union:     r.Union,
		Intersect: r.Intersect,
	}

	var err error
	if s.Caps, err = parseCaps(filePath, r.Name, r.Caps); err != nil {
		return nil, err
	}

	switch p := strings.ToLower(r.LengthPolicy); p {
	case "", positional.Truncate.String():
		s.LengthPolicy = positional.Truncate
	case positional.ZeroPad.String():
		s.LengthPolicy = positional.ZeroPad
	case positional.Strict.String():
		s.LengthPolicy = positional.Strict
	default:
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Feature:  "length_policy",
			Message:  fmt.Sprintf("scenario %q: unknown policy %q", r.Name, p),
		}
	}
	return s, nil
}

func (r keyedScenario) parse(filePath string) (*Keyed, error) {
	if r.Name == "" {
		return nil, &ErrorMissing{FilePath: filePath, Feature: "name"}
	}
	s := &Keyed{
		FilePath: filePath,
		Name:     r.Name,
		Query:    r.Query,
	}
	if len(r.Insert) > 0 {
		s.Insert = make([]Insertion, len(r.Insert))
	}

	c, err := capped.Parse[uint64](r.Cap)
	if err != nil {
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Feature:  "cap",
			Message:  fmt.Sprintf("scenario %q: %s", r.Name, err),
		}
	}
	s.Cap = c

	if s.Caps, err = parseCaps(filePath, r.Name, r.Caps); err != nil {
		return nil, err
	}

	for i, in := range r.Insert {
		s.Insert[i] = Insertion{Key: in.Key, Count: 1}
		if in.Count != nil {
			s.Insert[i].Count = *in.Count
		}
	}
	return s, nil
}

func parseCaps(
	filePath, name string,
	caps []string,
) ([]capped.Cap[uint64], error) {
	if len(caps) < 1 {
		return nil, nil
	}
	c := make([]capped.Cap[uint64], len(caps))
	for i := range caps {
		var err error
		if c[i], err = capped.Parse[uint64](caps[i]); err != nil {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  "caps",
				Message:  fmt.Sprintf("scenario %q: %s", name, err),
			}
		}
	}
	return c, nil
}

// checkNames returns *ErrorConflict for the first scenario name
// that's used more than once.
func checkNames(doc *Document) error {
	seen := make(map[string]string, len(doc.Positional)+len(doc.Keyed))
	check := func(filePath, name string) error {
		if p, ok := seen[name]; ok {
			return &ErrorConflict{Items: []string{
				p + ":" + name,
				filePath + ":" + name,
			}}
		}
		seen[name] = filePath
		return nil
	}
	for _, s := range doc.Positional {
		if err := check(s.FilePath, s.Name); err != nil {
			return err
		}
	}
	for _, s := range doc.Keyed {
		if err := check(s.FilePath, s.Name); err != nil {
			return err
		}
	}
	return nil
}

func isScenarioFile(name string) bool {
	return strings.HasSuffix(name, FileExt1) ||
		strings.HasSuffix(name, FileExt2)
}

type ErrorConflict struct {
	Items []string
}

func (e ErrorConflict) Error() string {
	var b strings.Builder
	b.WriteString("conflict between: ")
	for i := range e.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Items[i])
	}
	return b.String()
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	b.WriteString("missing ")
	if e.Feature != "" {
		b.WriteString(e.Feature)
		b.WriteString(" in ")
	}
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.WriteString("illegal ")
	if e.Feature != "" {
		b.WriteString(e.Feature)
		b.WriteString(" in ")
	}
	b.WriteString(e.FilePath)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
