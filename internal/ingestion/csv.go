// Package ingestion parses the Coursera course catalog CSV into domain
// courses ready for graph import.
package ingestion

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// Column headers appear in two generations of the dataset; both are accepted.
var columnAliases = map[string][]string{
	"name":        {"course_name", "Course Name"},
	"university":  {"university", "University"},
	"url":         {"url", "Course URL"},
	"description": {"description", "Course Description"},
	"rating":      {"rating", "Course Rating"},
	"difficulty":  {"difficulty", "Difficulty Level"},
	"skills":      {"skills", "Skills"},
}

// GenerateCourseID derives a stable course id from name and university.
func GenerateCourseID(name, university string) string {
	sum := md5.Sum([]byte(name + "_" + university))
	return hex.EncodeToString(sum[:])[:12]
}

// ParseSkills splits the dataset's double-space delimited skill blob,
// dropping blanks, single characters and duplicates. Order follows first
// occurrence.
func ParseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var skills []string
	for _, part := range strings.Split(raw, "  ") {
		skill := strings.TrimSpace(part)
		if len(skill) <= 1 {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

// Loader reads course rows from the catalog CSV.
type Loader struct {
	log *logger.Logger
}

func NewLoader(log *logger.Logger) (*Loader, error) {
	if log == nil {
		return nil, fmt.Errorf("ingestion loader: logger required")
	}
	return &Loader{log: log.With("component", "CourseLoader")}, nil
}

// LoadFile parses the CSV at path. A limit above zero caps the number of
// rows; malformed rows are logged and skipped rather than failing the run.
func (l *Loader) LoadFile(path string, limit int) ([]domain.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	courses, err := l.Load(f, limit)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return courses, nil
}

// Load parses CSV course rows from r.
func (l *Loader) Load(r io.Reader, limit int) ([]domain.Course, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var courses []domain.Course
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			l.log.Warn("skipping malformed row", "row", row, "error", err)
			continue
		}
		if limit > 0 && len(courses) >= limit {
			break
		}

		course, err := courseFromRow(record, columns)
		if err != nil {
			l.log.Warn("skipping row", "row", row, "error", err)
			continue
		}
		courses = append(courses, course)
	}

	l.log.Info("catalog loaded", "courses", len(courses))
	return courses, nil
}

func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	columns := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				columns[field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("catalog missing column %q (tried %s)", field, strings.Join(aliases, ", "))
		}
	}
	return columns, nil
}

func courseFromRow(record []string, columns map[string]int) (domain.Course, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	university := field("university")
	if name == "" || university == "" {
		return domain.Course{}, fmt.Errorf("course name and university required")
	}

	rating := 0.0
	if raw := field("rating"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			rating = parsed
		}
	}

	return domain.Course{
		ID:          GenerateCourseID(name, university),
		Name:        name,
		University:  university,
		URL:         field("url"),
		Description: field("description"),
		Rating:      rating,
		Difficulty:  field("difficulty"),
		Skills:      ParseSkills(field("skills")),
	}, nil
}
