// Package catalog holds the static program catalog shown on the
// marketing site. It is leaf data: loaded once at process start, keyed
// by program name, never mutated at runtime.
package catalog

import "sort"

// Program is one catalog entry: a one-line tagline, the course outline
// shown in the expander, and an image reference (local file or URL).
type Program struct {
	Name    string   `json:"name"`
	Tag     string   `json:"tag"`
	Outline []string `json:"outline"`
	Image   string   `json:"image"`
}

var programs = map[string]Program{
	"Robotics": {
		Name:    "Robotics",
		Tag:     "Hands-on robotics & mechatronics",
		Outline: []string{"Intro to robotics", "Sensors & actuators", "Microcontrollers", "Mobile robot project", "Autonomous challenge"},
		Image:   "iStar 2.jpg",
	},
	"Python Programming": {
		Name:    "Python Programming",
		Tag:     "From basics to project-based coding",
		Outline: []string{"Python basics", "Lists, dicts & files", "Mini apps", "Intro to Pandas", "Build a web app"},
		Image:   "https://images.unsplash.com/photo-1555066931-4365d14bab8c",
	},
	"Data Analysis": {
		Name:    "Data Analysis",
		Tag:     "Collect, clean, visualize and tell data stories",
		Outline: []string{"Intro to data", "Spreadsheet basics", "Visualization", "Simple analyses", "Data storytelling project"},
		Image:   "https://images.unsplash.com/photo-1551288049-bebda4e38f71",
	},
	"Electronics": {
		Name:    "Electronics",
		Tag:     "Circuits, sensors, and physical computing",
		Outline: []string{"Basic electronics", "Breadboard projects", "Microcontrollers", "IoT concepts", "Interactive device"},
		Image:   "https://images.unsplash.com/photo-1563770095-39d468f9a51d",
	},
	"Space Technology": {
		Name:    "Space Technology",
		Tag:     "Astronomy and practical space concepts",
		Outline: []string{"Space science", "Satellites & orbits", "Rockets", "Space missions", "Model rocket design"},
		Image:   "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa",
	},
}

// Lookup returns the catalog entry for the given program name.
// The second return value reports whether the program exists.
func Lookup(name string) (Program, bool) {
	p, ok := programs[name]
	return p, ok
}

// Exists reports whether a program name is a valid catalog key.
func Exists(name string) bool {
	_, ok := programs[name]
	return ok
}

// Names returns all program names in sorted order. Map iteration order
// is random in Go, so we sort for a stable API response.
func Names() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every catalog entry, ordered by name.
func All() []Program {
	all := make([]Program, 0, len(programs))
	for _, name := range Names() {
		all = append(all, programs[name])
	}
	return all
}
