// Package facts defines which museum field answers which dialogue question and
// what to say when the collection has nothing on record.
package facts

import (
	"sort"
	"strings"

	"github.com/okian/museumguide/internal/domain/model"
)

// Defaults spoken when a field is empty.
const (
	Unknown     = "unknown"
	Unavailable = "unavailable"
)

// anonymousArtists are credits the collection uses instead of null.
var anonymousArtists = []string{"Unknown Artist", "Unidentified Artist"}

// Fact resolves one answer from a museum object.
type Fact struct {
	// Name is both the fact id and the HTTP route (without the slash).
	Name string
	// Field names the museum attribute, for docs and logs.
	Field string
	// Default is returned when the field is null, empty or a placeholder.
	Default string

	extract      func(*model.Object) *string
	placeholders []string
	scrubQuotes  bool
}

// Resolve returns the answer for o and whether the default was used.
func (f Fact) Resolve(o *model.Object) (string, bool) {
	value, defaulted := f.Default, true
	if o != nil {
		if v := f.extract(o); v != nil && !f.isPlaceholder(*v) {
			value, defaulted = *v, false
		}
	}
	if f.scrubQuotes {
		// Long-form text goes back into a quoted dialogue template.
		value = strings.ReplaceAll(value, `"`, "'")
	}
	return value, defaulted
}

func (f Fact) isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	for _, p := range f.placeholders {
		if v == p {
			return true
		}
	}
	return false
}

func person(get func(*model.Person) *string) func(*model.Object) *string {
	return func(o *model.Object) *string {
		if p := o.PrimaryPerson(); p != nil {
			return get(p)
		}
		return nil
	}
}

var catalog = map[string]Fact{}

func register(f Fact) {
	catalog[f.Name] = f
}

func init() { //nolint:gochecknoinits // static catalogue
	// about the painting
	register(Fact{Name: "artist_name", Field: "people[0].displayname", Default: Unknown,
		extract:      person(func(p *model.Person) *string { return p.DisplayName }),
		placeholders: anonymousArtists})
	register(Fact{Name: "medium", Field: "medium", Default: Unknown,
		extract: func(o *model.Object) *string { return o.Medium }})
	register(Fact{Name: "dated", Field: "dated", Default: Unknown,
		extract: func(o *model.Object) *string { return o.Dated }})
	register(Fact{Name: "display_category", Field: "division", Default: Unknown,
		extract: func(o *model.Object) *string { return o.Division }})
	register(Fact{Name: "label_text", Field: "labeltext", Default: Unavailable,
		extract: func(o *model.Object) *string { return o.LabelText }})
	register(Fact{Name: "provenance", Field: "provenance", Default: Unavailable,
		extract: func(o *model.Object) *string { return o.Provenance }})
	register(Fact{Name: "visual_description", Field: "description", Default: Unavailable,
		extract:     func(o *model.Object) *string { return o.Description },
		scrubQuotes: true})
	register(Fact{Name: "commentary", Field: "commentary", Default: Unavailable,
		extract:     func(o *model.Object) *string { return o.Commentary },
		scrubQuotes: true})

	// about the artist
	register(Fact{Name: "birthplace", Field: "people[0].birthplace", Default: Unknown,
		extract: person(func(p *model.Person) *string { return p.Birthplace })})
	register(Fact{Name: "culture", Field: "people[0].culture", Default: Unknown,
		extract: person(func(p *model.Person) *string { return p.Culture })})
	register(Fact{Name: "lifespan", Field: "people[0].displaydate", Default: Unknown,
		extract: person(func(p *model.Person) *string { return p.DisplayDate })})

	register(Fact{Name: "picture", Field: "images[0].baseimageurl", Default: Unavailable,
		extract: func(o *model.Object) *string {
			if img := o.PrimaryImage(); img != nil {
				return img.BaseImageURL
			}
			return nil
		}})
}

// Lookup returns the fact registered under name.
func Lookup(name string) (Fact, bool) {
	f, ok := catalog[name]
	return f, ok
}

// All returns every fact sorted by name.
func All() []Fact {
	out := make([]Fact, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every fact name sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = f.Name
	}
	return names
}

// Artists lists every credited person's display name in credit order, with
// anonymous credits collapsed to Unknown and repeats dropped.
func Artists(o *model.Object) []string {
	if o == nil {
		return nil
	}
	artist, _ := Lookup("artist_name")
	seen := make(map[string]struct{}, len(o.People))
	names := make([]string, 0, len(o.People))
	for i := range o.People {
		name := Unknown
		if v := o.People[i].DisplayName; v != nil && !artist.isPlaceholder(*v) {
			name = *v
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
