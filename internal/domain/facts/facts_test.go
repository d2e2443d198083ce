package facts_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/museumguide/internal/domain/facts"
	"github.com/okian/museumguide/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const fullObject = `{
  "id": 299843,
  "title": "Self-Portrait Dedicated to Paul Gauguin",
  "medium": "Oil on canvas",
  "dated": "1888",
  "division": "European and American Art",
  "labeltext": "Painted in Arles.",
  "provenance": "Paul Gauguin; Ambroise Vollard",
  "description": "A \"bonze\" with shaved head",
  "commentary": "He called it \"a portrait of a Buddhist monk\"",
  "people": [
    {"role": "Artist", "displayname": "Vincent van Gogh", "birthplace": "Zundert", "culture": "Dutch", "displaydate": "1853 - 1890"},
    {"role": "Former owner", "displayname": "Paul Gauguin"}
  ],
  "images": [{"baseimageurl": "https://nrs.harvard.edu/urn-3:HUAM:DDC251942"}]
}`

const emptyObject = `{"id": 1, "medium": null, "dated": null, "division": null, "labeltext": null,
  "provenance": null, "description": null, "commentary": null, "people": [], "images": []}`

func decode(raw string) *model.Object {
	var o model.Object
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		panic(err)
	}
	return &o
}

func resolve(name string, o *model.Object) (string, bool) {
	f, ok := facts.Lookup(name)
	So(ok, ShouldBeTrue)
	return f.Resolve(o)
}

func TestCatalogue(t *testing.T) {
	Convey("Given the fact catalogue", t, func() {
		Convey("Then every dialogue fact is registered", func() {
			So(facts.Names(), ShouldResemble, []string{
				"artist_name", "birthplace", "commentary", "culture", "dated",
				"display_category", "label_text", "lifespan", "medium", "picture",
				"provenance", "visual_description",
			})
		})

		Convey("Then unknown names are not found", func() {
			_, ok := facts.Lookup("price")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestResolveFullObject(t *testing.T) {
	Convey("Given a fully catalogued object", t, func() {
		o := decode(fullObject)

		expected := map[string]string{
			"artist_name":        "Vincent van Gogh",
			"medium":             "Oil on canvas",
			"dated":              "1888",
			"display_category":   "European and American Art",
			"label_text":         "Painted in Arles.",
			"provenance":         "Paul Gauguin; Ambroise Vollard",
			"visual_description": "A 'bonze' with shaved head",
			"commentary":         "He called it 'a portrait of a Buddhist monk'",
			"birthplace":         "Zundert",
			"culture":            "Dutch",
			"lifespan":           "1853 - 1890",
			"picture":            "https://nrs.harvard.edu/urn-3:HUAM:DDC251942",
		}

		Convey("Then each fact reads its field without defaulting", func() {
			for name, want := range expected {
				got, defaulted := resolve(name, o)
				So(got, ShouldEqual, want)
				So(defaulted, ShouldBeFalse)
			}
		})
	})
}

func TestResolveEmptyObject(t *testing.T) {
	Convey("Given an object with nothing on record", t, func() {
		o := decode(emptyObject)

		expected := map[string]string{
			"artist_name":        "unknown",
			"medium":             "unknown",
			"dated":              "unknown",
			"display_category":   "unknown",
			"label_text":         "unavailable",
			"provenance":         "unavailable",
			"visual_description": "unavailable",
			"commentary":         "unavailable",
			"birthplace":         "unknown",
			"culture":            "unknown",
			"lifespan":           "unknown",
			"picture":            "unavailable",
		}

		Convey("Then every fact falls back to its default", func() {
			for name, want := range expected {
				got, defaulted := resolve(name, o)
				So(got, ShouldEqual, want)
				So(defaulted, ShouldBeTrue)
			}
		})

		Convey("Then a nil object also defaults", func() {
			got, defaulted := resolve("medium", nil)
			So(got, ShouldEqual, "unknown")
			So(defaulted, ShouldBeTrue)
		})
	})
}

func TestArtistPlaceholders(t *testing.T) {
	Convey("Given objects credited to anonymous artists", t, func() {
		for _, name := range []string{"Unknown Artist", "Unidentified Artist", "  "} {
			o := decode(`{"people":[{"displayname":"` + name + `","birthplace":"Kyoto"}]}`)
			got, defaulted := resolve("artist_name", o)
			So(got, ShouldEqual, "unknown")
			So(defaulted, ShouldBeTrue)

			Convey("Then other artist facts still read the person: "+name, func() {
				place, _ := resolve("birthplace", o)
				So(place, ShouldEqual, "Kyoto")
			})
		}
	})
}

func TestArtists(t *testing.T) {
	Convey("Given an object with several credits", t, func() {
		o := decode(`{"people":[
			{"displayname":"Unknown Artist"},
			{"displayname":"Katsushika Hokusai"},
			{"displayname":"Unidentified Artist"},
			{"displayname":null},
			{"displayname":"Katsushika Hokusai"}
		]}`)

		Convey("Then names keep credit order with anonymous and repeated ones collapsed", func() {
			So(facts.Artists(o), ShouldResemble, []string{"unknown", "Katsushika Hokusai"})
		})
	})

	Convey("Given no object", t, func() {
		So(facts.Artists(nil), ShouldBeNil)
	})

	Convey("Given an object without credits", t, func() {
		So(facts.Artists(decode(`{"people":[]}`)), ShouldBeEmpty)
	})
}
