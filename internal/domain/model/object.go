// Package model contains domain models passed between layers.
package model

// Object is the subset of a museum collection record the guide answers from.
// String fields are pointers because the collection API returns null for
// anything it has not catalogued.
type Object struct {
	ID           int      `json:"id"`
	ObjectNumber string   `json:"objectnumber,omitempty"`
	Title        *string  `json:"title"`
	Medium       *string  `json:"medium"`
	Dated        *string  `json:"dated"`
	Division     *string  `json:"division"`
	LabelText    *string  `json:"labeltext"`
	Provenance   *string  `json:"provenance"`
	Description  *string  `json:"description"`
	Commentary   *string  `json:"commentary"`
	URL          string   `json:"url,omitempty"`
	People       []Person `json:"people"`
	Images       []Image  `json:"images"`
}

// Person is someone credited on an object, usually the artist.
type Person struct {
	Role        string  `json:"role,omitempty"`
	DisplayName *string `json:"displayname"`
	Birthplace  *string `json:"birthplace"`
	Culture     *string `json:"culture"`
	DisplayDate *string `json:"displaydate"`
}

// Image is a photograph of the object.
type Image struct {
	BaseImageURL *string `json:"baseimageurl"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
}

// PrimaryPerson returns the first credited person, or nil.
func (o *Object) PrimaryPerson() *Person {
	if o == nil || len(o.People) == 0 {
		return nil
	}
	return &o.People[0]
}

// PrimaryImage returns the first image, or nil.
func (o *Object) PrimaryImage() *Image {
	if o == nil || len(o.Images) == 0 {
		return nil
	}
	return &o.Images[0]
}
