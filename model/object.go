package model

// ObjectKind identifies the concrete variant of a cultural heritage object.
// The variants are markers only; no field differs between them.
type ObjectKind string

const (
	KindNauticalChart    ObjectKind = "NauticalChart"
	KindManuscriptPlate  ObjectKind = "ManuscriptPlate"
	KindManuscriptVolume ObjectKind = "ManuscriptVolume"
	KindPrintedVolume    ObjectKind = "PrintedVolume"
	KindPrintedMaterial  ObjectKind = "PrintedMaterial"
	KindHerbarium        ObjectKind = "Herbarium"
	KindSpecimen         ObjectKind = "Specimen"
	KindPainting         ObjectKind = "Painting"
	KindModel            ObjectKind = "Model"
	KindMap              ObjectKind = "Map"
)

// CulturalHeritageObject represents one object held by an institution.
// Authors is a non-owning many-to-many relation: a Person may be referenced
// by any number of objects and outlives all of them.
type CulturalHeritageObject struct {
	ID      string     `json:"id"`
	Kind    ObjectKind `json:"kind"`
	Title   string     `json:"title"`
	Date    string     `json:"date,omitempty"` // free text, not guaranteed to be a calendar date
	Owner   string     `json:"owner"`
	Place   string     `json:"place"`
	Authors []*Person  `json:"authors,omitempty"`
}

// Identifier returns the opaque identifier of the object.
func (o *CulturalHeritageObject) Identifier() string {
	return o.ID
}

// PlaceholderObject builds an object carrying only an identifier. The process
// backend stores no object metadata, so activities reconstructed from it refer
// to a placeholder; callers needing title/date/owner/place must resolve the
// identifier through the metadata side.
func PlaceholderObject(id string) *CulturalHeritageObject {
	return &CulturalHeritageObject{ID: id}
}
